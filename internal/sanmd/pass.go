package sanmd

import (
	"fmt"

	"sanmd/internal/ir"
)

// Pass instruments one module. A Pass is single-use: construct, Run
// once, read Stats. Modules are independent, so callers may run one
// Pass per module concurrently without shared locking.
type Pass struct {
	mod   *ir.Module
	opts  Options
	stats Stats
}

// New constructs a pass over a module. The target must use the ELF
// object format; anything else is a configuration that should never
// reach this stage and is rejected outright.
func New(m *ir.Module, opts Options) (*Pass, error) {
	if m.Target.Format != ir.BinFormatELF {
		return nil, fmt.Errorf("sanmd: unsupported binary format %s (ELF only)", m.Target.Format)
	}
	return &Pass{mod: m, opts: opts}, nil
}

// Stats returns counters accumulated by Run.
func (p *Pass) Stats() Stats {
	return p.stats
}

// Run processes every function and, if any metadata was attached,
// emits the section markers and registration machinery. It reports
// whether the module changed: a module that instruments nothing is
// left untouched at the registration level.
func (p *Pass) Run() bool {
	var mis KindSet

	for _, f := range p.mod.Funcs {
		p.runOnFunc(f, &mis)
	}

	if mis.Empty() {
		return false
	}

	p.emitRegistration(&mis)
	return true
}

// runOnFunc scans one function and attaches a covered record when
// warranted. The feature mask starts empty; bits are set only by
// actual instruction classification.
func (p *Pass) runOnFunc(f *ir.Func, mis *KindSet) {
	if f.IsDeclaration() {
		return
	}
	if f.Attrs&ir.AttrNoSanitize != 0 {
		return
	}
	// The actual body of an available_externally function lives in
	// another translation unit.
	if f.Linkage == ir.LinkAvailableExternally {
		return
	}

	featureMask := FeatureNone
	requiresCovered := false

	// The UAR feature only becomes known by looking at instructions,
	// so the scan runs whenever any per-instruction feature is on.
	if p.opts.Atomics || p.opts.UAR {
		ui := ir.BuildUseIndex(f)
		for bi := range f.Blocks {
			bb := &f.Blocks[bi]
			for ii := range bb.Instrs {
				if p.runOn(&bb.Instrs[ii], ui, mis, &featureMask) {
					requiresCovered = true
				}
			}
		}
	}

	// Variadic frames cannot be checked with this mechanism.
	if f.VarArg {
		featureMask &^= FeatureUAR
	}
	if featureMask&FeatureUAR != 0 {
		requiresCovered = true
		p.stats.UAR++
	}

	// Covered metadata is emitted if explicitly requested, otherwise
	// only when some other metadata needs it to be interpretable.
	if p.opts.Covered || (featureMask != FeatureNone && requiresCovered) {
		p.stats.Covered++
		mis.Insert(KindCovered)
		// The mask is one 32-bit word following the function address
		// and a 32-bit size field in the runtime's record layout.
		f.PCSections = &ir.PCSections{Entries: []ir.PCSection{{
			Section: p.sectionName(KindCovered.Info().SectionSuffix),
			Aux:     []uint32{featureMask},
		}}}
	}
}

// version encodes the record format version for this module: base
// version in the low 16 bits, plus a flag when the code model implies
// pointer-sized-relative offsets inside records.
func (p *Pass) version() uint32 {
	v := versionBase
	switch p.mod.CodeModel {
	case ir.CodeModelMedium, ir.CodeModelLarge:
		v |= versionPtrSizeRel
	}
	return v
}

// sectionName returns the target section name for a suffix. ELF uses
// the suffix directly.
func (p *Pass) sectionName(suffix string) string {
	return suffix
}

func sectionStart(suffix string) string {
	return "__start_" + suffix
}

func sectionEnd(suffix string) string {
	return "__stop_" + suffix
}
