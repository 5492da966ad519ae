package sanmd

import (
	"strings"

	"sanmd/internal/ir"
)

// Runtime name prefixes whose functions are documented to neither
// retain pointer arguments nor outlive the call.
var uarSafeCallPrefixes = []string{
	"__asan_",
	"__hwsan_",
	"__ubsan_",
	"__msan_",
	"__tsan_",
}

// uarSafeCall reports whether a call can neither leak a pointer
// argument past the caller's frame nor escape runtime interception.
// Intrinsics never leak arguments; a no-return callee means the caller
// does not return either, so no use-after-return is possible; runtime
// functions matching the known prefixes are documented safe.
func uarSafeCall(call *ir.CallInstr, m *ir.Module) bool {
	if call.Callee.Kind != ir.CalleeFunc {
		return false
	}
	f := m.Func(call.Callee.Func)
	if f == nil {
		return false
	}
	if f.Attrs&(ir.AttrIntrinsic|ir.AttrNoReturn) != 0 {
		return true
	}
	for _, prefix := range uarSafeCallPrefixes {
		if strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}

// hasUARUnsafeUses walks the transitive uses of a stack allocation's
// address and reports whether any of them could let the address
// outlive the frame. Address-preserving instructions (pointer add,
// pointer cast) forward the walk to their own uses. The walk is
// iterative with an explicit worklist; visited values are tracked so
// the walk terminates on any decoded module, including use graphs
// with cycles.
func hasUARUnsafeUses(root ir.ValueID, m *ir.Module, ui *ir.UseIndex) bool {
	worklist := []ir.ValueID{root}
	visited := map[ir.ValueID]bool{root: true}
	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, u := range ui.Users(v) {
			in := ui.UserInstr(u)
			if in == nil {
				// Terminator use: the address is returned or branches
				// on it in a way the runtime cannot reason about.
				return true
			}
			if in.IsLifetimeStartOrEnd() || in.IsDroppable() {
				continue
			}
			switch in.Kind {
			case ir.InstrLoad:
				continue
			case ir.InstrStore:
				// Storing TO the slot does not take its address, even
				// when the slot is also the value being stored.
				if in.Store.Addr.Kind == ir.OperandValue && in.Store.Addr.Value == v {
					continue
				}
			case ir.InstrCall:
				if uarSafeCall(&in.Call, m) {
					continue
				}
			case ir.InstrPtrAdd, ir.InstrPtrCast:
				if !visited[in.Result] {
					visited[in.Result] = true
					worklist = append(worklist, in.Result)
				}
				continue
			}
			return true
		}
	}
	return false
}

// uarUnsafe reports whether an instruction exposes the enclosing
// function to use-after-return. Tail calls elide the caller's frame,
// so the runtime cannot intercept them; conservatively treat unsafe
// tail calls as exposure.
func uarUnsafe(in *ir.Instr, m *ir.Module, ui *ir.UseIndex) bool {
	switch in.Kind {
	case ir.InstrAlloca:
		return hasUARUnsafeUses(in.Result, m, ui)
	case ir.InstrCall:
		return in.Call.Tail && !uarSafeCall(&in.Call, m)
	}
	return false
}

// runOn classifies one instruction. It may set feature bits in the
// function's running mask, attach per-instruction metadata and insert
// kinds into the module-level set. The return value reports whether
// covered metadata is required to unambiguously interpret other
// metadata: any memory operation in a function does, when atomics
// records are being emitted, because a reader must be able to tell
// "not atomic" apart from "not instrumented".
func (p *Pass) runOn(in *ir.Instr, ui *ir.UseIndex, mis *KindSet, featureMask *uint32) bool {
	var instKinds []KindID
	requiresCovered := false

	if p.opts.UAR && *featureMask&FeatureUAR == 0 {
		if uarUnsafe(in, p.mod, ui) {
			*featureMask |= FeatureUAR
		}
	}

	if p.opts.Atomics && in.MayReadOrWriteMemory() {
		if scope, ok := in.AtomicSyncScope(); ok && scope != ir.ScopeSingleThread {
			p.stats.Atomics++
			*featureMask |= FeatureAtomics
			instKinds = append(instKinds, KindAtomics)
		}
		requiresCovered = true
	}

	if len(instKinds) > 0 {
		mis.Insert(instKinds...)
		entries := make([]ir.PCSection, 0, len(instKinds))
		for _, k := range instKinds {
			entries = append(entries, ir.PCSection{Section: p.sectionName(k.Info().SectionSuffix)})
		}
		in.PCSections = &ir.PCSections{Entries: entries}
	}

	return requiresCovered
}
