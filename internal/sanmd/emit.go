package sanmd

import (
	"sanmd/internal/ir"
	"sanmd/internal/modutil"
)

// emitRegistration creates, for each used metadata kind in set order,
// the section boundary markers plus a constructor/destructor pair that
// hands the runtime the section's address range.
func (p *Pass) emitRegistration(mis *KindSet) {
	version := p.version()
	argTypes := []ir.Type{ir.TypeInt32, ir.TypePtr, ir.TypePtr}

	for _, k := range mis.Kinds() {
		info := k.Info()
		suffix := p.sectionName(info.SectionSuffix)
		start := p.sectionMarker(sectionStart(suffix))
		stop := p.sectionMarker(sectionEnd(suffix))
		args := []ir.Operand{
			ir.ConstOp(uint64(version)),
			ir.GlobalOp(start.ID),
			ir.GlobalOp(stop.ID),
		}

		ctor := modutil.CreateInitCallFunc(p.mod,
			info.FuncPrefix+".module_ctor", info.FuncPrefix+"_add", argTypes, args)
		dtor := modutil.CreateInitCallFunc(p.mod,
			info.FuncPrefix+".module_dtor", info.FuncPrefix+"_del", argTypes, args)

		var ctorData, dtorData ir.Operand
		if p.mod.Target.SupportsCOMDAT() {
			// Keyed by their own names so identical entry points from
			// other translation units collapse at link time.
			ctor.Comdat = ctor.Name
			dtor.Comdat = dtor.Name
			ctorData = ir.FuncOp(ctor.ID)
			dtorData = ir.FuncOp(dtor.ID)
		}
		modutil.AppendToGlobalCtors(p.mod, ctor.ID, ctorDtorPriority, ctorData)
		modutil.AppendToGlobalDtors(p.mod, dtor.ID, ctorDtorPriority, dtorData)
	}
}

// sectionMarker creates a section boundary marker global. Extern-weak
// linkage keeps the linker from reporting an undefined symbol when
// section garbage collection discards every record.
func (p *Pass) sectionMarker(name string) *ir.Global {
	return p.mod.AddGlobal(ir.Global{
		Name:       name,
		Type:       ir.TypePtr,
		Linkage:    ir.LinkExternalWeak,
		Visibility: ir.VisibilityHidden,
	})
}
