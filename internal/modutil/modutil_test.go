package modutil_test

import (
	"testing"

	"sanmd/internal/ir"
	"sanmd/internal/modutil"
)

// TestDeclareFunc_ReusesExisting tests that a second declaration of
// the same name returns the first.
func TestDeclareFunc_ReusesExisting(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	a := modutil.DeclareFunc(m, "rt_add", ir.TypeVoid, ir.Param{Type: ir.TypeInt32})
	b := modutil.DeclareFunc(m, "rt_add", ir.TypeVoid, ir.Param{Type: ir.TypeInt32})
	if a != b {
		t.Errorf("DeclareFunc created a duplicate declaration")
	}
	if len(m.Funcs) != 1 {
		t.Errorf("module has %d funcs, want 1", len(m.Funcs))
	}
}

// TestCreateInitCallFunc_Shape tests the synthesized init function:
// internal linkage, one call with the given args, void return.
func TestCreateInitCallFunc_Shape(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	g := m.AddGlobal(ir.Global{Name: "marker", Type: ir.TypePtr})
	args := []ir.Operand{ir.ConstOp(1), ir.GlobalOp(g.ID)}
	ctor := modutil.CreateInitCallFunc(m, "rt.module_ctor", "rt_add",
		[]ir.Type{ir.TypeInt32, ir.TypePtr}, args)

	if ctor.Linkage != ir.LinkInternal {
		t.Errorf("linkage = %s, want internal", ctor.Linkage)
	}
	if len(ctor.Blocks) != 1 || len(ctor.Blocks[0].Instrs) != 1 {
		t.Fatalf("body shape unexpected: %d blocks", len(ctor.Blocks))
	}
	in := &ctor.Blocks[0].Instrs[0]
	if in.Kind != ir.InstrCall {
		t.Fatalf("body instruction kind = %d, want call", in.Kind)
	}
	callee := m.Func(in.Call.Callee.Func)
	if callee == nil || callee.Name != "rt_add" || !callee.IsDeclaration() {
		t.Errorf("callee = %+v", callee)
	}
	if len(callee.Params) != 2 || callee.Params[0].Type != ir.TypeInt32 || callee.Params[1].Type != ir.TypePtr {
		t.Errorf("callee params = %+v", callee.Params)
	}
	if len(in.Call.Args) != 2 || in.Call.Args[0].Const != 1 || in.Call.Args[1].Global != g.ID {
		t.Errorf("call args = %+v", in.Call.Args)
	}
	if ctor.Blocks[0].Term.Kind != ir.TermRet {
		t.Errorf("ctor does not end in ret")
	}
	if err := ir.Validate(m); err != nil {
		t.Errorf("module invalid after synthesis: %v", err)
	}
}

// TestAppendToGlobalCtorsDtors tests list append semantics.
func TestAppendToGlobalCtorsDtors(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	ctor := modutil.CreateInitCallFunc(m, "a.module_ctor", "a_add", nil, nil)
	dtor := modutil.CreateInitCallFunc(m, "a.module_dtor", "a_del", nil, nil)

	modutil.AppendToGlobalCtors(m, ctor.ID, 2, ir.FuncOp(ctor.ID))
	modutil.AppendToGlobalDtors(m, dtor.ID, 2, ir.Operand{})

	if len(m.Ctors) != 1 || m.Ctors[0].Func != ctor.ID || m.Ctors[0].Priority != 2 {
		t.Errorf("ctors = %+v", m.Ctors)
	}
	if m.Ctors[0].Data.Kind != ir.OperandFunc {
		t.Errorf("ctor data = %+v", m.Ctors[0].Data)
	}
	if len(m.Dtors) != 1 || m.Dtors[0].Func != dtor.ID {
		t.Errorf("dtors = %+v", m.Dtors)
	}
	if m.Dtors[0].Data.Kind != ir.OperandNone {
		t.Errorf("dtor data = %+v", m.Dtors[0].Data)
	}
}
