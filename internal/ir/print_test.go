package ir_test

import (
	"strings"
	"testing"

	"sanmd/internal/ir"
)

// TestDumpModule_Deterministic tests that dumping the same module
// twice yields identical text and mentions the expected entities.
func TestDumpModule_Deterministic(t *testing.T) {
	build := func() *ir.Module {
		m := ir.NewModule("dump", ir.Target{Format: ir.BinFormatELF})
		g := m.AddGlobal(ir.Global{Name: "word", Type: ir.TypeInt32})
		f := m.NewFunc("fn", ir.TypeVoid)
		b := ir.NewFuncBuilder(m, f)
		slot := b.Alloca(ir.TypeInt32, "x")
		b.Store(ir.ConstOp(1), ir.ValueOp(slot))
		b.AtomicLoad(ir.GlobalOp(g.ID), ir.TypeInt32, ir.OrderingSeqCst, ir.ScopeSystem)
		b.Ret()
		f.PCSections = &ir.PCSections{Entries: []ir.PCSection{{Section: "sanmd_covered", Aux: []uint32{2}}}}
		return m
	}

	var first, second strings.Builder
	if err := ir.DumpModule(&first, build()); err != nil {
		t.Fatalf("DumpModule: %v", err)
	}
	if err := ir.DumpModule(&second, build()); err != nil {
		t.Fatalf("DumpModule: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("dump not deterministic:\n%s\n---\n%s", first.String(), second.String())
	}

	out := first.String()
	for _, want := range []string{
		"module dump target=elf",
		"fn fn:",
		"alloca i32 ; x",
		"load atomic i32 G0 seq_cst system",
		"!pcsections sanmd_covered [2]",
		"ret",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
