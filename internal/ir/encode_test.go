package ir_test

import (
	"path/filepath"
	"testing"

	"sanmd/internal/ir"
)

// TestEncodeDecode_RoundTrip tests that a module survives the disk
// codec with metadata and lookup indexes intact.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	m := ir.NewModule("unit", ir.Target{Format: ir.BinFormatELF, Arch: "x86_64", PtrSize: 8})
	m.CodeModel = ir.CodeModelMedium
	g := m.AddGlobal(ir.Global{Name: "word", Type: ir.TypeInt32, HasInit: true, Init: 3})
	f := m.NewFunc("reader", ir.TypeInt32)
	b := ir.NewFuncBuilder(m, f)
	v := b.AtomicLoad(ir.GlobalOp(g.ID), ir.TypeInt32, ir.OrderingSeqCst, ir.ScopeSystem)
	b.RetValue(ir.ValueOp(v))
	f.PCSections = &ir.PCSections{Entries: []ir.PCSection{{Section: "sanmd_covered", Aux: []uint32{2}}}}

	data, err := ir.EncodeModule(m)
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}
	got, err := ir.DecodeModule(data)
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}

	if got.Name != "unit" || got.Target.Format != ir.BinFormatELF || got.CodeModel != ir.CodeModelMedium {
		t.Errorf("module header = %+v", got)
	}
	rf := got.FuncByName("reader")
	if rf == nil {
		t.Fatalf("FuncByName lost after decode")
	}
	if rf.PCSections == nil || rf.PCSections.Entries[0].Aux[0] != 2 {
		t.Errorf("function metadata lost: %+v", rf.PCSections)
	}
	in := &rf.Blocks[0].Instrs[0]
	if in.Kind != ir.InstrLoad || in.Load.Ordering != ir.OrderingSeqCst || in.Load.Scope != ir.ScopeSystem {
		t.Errorf("instruction lost: %+v", in)
	}
	if err := ir.Validate(got); err != nil {
		t.Errorf("decoded module invalid: %v", err)
	}
}

// TestSaveLoad_File tests the file layer.
func TestSaveLoad_File(t *testing.T) {
	m := ir.NewModule("disk", ir.Target{Format: ir.BinFormatELF})
	f := m.NewFunc("fn", ir.TypeVoid)
	b := ir.NewFuncBuilder(m, f)
	b.Ret()

	path := filepath.Join(t.TempDir(), "disk.smod")
	if err := ir.SaveModule(path, m); err != nil {
		t.Fatalf("SaveModule: %v", err)
	}
	got, err := ir.LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	if got.Name != "disk" || got.FuncByName("fn") == nil {
		t.Errorf("loaded module = %+v", got)
	}
}

// TestDecode_BadPayload tests rejection of garbage input.
func TestDecode_BadPayload(t *testing.T) {
	if _, err := ir.DecodeModule([]byte{0xc1, 0x00}); err == nil {
		t.Errorf("DecodeModule accepted garbage")
	}
}
