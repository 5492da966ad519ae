package ir_test

import (
	"testing"

	"sanmd/internal/ir"
)

// TestBuildUseIndex_InstrAndTermUses tests that instruction operand
// uses and terminator uses are both indexed.
func TestBuildUseIndex_InstrAndTermUses(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	f := m.NewFunc("fn", ir.TypePtr)
	b := ir.NewFuncBuilder(m, f)
	slot := b.Alloca(ir.TypeInt32, "x")
	loaded := b.Load(ir.ValueOp(slot), ir.TypeInt32)
	b.Store(ir.ValueOp(loaded), ir.ValueOp(slot))
	b.RetValue(ir.ValueOp(slot))

	ui := ir.BuildUseIndex(f)

	slotUses := ui.Users(slot)
	if len(slotUses) != 3 {
		t.Fatalf("slot has %d uses, want 3", len(slotUses))
	}
	// Load addr, store addr, terminator, in block order.
	if in := ui.UserInstr(slotUses[0]); in == nil || in.Kind != ir.InstrLoad {
		t.Errorf("use 0 = %+v, want load", slotUses[0])
	}
	if in := ui.UserInstr(slotUses[1]); in == nil || in.Kind != ir.InstrStore {
		t.Errorf("use 1 = %+v, want store", slotUses[1])
	}
	if slotUses[1].OperandIdx != 1 {
		t.Errorf("store use operand = %d, want 1 (address)", slotUses[1].OperandIdx)
	}
	if !slotUses[2].Term {
		t.Errorf("use 2 not a terminator use: %+v", slotUses[2])
	}
	if ui.UserInstr(slotUses[2]) != nil {
		t.Errorf("UserInstr for terminator use is not nil")
	}

	loadedUses := ui.Users(loaded)
	if len(loadedUses) != 1 || loadedUses[0].OperandIdx != 0 {
		t.Errorf("loaded value uses = %+v, want single value operand", loadedUses)
	}
}

// TestBuildUseIndex_NoUses tests that unused values report no uses.
func TestBuildUseIndex_NoUses(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	f := m.NewFunc("fn", ir.TypeVoid)
	b := ir.NewFuncBuilder(m, f)
	slot := b.Alloca(ir.TypeInt32, "x")
	b.Ret()

	ui := ir.BuildUseIndex(f)
	if uses := ui.Users(slot); len(uses) != 0 {
		t.Errorf("unused alloca has uses: %+v", uses)
	}
}
