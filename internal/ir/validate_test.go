package ir_test

import (
	"strings"
	"testing"

	"sanmd/internal/ir"
)

// TestValidate_ValidModule tests that builder-produced modules pass
// validation.
func TestValidate_ValidModule(t *testing.T) {
	m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
	g := m.AddGlobal(ir.Global{Name: "word", Type: ir.TypeInt32})
	callee := m.NewFunc("callee", ir.TypeVoid, ir.Param{Name: "p", Type: ir.TypePtr})

	f := m.NewFunc("fn", ir.TypeInt32)
	b := ir.NewFuncBuilder(m, f)
	slot := b.Alloca(ir.TypeInt32, "x")
	b.Store(ir.ConstOp(1), ir.ValueOp(slot))
	b.Call(callee.ID, ir.ValueOp(slot))
	next := b.NewBlock()
	b.Br(next)
	b.SetBlock(next)
	v := b.Load(ir.GlobalOp(g.ID), ir.TypeInt32)
	b.RetValue(ir.ValueOp(v))

	if err := ir.Validate(m); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestValidate_Invalid tests detection of broken invariants.
func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *ir.Module
		wantSub string
	}{
		{
			name: "unterminated_block",
			build: func() *ir.Module {
				m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
				f := m.NewFunc("fn", ir.TypeVoid)
				b := ir.NewFuncBuilder(m, f)
				b.Alloca(ir.TypeInt32, "x")
				return m
			},
			wantSub: "unterminated",
		},
		{
			name: "branch_target_missing",
			build: func() *ir.Module {
				m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
				f := m.NewFunc("fn", ir.TypeVoid)
				b := ir.NewFuncBuilder(m, f)
				b.Br(ir.BlockID(9))
				return m
			},
			wantSub: "does not exist",
		},
		{
			name: "value_out_of_range",
			build: func() *ir.Module {
				m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
				f := m.NewFunc("fn", ir.TypeVoid)
				b := ir.NewFuncBuilder(m, f)
				b.Load(ir.ValueOp(ir.ValueID(42)), ir.TypeInt32)
				b.Ret()
				return m
			},
			wantSub: "out of range",
		},
		{
			name: "global_missing",
			build: func() *ir.Module {
				m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
				f := m.NewFunc("fn", ir.TypeVoid)
				b := ir.NewFuncBuilder(m, f)
				b.Load(ir.GlobalOp(ir.GlobalID(3)), ir.TypeInt32)
				b.Ret()
				return m
			},
			wantSub: "does not exist",
		},
		{
			name: "ctor_function_missing",
			build: func() *ir.Module {
				m := ir.NewModule("m", ir.Target{Format: ir.BinFormatELF})
				m.Ctors = append(m.Ctors, ir.StaticInit{Priority: 2, Func: ir.FuncID(5)})
				return m
			},
			wantSub: "ctor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ir.Validate(tt.build())
			if err == nil {
				t.Fatalf("Validate accepted a broken module")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
