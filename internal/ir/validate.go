package ir

import (
	"errors"
	"fmt"
)

// Validate checks module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := validateFunc(m, f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	for i, c := range m.Ctors {
		if m.Func(c.Func) == nil {
			errs = append(errs, fmt.Errorf("ctor %d: function f%d does not exist", i, c.Func))
		}
	}
	for i, d := range m.Dtors {
		if m.Func(d.Func) == nil {
			errs = append(errs, fmt.Errorf("dtor %d: function f%d does not exist", i, d.Func))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) error {
	if f.IsDeclaration() {
		return nil
	}

	var errs []error

	// 1. Check all blocks terminated
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}

	// 2. Check branch targets exist
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}

	// 3. Check operand references are in range
	if err := validateOperands(m, f); err != nil {
		errs = append(errs, err)
	}

	// 4. Check result value IDs are dense and unique
	if err := validateResults(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all branch target IDs exist.
func validateBlockTargets(f *Func) error {
	var errs []error

	blockExists := func(id BlockID) bool {
		return id >= 0 && int(id) < len(f.Blocks)
	}

	if !blockExists(f.Entry) {
		errs = append(errs, fmt.Errorf("entry block bb%d does not exist", f.Entry))
	}
	for i := range f.Blocks {
		bb := &f.Blocks[i]
		switch bb.Term.Kind {
		case TermBr:
			if !blockExists(bb.Term.Br.Target) {
				errs = append(errs, fmt.Errorf("bb%d: branch target bb%d does not exist", i, bb.Term.Br.Target))
			}
		case TermCondBr:
			if !blockExists(bb.Term.CondBr.Then) {
				errs = append(errs, fmt.Errorf("bb%d: then target bb%d does not exist", i, bb.Term.CondBr.Then))
			}
			if !blockExists(bb.Term.CondBr.Else) {
				errs = append(errs, fmt.Errorf("bb%d: else target bb%d does not exist", i, bb.Term.CondBr.Else))
			}
		}
	}
	return errors.Join(errs...)
}

// validateOperands checks that value, global and function operands
// reference entities that exist.
func validateOperands(m *Module, f *Func) error {
	var errs []error

	checkOp := func(where string, op Operand) {
		switch op.Kind {
		case OperandValue:
			if op.Value < 0 || int32(op.Value) >= f.NumValues {
				errs = append(errs, fmt.Errorf("%s: value v%d out of range", where, op.Value))
			}
		case OperandGlobal:
			if m.Global(op.Global) == nil {
				errs = append(errs, fmt.Errorf("%s: global g%d does not exist", where, op.Global))
			}
		case OperandFunc:
			if m.Func(op.Func) == nil {
				errs = append(errs, fmt.Errorf("%s: function f%d does not exist", where, op.Func))
			}
		}
	}

	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for ii := range bb.Instrs {
			in := &bb.Instrs[ii]
			where := fmt.Sprintf("bb%d.%d", bi, ii)
			if in.Kind == InstrCall && in.Call.Callee.Kind == CalleeFunc && m.Func(in.Call.Callee.Func) == nil {
				errs = append(errs, fmt.Errorf("%s: callee f%d does not exist", where, in.Call.Callee.Func))
			}
			in.forEachOperand(func(_ int, op Operand) {
				checkOp(where, op)
			})
		}
		bb.Term.forEachOperand(func(_ int, op Operand) {
			checkOp(fmt.Sprintf("bb%d.term", bi), op)
		})
	}
	return errors.Join(errs...)
}

// validateResults checks that instruction results stay inside
// [0, NumValues) and no value is defined twice.
func validateResults(f *Func) error {
	var errs []error
	seen := make(map[ValueID]bool, f.NumValues)
	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for ii := range bb.Instrs {
			r := bb.Instrs[ii].Result
			if r == NoValueID {
				continue
			}
			if r < 0 || int32(r) >= f.NumValues {
				errs = append(errs, fmt.Errorf("bb%d.%d: result v%d out of range", bi, ii, r))
				continue
			}
			if seen[r] {
				errs = append(errs, fmt.Errorf("bb%d.%d: value v%d defined twice", bi, ii, r))
			}
			seen[r] = true
		}
	}
	return errors.Join(errs...)
}
