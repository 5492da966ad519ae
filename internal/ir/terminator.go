package ir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermRet
	TermBr
	TermCondBr
	TermUnreachable
)

type Terminator struct {
	Kind TermKind

	Ret         RetTerm
	Br          BrTerm
	CondBr      CondBrTerm
	Unreachable struct{}
}

type RetTerm struct {
	HasValue bool
	Value    Operand
}

type BrTerm struct {
	Target BlockID
}

type CondBrTerm struct {
	Cond Operand
	Then BlockID
	Else BlockID
}

// forEachOperand visits every operand of the terminator.
func (t *Terminator) forEachOperand(fn func(idx int, op Operand)) {
	switch t.Kind {
	case TermRet:
		if t.Ret.HasValue {
			fn(0, t.Ret.Value)
		}
	case TermCondBr:
		fn(0, t.CondBr.Cond)
	}
}
