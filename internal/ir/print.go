package ir

import (
	"fmt"
	"io"
	"strings"
)

// DumpModule writes a deterministic human-readable representation of a
// module. Output depends only on module contents.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}

	fmt.Fprintf(w, "module %s target=%s codemodel=%s\n", m.Name, m.Target.Format, m.CodeModel)

	if len(m.Globals) > 0 {
		fmt.Fprintf(w, "globals=%d\n", len(m.Globals))
		for _, g := range m.Globals {
			attrs := fmt.Sprintf("%s %s", g.Linkage, g.Visibility)
			init := ""
			if g.HasInit {
				init = fmt.Sprintf(" init=%d", g.Init)
			}
			fmt.Fprintf(w, "  G%d: %s %s name=%s%s\n", g.ID, g.Type, attrs, g.Name, init)
		}
	}

	fmt.Fprintf(w, "funcs=%d\n", len(m.Funcs))
	for _, f := range m.Funcs {
		if err := dumpFunc(w, m, f); err != nil {
			return err
		}
	}

	dumpStaticInits(w, "ctors", m.Ctors)
	dumpStaticInits(w, "dtors", m.Dtors)
	return nil
}

func dumpStaticInits(w io.Writer, label string, inits []StaticInit) {
	if len(inits) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s=%d\n", label, len(inits))
	for _, c := range inits {
		data := ""
		if c.Data.Kind != OperandNone {
			data = " data=" + operandStr(c.Data)
		}
		fmt.Fprintf(w, "  priority=%d f%d%s\n", c.Priority, c.Func, data)
	}
}

func dumpFunc(w io.Writer, m *Module, f *Func) error {
	if w == nil || f == nil {
		return nil
	}
	var attrs []string
	if f.Linkage != LinkExternal {
		attrs = append(attrs, f.Linkage.String())
	}
	if f.Visibility != VisibilityDefault {
		attrs = append(attrs, f.Visibility.String())
	}
	if f.Attrs&AttrNoReturn != 0 {
		attrs = append(attrs, "noreturn")
	}
	if f.Attrs&AttrIntrinsic != 0 {
		attrs = append(attrs, "intrinsic")
	}
	if f.Attrs&AttrNoSanitize != 0 {
		attrs = append(attrs, "nosanitize")
	}
	if f.VarArg {
		attrs = append(attrs, "vararg")
	}
	if f.Comdat != "" {
		attrs = append(attrs, "comdat="+f.Comdat)
	}
	suffix := ""
	if len(attrs) > 0 {
		suffix = " [" + strings.Join(attrs, " ") + "]"
	}
	if f.IsDeclaration() {
		fmt.Fprintf(w, "\ndeclare %s%s\n", f.Name, suffix)
		return nil
	}
	fmt.Fprintf(w, "\nfn %s%s:\n", f.Name, suffix)
	if f.PCSections != nil {
		dumpPCSections(w, "  ", f.PCSections)
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Instrs {
			dumpInstr(w, &bb.Instrs[j])
		}
		dumpTerm(w, &bb.Term)
	}
	return nil
}

func dumpPCSections(w io.Writer, indent string, md *PCSections) {
	for _, e := range md.Entries {
		if len(e.Aux) > 0 {
			fmt.Fprintf(w, "%s!pcsections %s %v\n", indent, e.Section, e.Aux)
		} else {
			fmt.Fprintf(w, "%s!pcsections %s\n", indent, e.Section)
		}
	}
}

func dumpInstr(w io.Writer, in *Instr) {
	prefix := "    "
	if in.Result != NoValueID {
		prefix = fmt.Sprintf("    v%d = ", in.Result)
	}
	switch in.Kind {
	case InstrAlloca:
		fmt.Fprintf(w, "%salloca %s ; %s\n", prefix, in.Alloca.Elem, in.Alloca.Name)
	case InstrLoad:
		if in.Load.Ordering != OrderingNotAtomic {
			fmt.Fprintf(w, "%sload atomic %s %s %s %s\n", prefix, in.Load.Type, operandStr(in.Load.Addr), in.Load.Ordering, in.Load.Scope)
		} else {
			fmt.Fprintf(w, "%sload %s %s\n", prefix, in.Load.Type, operandStr(in.Load.Addr))
		}
	case InstrStore:
		if in.Store.Ordering != OrderingNotAtomic {
			fmt.Fprintf(w, "%sstore atomic %s -> %s %s %s\n", prefix, operandStr(in.Store.Val), operandStr(in.Store.Addr), in.Store.Ordering, in.Store.Scope)
		} else {
			fmt.Fprintf(w, "%sstore %s -> %s\n", prefix, operandStr(in.Store.Val), operandStr(in.Store.Addr))
		}
	case InstrCall:
		tail := ""
		if in.Call.Tail {
			tail = "tail "
		}
		callee := operandStr(in.Call.Callee.Value)
		if in.Call.Callee.Kind == CalleeFunc {
			callee = fmt.Sprintf("f%d", in.Call.Callee.Func)
		}
		args := make([]string, len(in.Call.Args))
		for i, a := range in.Call.Args {
			args[i] = operandStr(a)
		}
		fmt.Fprintf(w, "%s%scall %s(%s)\n", prefix, tail, callee, strings.Join(args, ", "))
	case InstrPtrAdd:
		fmt.Fprintf(w, "%sptradd %s, %s\n", prefix, operandStr(in.PtrAdd.Base), operandStr(in.PtrAdd.Offset))
	case InstrPtrCast:
		fmt.Fprintf(w, "%sptrcast %s\n", prefix, operandStr(in.PtrCast.Src))
	case InstrLifetime:
		marker := "end"
		if in.Lifetime.Start {
			marker = "start"
		}
		fmt.Fprintf(w, "%slifetime.%s %s\n", prefix, marker, operandStr(in.Lifetime.Ptr))
	case InstrAssume:
		args := make([]string, len(in.Assume.Args))
		for i, a := range in.Assume.Args {
			args[i] = operandStr(a)
		}
		fmt.Fprintf(w, "%sassume %s\n", prefix, strings.Join(args, ", "))
	case InstrAtomicRMW:
		fmt.Fprintf(w, "%satomicrmw %s, %s %s %s\n", prefix, operandStr(in.RMW.Addr), operandStr(in.RMW.Val), in.RMW.Ordering, in.RMW.Scope)
	case InstrAtomicCmpXchg:
		fmt.Fprintf(w, "%scmpxchg %s, %s, %s %s %s\n", prefix, operandStr(in.CmpXchg.Addr), operandStr(in.CmpXchg.Expected), operandStr(in.CmpXchg.New), in.CmpXchg.Ordering, in.CmpXchg.Scope)
	case InstrFence:
		fmt.Fprintf(w, "%sfence %s %s\n", prefix, in.Fence.Ordering, in.Fence.Scope)
	case InstrBinOp:
		fmt.Fprintf(w, "%sbinop.%d %s, %s\n", prefix, in.BinOp.Op, operandStr(in.BinOp.L), operandStr(in.BinOp.R))
	default:
		fmt.Fprintf(w, "%sunknown\n", prefix)
	}
	if in.PCSections != nil {
		dumpPCSections(w, "      ", in.PCSections)
	}
}

func dumpTerm(w io.Writer, t *Terminator) {
	switch t.Kind {
	case TermRet:
		if t.Ret.HasValue {
			fmt.Fprintf(w, "    ret %s\n", operandStr(t.Ret.Value))
		} else {
			fmt.Fprintf(w, "    ret\n")
		}
	case TermBr:
		fmt.Fprintf(w, "    br bb%d\n", t.Br.Target)
	case TermCondBr:
		fmt.Fprintf(w, "    condbr %s, bb%d, bb%d\n", operandStr(t.CondBr.Cond), t.CondBr.Then, t.CondBr.Else)
	case TermUnreachable:
		fmt.Fprintf(w, "    unreachable\n")
	default:
		fmt.Fprintf(w, "    <no terminator>\n")
	}
}

func operandStr(op Operand) string {
	switch op.Kind {
	case OperandValue:
		return fmt.Sprintf("v%d", op.Value)
	case OperandGlobal:
		return fmt.Sprintf("G%d", op.Global)
	case OperandFunc:
		return fmt.Sprintf("f%d", op.Func)
	case OperandConst:
		return fmt.Sprintf("%d", op.Const)
	default:
		return "_"
	}
}
