package ir

// OperandKind distinguishes instruction operand sources.
type OperandKind uint8

const (
	// OperandNone is the zero operand.
	OperandNone OperandKind = iota
	// OperandValue references another instruction's result.
	OperandValue
	// OperandGlobal references a module global.
	OperandGlobal
	// OperandFunc references a function address.
	OperandFunc
	// OperandConst is an integer constant.
	OperandConst
)

// Operand is a use of a value by an instruction or terminator.
type Operand struct {
	Kind   OperandKind
	Value  ValueID
	Global GlobalID
	Func   FuncID
	Const  uint64
}

// ValueOp references another instruction's result.
func ValueOp(v ValueID) Operand { return Operand{Kind: OperandValue, Value: v} }

// GlobalOp references a module global.
func GlobalOp(g GlobalID) Operand { return Operand{Kind: OperandGlobal, Global: g} }

// FuncOp references a function address.
func FuncOp(f FuncID) Operand { return Operand{Kind: OperandFunc, Func: f} }

// ConstOp is an integer constant operand.
func ConstOp(c uint64) Operand { return Operand{Kind: OperandConst, Const: c} }

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrAlloca allocates stack memory and yields its address.
	InstrAlloca InstrKind = iota
	// InstrLoad reads memory, possibly atomically.
	InstrLoad
	// InstrStore writes memory, possibly atomically.
	InstrStore
	// InstrCall calls a function.
	InstrCall
	// InstrPtrAdd offsets a pointer; the result aliases the base.
	InstrPtrAdd
	// InstrPtrCast reinterprets a pointer without changing its value.
	InstrPtrCast
	// InstrLifetime annotates the start or end of a stack slot's lifetime.
	InstrLifetime
	// InstrAssume is a droppable optimizer hint with no runtime semantics.
	InstrAssume
	// InstrAtomicRMW is an atomic read-modify-write operation.
	InstrAtomicRMW
	// InstrAtomicCmpXchg is an atomic compare-and-exchange operation.
	InstrAtomicCmpXchg
	// InstrFence is a standalone memory ordering fence.
	InstrFence
	// InstrBinOp is a two-operand arithmetic operation.
	InstrBinOp
)

// Instr is one instruction. Result is the value it defines, or
// NoValueID for instructions without a result.
type Instr struct {
	Kind   InstrKind
	Result ValueID

	Alloca   AllocaInstr
	Load     LoadInstr
	Store    StoreInstr
	Call     CallInstr
	PtrAdd   PtrAddInstr
	PtrCast  PtrCastInstr
	Lifetime LifetimeInstr
	Assume   AssumeInstr
	RMW      AtomicRMWInstr
	CmpXchg  AtomicCmpXchgInstr
	Fence    FenceInstr
	BinOp    BinOpInstr

	// PCSections carries attached program-counter section metadata.
	PCSections *PCSections
}

// AllocaInstr allocates one element of Elem on the stack.
type AllocaInstr struct {
	Elem Type
	Name string
}

type LoadInstr struct {
	Addr     Operand
	Type     Type
	Ordering AtomicOrdering
	Scope    SyncScope
}

// StoreInstr writes Val to Addr. Addr is the destination operand.
type StoreInstr struct {
	Val      Operand
	Addr     Operand
	Ordering AtomicOrdering
	Scope    SyncScope
}

// CalleeKind distinguishes call target types.
type CalleeKind uint8

const (
	// CalleeFunc is a direct call to a known function.
	CalleeFunc CalleeKind = iota
	// CalleeValue is an indirect call through a value.
	CalleeValue
)

// Callee is a call target.
type Callee struct {
	Kind  CalleeKind
	Func  FuncID
	Value Operand
}

// CallInstr calls a function. Tail marks calls whose stack frame is
// elided by the caller.
type CallInstr struct {
	Callee Callee
	Args   []Operand
	Tail   bool
}

type PtrAddInstr struct {
	Base   Operand
	Offset Operand
}

type PtrCastInstr struct {
	Src Operand
}

// LifetimeInstr marks the start (Start=true) or end of the addressed
// stack slot's lifetime.
type LifetimeInstr struct {
	Start bool
	Ptr   Operand
}

type AssumeInstr struct {
	Args []Operand
}

type AtomicRMWInstr struct {
	Addr     Operand
	Val      Operand
	Ordering AtomicOrdering
	Scope    SyncScope
}

type AtomicCmpXchgInstr struct {
	Addr     Operand
	Expected Operand
	New      Operand
	Ordering AtomicOrdering
	Scope    SyncScope
}

type FenceInstr struct {
	Ordering AtomicOrdering
	Scope    SyncScope
}

// BinOpCode enumerates two-operand arithmetic operations.
type BinOpCode uint8

const (
	BinAdd BinOpCode = iota
	BinSub
	BinMul
	BinAnd
	BinOr
	BinXor
)

type BinOpInstr struct {
	Op BinOpCode
	L  Operand
	R  Operand
}

// MayReadOrWriteMemory reports whether the instruction may access
// memory. Calls are conservatively assumed to.
func (in *Instr) MayReadOrWriteMemory() bool {
	switch in.Kind {
	case InstrLoad, InstrStore, InstrCall, InstrAtomicRMW, InstrAtomicCmpXchg, InstrFence:
		return true
	default:
		return false
	}
}

// AtomicSyncScope returns the synchronization scope of an atomic
// memory operation. ok is false for non-atomic instructions, including
// plain loads and stores.
func (in *Instr) AtomicSyncScope() (scope SyncScope, ok bool) {
	switch in.Kind {
	case InstrLoad:
		if in.Load.Ordering != OrderingNotAtomic {
			return in.Load.Scope, true
		}
	case InstrStore:
		if in.Store.Ordering != OrderingNotAtomic {
			return in.Store.Scope, true
		}
	case InstrAtomicRMW:
		return in.RMW.Scope, true
	case InstrAtomicCmpXchg:
		return in.CmpXchg.Scope, true
	case InstrFence:
		return in.Fence.Scope, true
	}
	return ScopeSystem, false
}

// IsLifetimeStartOrEnd reports whether the instruction is a lifetime
// annotation.
func (in *Instr) IsLifetimeStartOrEnd() bool {
	return in.Kind == InstrLifetime
}

// IsDroppable reports whether the instruction is a non-semantic use
// that the compiler may delete without changing program behavior.
func (in *Instr) IsDroppable() bool {
	return in.Kind == InstrAssume
}

// forEachOperand visits every operand of the instruction. The index is
// stable per instruction kind; for stores, index 1 is the address.
func (in *Instr) forEachOperand(fn func(idx int, op Operand)) {
	switch in.Kind {
	case InstrLoad:
		fn(0, in.Load.Addr)
	case InstrStore:
		fn(0, in.Store.Val)
		fn(1, in.Store.Addr)
	case InstrCall:
		if in.Call.Callee.Kind == CalleeValue {
			fn(0, in.Call.Callee.Value)
		}
		for i, a := range in.Call.Args {
			fn(1+i, a)
		}
	case InstrPtrAdd:
		fn(0, in.PtrAdd.Base)
		fn(1, in.PtrAdd.Offset)
	case InstrPtrCast:
		fn(0, in.PtrCast.Src)
	case InstrLifetime:
		fn(0, in.Lifetime.Ptr)
	case InstrAssume:
		for i, a := range in.Assume.Args {
			fn(i, a)
		}
	case InstrAtomicRMW:
		fn(0, in.RMW.Addr)
		fn(1, in.RMW.Val)
	case InstrAtomicCmpXchg:
		fn(0, in.CmpXchg.Addr)
		fn(1, in.CmpXchg.Expected)
		fn(2, in.CmpXchg.New)
	case InstrBinOp:
		fn(0, in.BinOp.L)
		fn(1, in.BinOp.R)
	}
}
