package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// NewModule creates an empty module for the given target.
func NewModule(name string, target Target) *Module {
	return &Module{
		Name:       name,
		Target:     target,
		funcByName: make(map[string]FuncID),
	}
}

// NewFunc appends a new empty function definition-in-progress and
// returns it. The function is a declaration until blocks are added.
func (m *Module) NewFunc(name string, result Type, params ...Param) *Func {
	raw, err := safecast.Conv[int32](len(m.Funcs))
	if err != nil {
		panic(fmt.Errorf("ir: func id overflow: %w", err))
	}
	f := &Func{
		ID:     FuncID(raw),
		Name:   name,
		Result: result,
		Params: params,
		Entry:  NoBlockID,
	}
	m.Funcs = append(m.Funcs, f)
	if m.funcByName == nil {
		m.funcByName = make(map[string]FuncID)
	}
	if name != "" {
		m.funcByName[name] = f.ID
	}
	return f
}

// AddGlobal appends a global variable and returns it.
func (m *Module) AddGlobal(g Global) *Global {
	raw, err := safecast.Conv[int32](len(m.Globals))
	if err != nil {
		panic(fmt.Errorf("ir: global id overflow: %w", err))
	}
	g.ID = GlobalID(raw)
	out := &g
	m.Globals = append(m.Globals, out)
	return out
}

// FuncBuilder appends blocks and instructions to a function. Blocks
// are addressed by ID because the backing slice may reallocate.
type FuncBuilder struct {
	M   *Module
	F   *Func
	cur BlockID
}

// NewFuncBuilder starts building the given function. If the function
// has no blocks yet, an entry block is created.
func NewFuncBuilder(m *Module, f *Func) *FuncBuilder {
	b := &FuncBuilder{M: m, F: f, cur: NoBlockID}
	if len(f.Blocks) == 0 {
		b.cur = b.NewBlock()
		f.Entry = b.cur
	} else {
		b.cur = f.Entry
	}
	return b
}

// NewBlock appends an empty block and returns its ID without changing
// the current insertion point.
func (b *FuncBuilder) NewBlock() BlockID {
	raw, err := safecast.Conv[int32](len(b.F.Blocks))
	if err != nil {
		panic(fmt.Errorf("ir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	b.F.Blocks = append(b.F.Blocks, Block{ID: id})
	return id
}

// SetBlock moves the insertion point to the given block.
func (b *FuncBuilder) SetBlock(id BlockID) {
	b.cur = id
}

// CurBlock returns the current insertion block's ID.
func (b *FuncBuilder) CurBlock() BlockID {
	return b.cur
}

func (b *FuncBuilder) block() *Block {
	bb := b.F.Block(b.cur)
	if bb == nil {
		panic(fmt.Errorf("ir: invalid insertion block bb%d in %s", b.cur, b.F.Name))
	}
	return bb
}

func (b *FuncBuilder) newValue() ValueID {
	id := ValueID(b.F.NumValues)
	b.F.NumValues++
	return id
}

func (b *FuncBuilder) append(in Instr) ValueID {
	bb := b.block()
	bb.Instrs = append(bb.Instrs, in)
	return in.Result
}

// Alloca allocates a stack slot and returns its address value.
func (b *FuncBuilder) Alloca(elem Type, name string) ValueID {
	return b.append(Instr{
		Kind:   InstrAlloca,
		Result: b.newValue(),
		Alloca: AllocaInstr{Elem: elem, Name: name},
	})
}

// Load reads memory non-atomically.
func (b *FuncBuilder) Load(addr Operand, ty Type) ValueID {
	return b.append(Instr{
		Kind:   InstrLoad,
		Result: b.newValue(),
		Load:   LoadInstr{Addr: addr, Type: ty},
	})
}

// AtomicLoad reads memory with the given ordering and scope.
func (b *FuncBuilder) AtomicLoad(addr Operand, ty Type, ord AtomicOrdering, scope SyncScope) ValueID {
	return b.append(Instr{
		Kind:   InstrLoad,
		Result: b.newValue(),
		Load:   LoadInstr{Addr: addr, Type: ty, Ordering: ord, Scope: scope},
	})
}

// Store writes val to addr non-atomically.
func (b *FuncBuilder) Store(val, addr Operand) {
	b.append(Instr{
		Kind:   InstrStore,
		Result: NoValueID,
		Store:  StoreInstr{Val: val, Addr: addr},
	})
}

// AtomicStore writes val to addr with the given ordering and scope.
func (b *FuncBuilder) AtomicStore(val, addr Operand, ord AtomicOrdering, scope SyncScope) {
	b.append(Instr{
		Kind:   InstrStore,
		Result: NoValueID,
		Store:  StoreInstr{Val: val, Addr: addr, Ordering: ord, Scope: scope},
	})
}

// Call emits a direct call.
func (b *FuncBuilder) Call(callee FuncID, args ...Operand) ValueID {
	result := NoValueID
	if f := b.M.Func(callee); f != nil && f.Result != TypeVoid {
		result = b.newValue()
	}
	return b.append(Instr{
		Kind:   InstrCall,
		Result: result,
		Call:   CallInstr{Callee: Callee{Kind: CalleeFunc, Func: callee}, Args: args},
	})
}

// TailCall emits a direct call marked as a tail call.
func (b *FuncBuilder) TailCall(callee FuncID, args ...Operand) ValueID {
	result := NoValueID
	if f := b.M.Func(callee); f != nil && f.Result != TypeVoid {
		result = b.newValue()
	}
	return b.append(Instr{
		Kind:   InstrCall,
		Result: result,
		Call:   CallInstr{Callee: Callee{Kind: CalleeFunc, Func: callee}, Args: args, Tail: true},
	})
}

// CallIndirect emits a call through a value.
func (b *FuncBuilder) CallIndirect(callee Operand, args ...Operand) ValueID {
	return b.append(Instr{
		Kind:   InstrCall,
		Result: b.newValue(),
		Call:   CallInstr{Callee: Callee{Kind: CalleeValue, Value: callee}, Args: args},
	})
}

// PtrAdd offsets a pointer.
func (b *FuncBuilder) PtrAdd(base, offset Operand) ValueID {
	return b.append(Instr{
		Kind:   InstrPtrAdd,
		Result: b.newValue(),
		PtrAdd: PtrAddInstr{Base: base, Offset: offset},
	})
}

// PtrCast reinterprets a pointer.
func (b *FuncBuilder) PtrCast(src Operand) ValueID {
	return b.append(Instr{
		Kind:    InstrPtrCast,
		Result:  b.newValue(),
		PtrCast: PtrCastInstr{Src: src},
	})
}

// Lifetime marks the start or end of a stack slot's lifetime.
func (b *FuncBuilder) Lifetime(start bool, ptr Operand) {
	b.append(Instr{
		Kind:     InstrLifetime,
		Result:   NoValueID,
		Lifetime: LifetimeInstr{Start: start, Ptr: ptr},
	})
}

// Assume emits a droppable optimizer hint.
func (b *FuncBuilder) Assume(args ...Operand) {
	b.append(Instr{
		Kind:   InstrAssume,
		Result: NoValueID,
		Assume: AssumeInstr{Args: args},
	})
}

// AtomicRMW emits an atomic read-modify-write.
func (b *FuncBuilder) AtomicRMW(addr, val Operand, ord AtomicOrdering, scope SyncScope) ValueID {
	return b.append(Instr{
		Kind:   InstrAtomicRMW,
		Result: b.newValue(),
		RMW:    AtomicRMWInstr{Addr: addr, Val: val, Ordering: ord, Scope: scope},
	})
}

// AtomicCmpXchg emits an atomic compare-and-exchange.
func (b *FuncBuilder) AtomicCmpXchg(addr, expected, newVal Operand, ord AtomicOrdering, scope SyncScope) ValueID {
	return b.append(Instr{
		Kind:    InstrAtomicCmpXchg,
		Result:  b.newValue(),
		CmpXchg: AtomicCmpXchgInstr{Addr: addr, Expected: expected, New: newVal, Ordering: ord, Scope: scope},
	})
}

// Fence emits a standalone memory fence.
func (b *FuncBuilder) Fence(ord AtomicOrdering, scope SyncScope) {
	b.append(Instr{
		Kind:   InstrFence,
		Result: NoValueID,
		Fence:  FenceInstr{Ordering: ord, Scope: scope},
	})
}

// BinOp emits a two-operand arithmetic operation.
func (b *FuncBuilder) BinOp(op BinOpCode, l, r Operand) ValueID {
	return b.append(Instr{
		Kind:   InstrBinOp,
		Result: b.newValue(),
		BinOp:  BinOpInstr{Op: op, L: l, R: r},
	})
}

// Ret terminates the current block with a void return.
func (b *FuncBuilder) Ret() {
	b.block().Term = Terminator{Kind: TermRet}
}

// RetValue terminates the current block returning a value.
func (b *FuncBuilder) RetValue(v Operand) {
	b.block().Term = Terminator{Kind: TermRet, Ret: RetTerm{HasValue: true, Value: v}}
}

// Br terminates the current block with an unconditional branch.
func (b *FuncBuilder) Br(target BlockID) {
	b.block().Term = Terminator{Kind: TermBr, Br: BrTerm{Target: target}}
}

// CondBr terminates the current block with a conditional branch.
func (b *FuncBuilder) CondBr(cond Operand, then, els BlockID) {
	b.block().Term = Terminator{Kind: TermCondBr, CondBr: CondBrTerm{Cond: cond, Then: then, Else: els}}
}

// Unreachable terminates the current block as unreachable.
func (b *FuncBuilder) Unreachable() {
	b.block().Term = Terminator{Kind: TermUnreachable}
}
