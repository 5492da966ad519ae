package ir

// Use records one use of a value: operand OperandIdx of the Instr-th
// instruction in Block, or of the block's terminator when Term is set.
type Use struct {
	Block      BlockID
	Instr      int32
	OperandIdx int32
	Term       bool
}

// UseIndex maps each value defined in a function to its uses. Uses are
// recorded in block/instruction order, so iteration is deterministic.
type UseIndex struct {
	f    *Func
	uses map[ValueID][]Use
}

// BuildUseIndex scans a function and indexes every value use,
// including uses by block terminators.
func BuildUseIndex(f *Func) *UseIndex {
	ui := &UseIndex{f: f, uses: make(map[ValueID][]Use)}
	if f == nil {
		return ui
	}
	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for ii := range bb.Instrs {
			in := &bb.Instrs[ii]
			in.forEachOperand(func(idx int, op Operand) {
				if op.Kind != OperandValue {
					return
				}
				ui.uses[op.Value] = append(ui.uses[op.Value], Use{
					Block:      bb.ID,
					Instr:      int32(ii),
					OperandIdx: int32(idx),
				})
			})
		}
		bb.Term.forEachOperand(func(idx int, op Operand) {
			if op.Kind != OperandValue {
				return
			}
			ui.uses[op.Value] = append(ui.uses[op.Value], Use{
				Block:      bb.ID,
				OperandIdx: int32(idx),
				Term:       true,
			})
		})
	}
	return ui
}

// Users returns all recorded uses of a value. The returned slice is
// owned by the index and must not be modified.
func (ui *UseIndex) Users(v ValueID) []Use {
	return ui.uses[v]
}

// UserInstr returns the instruction performing a use, or nil when the
// use is by a block terminator.
func (ui *UseIndex) UserInstr(u Use) *Instr {
	if u.Term {
		return nil
	}
	bb := ui.f.Block(u.Block)
	if bb == nil || u.Instr < 0 || int(u.Instr) >= len(bb.Instrs) {
		return nil
	}
	return &bb.Instrs[u.Instr]
}
