package ir

// Param is a formal function parameter.
type Param struct {
	Name string
	Type Type
}

// Func is a function definition or declaration. A function with no
// blocks is a declaration.
type Func struct {
	ID   FuncID
	Name string

	Linkage    Linkage
	Visibility Visibility
	Attrs      FuncAttrs
	VarArg     bool

	Params []Param
	Result Type

	Blocks []Block
	Entry  BlockID

	// NumValues is the number of instruction result values allocated
	// in this function; ValueIDs are dense in [0, NumValues).
	NumValues int32

	// Comdat, when non-empty, names the link-time deduplication group
	// this function belongs to.
	Comdat string

	// PCSections carries attached program-counter section metadata.
	PCSections *PCSections
}

// IsDeclaration reports whether the function has no body.
func (f *Func) IsDeclaration() bool {
	return f == nil || len(f.Blocks) == 0
}

// Block returns the block with the given ID, or nil.
func (f *Func) Block(id BlockID) *Block {
	if f == nil || id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
