package ir

// Target identifies the object format a module is compiled for.
type Target struct {
	Format BinFormat
	Arch   string
	// PtrSize is the pointer width in bytes.
	PtrSize uint8
}

// SupportsCOMDAT reports whether the target's linker can collapse
// identical definitions across translation units into one.
func (t Target) SupportsCOMDAT() bool {
	return t.Format == BinFormatELF || t.Format == BinFormatCOFF
}

// Global is a module-level variable.
type Global struct {
	ID         GlobalID
	Name       string
	Type       Type
	Linkage    Linkage
	Visibility Visibility
	Const      bool
	// HasInit distinguishes a zero initializer from no initializer at
	// all (a pure declaration, e.g. an extern_weak marker).
	HasInit bool
	Init    uint64
}

// StaticInit is one entry of the module's global constructor or
// destructor list. Entries run in ascending priority order.
type StaticInit struct {
	Priority int32
	Func     FuncID
	// Data optionally associates the entry with a symbol; linkers drop
	// the entry when the associated symbol's COMDAT group loses.
	Data Operand
}

// Module is a whole compiled program unit.
type Module struct {
	Name      string
	Target    Target
	CodeModel CodeModel

	Funcs   []*Func
	Globals []*Global
	Ctors   []StaticInit
	Dtors   []StaticInit

	funcByName map[string]FuncID
}

// Func returns the function with the given ID, or nil.
func (m *Module) Func(id FuncID) *Func {
	if m == nil || id < 0 || int(id) >= len(m.Funcs) {
		return nil
	}
	return m.Funcs[id]
}

// FuncByName returns the function with the given name, or nil.
func (m *Module) FuncByName(name string) *Func {
	if m == nil {
		return nil
	}
	id, ok := m.funcByName[name]
	if !ok {
		return nil
	}
	return m.Func(id)
}

// Global returns the global with the given ID, or nil.
func (m *Module) Global(id GlobalID) *Global {
	if m == nil || id < 0 || int(id) >= len(m.Globals) {
		return nil
	}
	return m.Globals[id]
}

// rebuildIndex recreates the name lookup after decoding from disk.
func (m *Module) rebuildIndex() {
	m.funcByName = make(map[string]FuncID, len(m.Funcs))
	for _, f := range m.Funcs {
		if f != nil && f.Name != "" {
			m.funcByName[f.Name] = f.ID
		}
	}
}
