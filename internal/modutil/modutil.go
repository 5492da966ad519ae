// Package modutil synthesizes module-level initialization scaffolding:
// runtime callee declarations, one-call init functions and entries on
// the module's global constructor and destructor lists.
package modutil

import (
	"sanmd/internal/ir"
)

// DeclareFunc returns the module's declaration of name, creating an
// external declaration with the given signature if none exists yet.
func DeclareFunc(m *ir.Module, name string, result ir.Type, params ...ir.Param) *ir.Func {
	if f := m.FuncByName(name); f != nil {
		return f
	}
	return m.NewFunc(name, result, params...)
}

// CreateInitCallFunc synthesizes an internal function named ctorName
// whose body is a single call to the (declared-on-demand) function
// initName with the given arguments, followed by a void return. The
// argument types define initName's signature when it is first declared.
func CreateInitCallFunc(m *ir.Module, ctorName, initName string, argTypes []ir.Type, args []ir.Operand) *ir.Func {
	params := make([]ir.Param, len(argTypes))
	for i, t := range argTypes {
		params[i] = ir.Param{Type: t}
	}
	callee := DeclareFunc(m, initName, ir.TypeVoid, params...)

	ctor := m.NewFunc(ctorName, ir.TypeVoid)
	ctor.Linkage = ir.LinkInternal
	b := ir.NewFuncBuilder(m, ctor)
	b.Call(callee.ID, args...)
	b.Ret()
	return ctor
}

// AppendToGlobalCtors adds an entry to the module's global constructor
// list. Entries run at program start in ascending priority order; data
// optionally associates the entry with a symbol for COMDAT-aware
// linkers.
func AppendToGlobalCtors(m *ir.Module, fn ir.FuncID, priority int32, data ir.Operand) {
	m.Ctors = append(m.Ctors, ir.StaticInit{Priority: priority, Func: fn, Data: data})
}

// AppendToGlobalDtors adds an entry to the module's global destructor
// list. Entries run at program teardown in descending priority order.
func AppendToGlobalDtors(m *ir.Module, fn ir.FuncID, priority int32, data ir.Operand) {
	m.Dtors = append(m.Dtors, ir.StaticInit{Priority: priority, Func: fn, Data: data})
}
