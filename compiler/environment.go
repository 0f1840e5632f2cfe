package compiler

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type binding struct {
	value value.Value
	typ   types.Type
}

// Environment is one scope frame: a name-to-binding map with a back
// reference to the enclosing frame. Frames form a chain that lookup walks
// outward; a frame never owns its parent. Exactly one frame is current at
// any point of the lowering pass.
type Environment struct {
	records map[string]binding
	parent  *Environment
	name    string
}

func NewEnvironment(parent *Environment, name string) *Environment {
	return &Environment{
		records: map[string]binding{},
		parent:  parent,
		name:    name,
	}
}

// Define binds name in this frame, overwriting any existing binding here
// and leaving enclosing frames alone.
func (e *Environment) Define(name string, v value.Value, t types.Type) value.Value {
	e.records[name] = binding{value: v, typ: t}
	return v
}

// Lookup resolves name through this frame and then each ancestor, returning
// the first hit.
func (e *Environment) Lookup(name string) (value.Value, types.Type, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.records[name]; ok {
			return b.value, b.typ, true
		}
	}
	return nil, nil, false
}

// LookupLocal resolves name in this frame only.
func (e *Environment) LookupLocal(name string) (value.Value, types.Type, bool) {
	b, ok := e.records[name]
	if !ok {
		return nil, nil, false
	}
	return b.value, b.typ, true
}
