package value

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Instance is a runtime object of some Class, carrying its own field table.
// Fields and methods occupy a single namespace at the language level (a
// GET_PROPERTY checks fields first, then falls back to a bound method), but
// are stored in separate tables here to avoid boxing every bound method
// into the fields map.
type Instance struct {
	Header
	Class  *Class
	Fields *swiss.Map[*ObjString, Value]
}

var _ HeapObject = (*Instance)(nil)

// NewInstance allocates an Instance with an empty field table.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: swiss.NewMap[*ObjString, Value](8)}
}

func (i *Instance) TypeName() string { return "instance" }
func (i *Instance) String() string   { return fmt.Sprintf("<object %s>", i.Class.Name.Chars) }

func (i *Instance) Trace(mark func(Value)) {
	mark(Object(i.Class))
	i.Fields.Iter(func(name *ObjString, v Value) bool {
		mark(Object(name))
		mark(v)
		return false
	})
}
