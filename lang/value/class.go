package value

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Class is a runtime class object: a name and a method table. Single
// inheritance is implemented by copying the superclass's
// method table into the subclass's at INHERIT time, so method lookup itself
// never walks a superclass chain.
type Class struct {
	Header
	Name    *ObjString
	Methods *swiss.Map[*ObjString, *Closure]
}

var _ HeapObject = (*Class)(nil)

// NewClass allocates a Class with an empty method table. It does not link
// the object into the heap; callers go through lang/gc for that.
func NewClass(name *ObjString) *Class {
	return &Class{Name: name, Methods: swiss.NewMap[*ObjString, *Closure](8)}
}

func (c *Class) TypeName() string { return "class" }
func (c *Class) String() string   { return fmt.Sprintf("<class %s>", c.Name.Chars) }

func (c *Class) Trace(mark func(Value)) {
	mark(Object(c.Name))
	c.Methods.Iter(func(name *ObjString, m *Closure) bool {
		mark(Object(name))
		mark(Object(m))
		return false
	})
}

// FindMethod looks up a method by interned name. Methods are always keyed
// by the interned *ObjString pointer, never by string content.
func (c *Class) FindMethod(name *ObjString) (*Closure, bool) {
	return c.Methods.Get(name)
}
