package value

import "fmt"

// Closure pairs a compiled Function with the upvalues it captured at
// CLOSURE-time. Every call target the VM executes is a
// Closure, even for functions that capture nothing.
type Closure struct {
	Header
	Function *Function
	Upvalues []*Upvalue
}

var _ HeapObject = (*Closure)(nil)

func (c *Closure) TypeName() string { return "function" }

func (c *Closure) String() string {
	if c.Function.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<function %s>", c.Function.Name.Chars)
}

func (c *Closure) Trace(mark func(Value)) {
	mark(Object(c.Function))
	for _, uv := range c.Upvalues {
		mark(Object(uv))
	}
}
