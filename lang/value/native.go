package value

import "fmt"

// NativeFn is the signature every native (built-in) function implements.
// args excludes the receiver; a native never sees a `this`. Errors are
// reported by returning an ok of false along with a message, since natives
// run inside the VM's dispatch loop and must not import lang/errors
// directly.
type NativeFn func(args []Value) (Value, string, bool)

// Native wraps a Go-implemented function so it can be called like any other
// closure from VM bytecode.
type Native struct {
	Header
	Name *ObjString
	Fn   NativeFn
}

var _ HeapObject = (*Native)(nil)

func (n *Native) TypeName() string { return "function" }
func (n *Native) String() string   { return fmt.Sprintf("<native %s>", n.Name.Chars) }

func (n *Native) Trace(mark func(Value)) {
	mark(Object(n.Name))
}
