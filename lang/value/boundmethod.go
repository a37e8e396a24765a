package value

import "fmt"

// BoundMethod pairs a receiver with the method Closure looked up for it, so
// that `instance.method` can be passed around and later called without the
// receiver. `this` inside the method is stack slot 0, which the VM
// overwrites with Receiver when the bound method is called.
type BoundMethod struct {
	Header
	Receiver *Instance
	Method   *Closure
}

var _ HeapObject = (*BoundMethod)(nil)

func (b *BoundMethod) TypeName() string { return "function" }

func (b *BoundMethod) String() string {
	if b.Method.Function.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<function %s>", b.Method.Function.Name.Chars)
}

func (b *BoundMethod) Trace(mark func(Value)) {
	mark(Object(b.Receiver))
	mark(Object(b.Method))
}
