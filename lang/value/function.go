package value

import (
	"fmt"

	"github.com/mna/yarrow/lang/bytecode"
)

// Function is a compiled function: produced once by the compiler for each
// `fun` declaration, method, and the synthetic top-level script, and never
// mutated afterward.
type Function struct {
	Header
	Name         *ObjString // nil for the top-level script
	Arity        int
	UpvalueCount int
	Chunk        *bytecode.Chunk
}

var _ HeapObject = (*Function)(nil)

func (f *Function) TypeName() string { return "function" }

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<function %s>", f.Name.Chars)
}

// Trace marks the function's name and every object-valued constant in its
// chunk: these are covered transitively once the root Function objects are
// marked.
func (f *Function) Trace(mark func(Value)) {
	if f.Name != nil {
		mark(Object(f.Name))
	}
	for _, c := range f.Chunk.Constants {
		if v, ok := c.(Value); ok {
			mark(v)
		}
	}
}
