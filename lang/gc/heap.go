// Package gc implements the tri-color mark-sweep collector and the sole
// allocator for every lang/value heap object. Nothing outside
// this package constructs a value.HeapObject: the compiler and VM ask the
// Heap for one, which keeps allocation, string interning, and the
// intrusive object list in one place.
package gc

import (
	"github.com/dolthub/swiss"

	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/value"
)

const (
	minThreshold  = 1 << 20 // 1 MiB floor for the first collection
	growthFactor  = 2
	grayStackInit = 64
)

// Roots is implemented by whatever owns the live Values the collector must
// not reclaim: the VM (operand stack, call frames, globals, open upvalues)
// during normal execution, and the compiler (pending constants) during
// compilation.
type Roots interface {
	EachRoot(mark func(value.Value))
}

// Heap owns every heap-allocated object, the string intern table, and the
// byte-accounting that drives collection. It is not
// safe for concurrent use; the VM and compiler are both single-threaded.
type Heap struct {
	roots Roots

	head      value.HeapObject // intrusive allocation list head
	allocated int64
	nextGC    int64

	strings *swiss.Map[string, *value.ObjString]

	gray []value.HeapObject

	// Collections counts completed mark-sweep cycles, exposed for tests.
	Collections int
}

// New creates an empty heap. SetRoots must be called before the first
// allocation that can trigger a collection, which in practice means before
// any allocation at all once a VM or compiler owns the heap.
func New() *Heap {
	return NewWithThreshold(minThreshold)
}

// NewWithThreshold is like New but overrides the byte count that triggers
// the first collection, letting the CLI's configuration tune GC pressure without touching this package.
func NewWithThreshold(threshold int64) *Heap {
	if threshold <= 0 {
		threshold = minThreshold
	}
	return &Heap{
		nextGC:  threshold,
		strings: swiss.NewMap[string, *value.ObjString](256),
	}
}

// SetRoots installs the root provider. Compiler and VM each call this when
// they take ownership of the heap for a phase.
func (h *Heap) SetRoots(r Roots) { h.roots = r }

// BytesAllocated reports the accounted size of every object not yet swept:
// the survivors of the last collection plus everything allocated since.
func (h *Heap) BytesAllocated() int64 { return h.allocated }

func (h *Heap) link(o value.HeapObject, size int64) {
	value.SetNextObject(o, h.head)
	h.head = o
	h.allocated += size
	if h.allocated > h.nextGC {
		h.Collect()
	}
}

// sizeofString is a rough accounting unit; exact byte-for-byte tracking
// isn't the point, only that allocation pressure trends the collector's
// way.
func sizeofString(s string) int64 { return int64(len(s)) + 32 }

const sizeofObjHeader = 48

// AllocateString interns s, returning the existing ObjString if an equal one
// is already live. Interning means every subsequent `==` between strings of
// equal content is a pointer comparison.
func (h *Heap) AllocateString(s string) *value.ObjString {
	if existing, ok := h.strings.Get(s); ok {
		return existing
	}
	obj := &value.ObjString{Chars: s}
	h.link(obj, sizeofString(s))
	h.strings.Put(s, obj)
	return obj
}

// NewFunction allocates a Function wrapping chunk.
func (h *Heap) NewFunction(name *value.ObjString, arity, upvalues int, chunk *bytecode.Chunk) *value.Function {
	fn := &value.Function{Name: name, Arity: arity, UpvalueCount: upvalues, Chunk: chunk}
	h.link(fn, sizeofObjHeader)
	return fn
}

// NewClosure allocates a Closure over fn with upvalues already resolved.
func (h *Heap) NewClosure(fn *value.Function, upvalues []*value.Upvalue) *value.Closure {
	cl := &value.Closure{Function: fn, Upvalues: upvalues}
	h.link(cl, sizeofObjHeader+int64(8*len(upvalues)))
	return cl
}

// NewUpvalue allocates an open upvalue pointing at location.
func (h *Heap) NewUpvalue(location *value.Value) *value.Upvalue {
	uv := &value.Upvalue{Location: location}
	h.link(uv, sizeofObjHeader)
	return uv
}

// NewClass allocates an empty Class named name.
func (h *Heap) NewClass(name *value.ObjString) *value.Class {
	cls := value.NewClass(name)
	h.link(cls, sizeofObjHeader)
	return cls
}

// NewInstance allocates an Instance of class with an empty field table.
func (h *Heap) NewInstance(class *value.Class) *value.Instance {
	inst := value.NewInstance(class)
	h.link(inst, sizeofObjHeader)
	return inst
}

// NewBoundMethod allocates a BoundMethod pairing receiver and method.
func (h *Heap) NewBoundMethod(receiver *value.Instance, method *value.Closure) *value.BoundMethod {
	bm := &value.BoundMethod{Receiver: receiver, Method: method}
	h.link(bm, sizeofObjHeader)
	return bm
}

// NewNative allocates a Native wrapping fn under the given name.
func (h *Heap) NewNative(name *value.ObjString, fn value.NativeFn) *value.Native {
	n := &value.Native{Name: name, Fn: fn}
	h.link(n, sizeofObjHeader)
	return n
}
