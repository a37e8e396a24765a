// Package value implements the runtime data model: the tagged Value union
// and the heap object variants (String, Function, Closure, Upvalue, Class,
// Instance, BoundMethod, Native). Heap objects are allocated and owned
// exclusively by the garbage collector in lang/gc; this package only fixes
// their shape.
package value

import "fmt"

// Tag discriminates the kind of value stored in a Value.
type Tag uint8

const (
	TagNil Tag = iota
	TagBool
	TagNumber
	TagObject
)

// Value is a tagged union: nil, bool, number (float64) or a pointer to a
// heap object, rendered as a small comparable struct rather than an
// interface so that nil/true/false/number never allocate and structural
// equality is the plain `==` operator.
type Value struct {
	Tag Tag
	Num float64
	Obj HeapObject
}

// Nil is the nil value.
var Nil = Value{Tag: TagNil}

// Bool constructs a boolean Value.
func Bool(b bool) Value {
	if b {
		return Value{Tag: TagBool, Num: 1}
	}
	return Value{Tag: TagBool, Num: 0}
}

// Number constructs a numeric Value.
func Number(f float64) Value { return Value{Tag: TagNumber, Num: f} }

// Object constructs a Value wrapping a heap object.
func Object(o HeapObject) Value { return Value{Tag: TagObject, Obj: o} }

func (v Value) IsNil() bool    { return v.Tag == TagNil }
func (v Value) IsBool() bool   { return v.Tag == TagBool }
func (v Value) IsNumber() bool { return v.Tag == TagNumber }
func (v Value) IsObject() bool { return v.Tag == TagObject }

func (v Value) AsBool() bool      { return v.Num != 0 }
func (v Value) AsNumber() float64 { return v.Num }

// Truthy implements the language's truthiness rule: false and nil are
// falsy, everything else (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagNil:
		return false
	case TagBool:
		return v.AsBool()
	default:
		return true
	}
}

// Equal implements `==`: structural for primitives, pointer-identity for
// heap objects (which, for strings, is equivalent to content equality
// because strings are interned).
func (v Value) Equal(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	switch v.Tag {
	case TagNil:
		return true
	case TagBool, TagNumber:
		return v.Num == other.Num
	case TagObject:
		return v.Obj == other.Obj
	default:
		return false
	}
}

// TypeName returns the short type name used in error messages.
func (v Value) TypeName() string {
	switch v.Tag {
	case TagNil:
		return "nil"
	case TagBool:
		return "bool"
	case TagNumber:
		return "number"
	case TagObject:
		if v.Obj == nil {
			return "object"
		}
		return v.Obj.TypeName()
	default:
		return "unknown"
	}
}

// UpvalueCount reports the function's upvalue count if v wraps a *Function,
// else 0. Exists so lang/bytecode's disassembler (which cannot import this
// package, to avoid an import cycle through Function.Chunk) can introspect
// CLOSURE constants structurally.
func (v Value) UpvalueCount() int {
	if fn, ok := v.Obj.(*Function); ok {
		return fn.UpvalueCount
	}
	return 0
}

// String renders the value the way `print` does: numbers omit
// a trailing ".0", strings print raw, nil prints "nil", and object variants
// print their tagged forms.
func (v Value) String() string {
	switch v.Tag {
	case TagNil:
		return "nil"
	case TagBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case TagNumber:
		return formatNumber(v.Num)
	case TagObject:
		if v.Obj == nil {
			return "<nil object>"
		}
		return v.Obj.String()
	default:
		return "<invalid value>"
	}
}

func formatNumber(f float64) string {
	if f != f { // NaN
		return "nan"
	}
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
