package value

import "strconv"

// ObjString is a heap-allocated, interned string. Equal
// content always means equal pointer: interning is enforced by the
// collector's intern table (lang/gc), never by this type itself.
type ObjString struct {
	Header
	Chars string
}

var _ HeapObject = (*ObjString)(nil)

func (s *ObjString) TypeName() string        { return "string" }
func (s *ObjString) String() string          { return s.Chars }
func (s *ObjString) Trace(mark func(Value))  {}
func (s *ObjString) GoString() string        { return strconv.Quote(s.Chars) }
