package value

// HeapObject is implemented by every heap-allocated object variant: String,
// Function, Closure, Upvalue, Class, Instance, BoundMethod, Native. All
// variants share a common header via the embedded Header type.
type HeapObject interface {
	// TypeName is the short type name used in error messages and by
	// Value.TypeName.
	TypeName() string

	// String renders the object the way `print` does.
	String() string

	// Trace calls mark for every Value this object directly references, so
	// the collector's gray-worklist propagation can be
	// implemented once, generically, instead of once per variant.
	Trace(mark func(Value))

	header() *Header
}

// Header is the common prefix every heap object embeds: a mark bit for the
// collector, and an intrusive single-linked list pointer so the collector
// can walk every live object during sweep without a separate set.
type Header struct {
	Marked bool
	Next   HeapObject
}

func (h *Header) header() *Header { return h }

// Marked reports whether o survived the last mark phase.
func Marked(o HeapObject) bool { return o.header().Marked }

// SetMarked sets o's mark bit.
func SetMarked(o HeapObject, marked bool) { o.header().Marked = marked }

// NextObject returns the next object in the heap's intrusive allocation
// list (used only by the collector's sweep).
func NextObject(o HeapObject) HeapObject { return o.header().Next }

// SetNextObject links o to next in the heap's allocation list.
func SetNextObject(o HeapObject, next HeapObject) { o.header().Next = next }
