package value

// Upvalue is either open (Location points into a live call frame's stack
// slot) or closed (the value has been copied into Closed once the frame it
// referenced was popped). The VM keeps open upvalues on a single descending
// list threaded through OpenNext so it can find-or-create in stack order and
// close every upvalue at or above a given slot in one pass.
type Upvalue struct {
	Header
	Location *Value
	Closed   Value

	// Slot is the stack index Location points at. Valid only while the
	// upvalue is open; the VM uses it to keep the open-upvalue list sorted
	// without resorting to pointer arithmetic.
	Slot int

	// OpenNext links to the next-lower open upvalue in the VM's open-upvalue
	// list. Unused once the upvalue is closed.
	OpenNext *Upvalue
}

var _ HeapObject = (*Upvalue)(nil)

func (u *Upvalue) TypeName() string { return "upvalue" }
func (u *Upvalue) String() string   { return "<upvalue>" }

func (u *Upvalue) Trace(mark func(Value)) {
	if u.Location != nil {
		mark(*u.Location)
	} else {
		mark(u.Closed)
	}
}

// Close copies the referenced value out of the stack and severs the link to
// it, so the upvalue keeps working after its owning frame is popped.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}
