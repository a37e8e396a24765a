package vm

import "github.com/mna/yarrow/lang/value"

// captureUpvalue finds or creates the open upvalue for the stack slot,
// keeping vm.openUpvalues sorted by descending slot index so closeUpvalues
// only ever has to walk a prefix of the list.
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	var prev *value.Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.OpenNext
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}

	created := vm.heap.NewUpvalue(&vm.stack[slot])
	created.Slot = slot
	created.OpenNext = cur
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.OpenNext = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above fromSlot, copying its
// value out of the stack so it survives the frame's pop.
func (vm *VM) closeUpvalues(fromSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= fromSlot {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.OpenNext
		uv.OpenNext = nil
	}
}
