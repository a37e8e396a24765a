package vm

import "github.com/mna/yarrow/lang/value"

// EachRoot implements gc.Roots: the operand stack, every active frame's
// closure, the open-upvalue list, and the globals table are the complete
// root set a collection pass must trace from.
func (vm *VM) EachRoot(mark func(value.Value)) {
	for i := 0; i < vm.stackTop; i++ {
		mark(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(value.Object(vm.frames[i].closure))
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.OpenNext {
		mark(value.Object(uv))
	}
	vm.globals.Iter(func(k *value.ObjString, v value.Value) bool {
		mark(value.Object(k))
		mark(v)
		return false
	})
}
