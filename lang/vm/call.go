package vm

import (
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/value"
)

// callValue dispatches a CALL instruction against whatever is at the
// bottom of the argument window: a Closure, a Class (construction), a
// BoundMethod, or a Native.
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if !callee.IsObject() {
		return vm.runtimeErrorf(errors.KindTypeError, errors.TagNotCallable, "%s object is not callable", callee.TypeName())
	}
	switch obj := callee.Obj.(type) {
	case *value.Closure:
		return vm.call(obj, argCount)
	case *value.BoundMethod:
		vm.stack[vm.stackTop-argCount-1] = value.Object(obj.Receiver)
		return vm.call(obj.Method, argCount)
	case *value.Class:
		inst := vm.heap.NewInstance(obj)
		vm.stack[vm.stackTop-argCount-1] = value.Object(inst)
		if init, ok := obj.FindMethod(vm.initString()); ok {
			return vm.call(init, argCount)
		}
		if argCount != 0 {
			return vm.runtimeErrorf(errors.KindTypeError, errors.TagArityMismatch,
				"expected 0 arguments but got %d", argCount)
		}
		return nil
	case *value.Native:
		return vm.callNative(obj, argCount)
	default:
		return vm.runtimeErrorf(errors.KindTypeError, errors.TagNotCallable, "%s object is not callable", callee.TypeName())
	}
}

func (vm *VM) call(closure *value.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		name := "<script>"
		if closure.Function.Name != nil {
			name = closure.Function.Name.Chars
		}
		return vm.runtimeErrorf(errors.KindTypeError, errors.TagArityMismatch,
			"%s expected %d arguments but got %d", name, closure.Function.Arity, argCount)
	}
	if vm.frameCount >= FramesMax {
		return vm.runtimeErrorf(errors.KindOverflowError, errors.TagStackOverflow, "stack overflow")
	}
	vm.frames[vm.frameCount] = frame{closure: closure, ip: 0, slots: vm.stackTop - argCount - 1}
	vm.frameCount++
	return nil
}

func (vm *VM) callNative(native *value.Native, argCount int) error {
	args := vm.stack[vm.stackTop-argCount : vm.stackTop]
	result, errMsg, ok := native.Fn(args)
	if !ok {
		return vm.runtimeErrorf(errors.KindTypeError, errors.TagArityMismatch, "%s", errMsg)
	}
	vm.stackTop -= argCount + 1
	vm.push(result)
	return nil
}

// initString interns "init" once per VM lifetime's worth of calls; cheap
// enough not to bother caching since AllocateString itself interns.
func (vm *VM) initString() *value.ObjString {
	return vm.heap.AllocateString("init")
}

// bindMethod looks up name on instance's class and, if found, wraps it as a
// BoundMethod pushed onto the stack in place of the instance. Returns an
// error if no such method exists.
func (vm *VM) bindMethod(class *value.Class, name *value.ObjString) error {
	method, ok := class.FindMethod(name)
	if !ok {
		return vm.runtimeErrorf(errors.KindAttributeError, errors.TagNoSuchAttribute,
			"%q object has no attribute %q", class.Name.Chars, name.Chars)
	}
	bound := vm.heap.NewBoundMethod(vm.pop().Obj.(*value.Instance), method)
	vm.push(value.Object(bound))
	return nil
}
