package vm

import (
	"fmt"

	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/value"
)

// interpret runs the fetch-decode-execute loop until the outermost frame
// returns. One runtime error aborts the whole program: there is no
// recover-and-continue.
func (vm *VM) interpret() error {
	for {
		op := bytecode.Opcode(vm.readByte())
		switch op {
		case bytecode.CONSTANT:
			vm.push(vm.readConstant())

		case bytecode.NIL:
			vm.push(value.Nil)
		case bytecode.TRUE:
			vm.push(value.Bool(true))
		case bytecode.FALSE:
			vm.push(value.Bool(false))
		case bytecode.POP:
			vm.pop()

		case bytecode.GET_LOCAL:
			slot := vm.currentFrame().slots + int(vm.readByte())
			vm.push(vm.stack[slot])
		case bytecode.SET_LOCAL:
			slot := vm.currentFrame().slots + int(vm.readByte())
			vm.stack[slot] = vm.peek(0)

		case bytecode.GET_GLOBAL:
			name := vm.readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeErrorf(errors.KindNameError, errors.TagNotDefined, "name %q is not defined", name.Chars)
			}
			vm.push(v)
		case bytecode.DEFINE_GLOBAL:
			name := vm.readString()
			vm.globals.Put(name, vm.pop())
		case bytecode.SET_GLOBAL:
			name := vm.readString()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeErrorf(errors.KindNameError, errors.TagNotDefined, "name %q is not defined", name.Chars)
			}
			vm.globals.Put(name, vm.peek(0))

		case bytecode.GET_UPVALUE:
			idx := vm.readByte()
			uv := vm.currentFrame().closure.Upvalues[idx]
			vm.push(*uv.Location)
		case bytecode.SET_UPVALUE:
			idx := vm.readByte()
			uv := vm.currentFrame().closure.Upvalues[idx]
			*uv.Location = vm.peek(0)

		case bytecode.GET_PROPERTY:
			if err := vm.getProperty(); err != nil {
				return err
			}
		case bytecode.SET_PROPERTY:
			if err := vm.setProperty(); err != nil {
				return err
			}
		case bytecode.GET_SUPER:
			if err := vm.getSuper(); err != nil {
				return err
			}

		case bytecode.EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(a.Equal(b)))
		case bytecode.NOT_EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(!a.Equal(b)))
		case bytecode.GREATER, bytecode.GREATER_EQUAL, bytecode.LESS, bytecode.LESS_EQUAL:
			if err := vm.compare(op); err != nil {
				return err
			}
		case bytecode.ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case bytecode.SUBTRACT, bytecode.MULTIPLY, bytecode.DIVIDE:
			if err := vm.arithmetic(op); err != nil {
				return err
			}
		case bytecode.NOT:
			vm.push(value.Bool(!vm.pop().Truthy()))
		case bytecode.NEGATE:
			v := vm.pop()
			if !v.IsNumber() {
				return vm.runtimeErrorf(errors.KindTypeError, errors.TagUnsupportedOperandPrefix,
					"unsupported operand type for -: %s", v.TypeName())
			}
			vm.push(value.Number(-v.AsNumber()))

		case bytecode.PRINT:
			if _, err := fmt.Fprintln(vm.stdout, vm.pop().String()); err != nil {
				return vm.runtimeErrorf(errors.KindIoError, errors.TagWriteError, "unable to write to stdout")
			}

		case bytecode.JUMP:
			offset := vm.readU16()
			vm.currentFrame().ip += int(offset)
		case bytecode.JUMP_IF_FALSE:
			offset := vm.readU16()
			if !vm.peek(0).Truthy() {
				vm.currentFrame().ip += int(offset)
			}
		case bytecode.LOOP:
			offset := vm.readU16()
			vm.currentFrame().ip -= int(offset)

		case bytecode.CALL:
			argCount := int(vm.readByte())
			callee := vm.peek(argCount)
			if err := vm.callValue(callee, argCount); err != nil {
				return err
			}

		case bytecode.CLOSURE:
			vm.closure()

		case bytecode.CLOSE_UPVALUE:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case bytecode.RETURN:
			result := vm.pop()
			finishedSlots := vm.currentFrame().slots
			vm.closeUpvalues(finishedSlots)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = finishedSlots
			vm.push(result)

		case bytecode.CLASS:
			name := vm.readString()
			vm.push(value.Object(vm.heap.NewClass(name)))
		case bytecode.INHERIT:
			if err := vm.inherit(); err != nil {
				return err
			}
		case bytecode.METHOD:
			vm.method()

		default:
			panic(fmt.Sprintf("vm: illegal opcode %v: compiler must never emit this", op))
		}
	}
}

func (vm *VM) compare(op bytecode.Opcode) error {
	b, a := vm.pop(), vm.pop()
	if !a.IsNumber() || !b.IsNumber() {
		return vm.typeError(op.String(), a, b)
	}
	x, y := a.AsNumber(), b.AsNumber()
	var result bool
	switch op {
	case bytecode.GREATER:
		result = x > y
	case bytecode.GREATER_EQUAL:
		result = x >= y
	case bytecode.LESS:
		result = x < y
	case bytecode.LESS_EQUAL:
		result = x <= y
	}
	vm.push(value.Bool(result))
	return nil
}

func (vm *VM) arithmetic(op bytecode.Opcode) error {
	b, a := vm.pop(), vm.pop()
	if !a.IsNumber() || !b.IsNumber() {
		return vm.typeError(op.String(), a, b)
	}
	x, y := a.AsNumber(), b.AsNumber()
	var result float64
	switch op {
	case bytecode.SUBTRACT:
		result = x - y
	case bytecode.MULTIPLY:
		result = x * y
	case bytecode.DIVIDE:
		result = x / y
	}
	vm.push(value.Number(result))
	return nil
}

// add is a special case of binary ops: it also accepts two strings,
// concatenating them into a freshly interned string.
func (vm *VM) add() error {
	b, a := vm.pop(), vm.pop()
	if a.IsNumber() && b.IsNumber() {
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil
	}
	as, aok := a.Obj.(*value.ObjString)
	bs, bok := b.Obj.(*value.ObjString)
	if a.IsObject() && b.IsObject() && aok && bok {
		vm.push(value.Object(vm.heap.AllocateString(as.Chars + bs.Chars)))
		return nil
	}
	return vm.typeError("+", a, b)
}

func (vm *VM) closure() {
	fn := vm.readConstant().Obj.(*value.Function)
	upvalues := make([]*value.Upvalue, fn.UpvalueCount)
	for i := range upvalues {
		isLocal := vm.readByte()
		index := int(vm.readByte())
		if isLocal != 0 {
			upvalues[i] = vm.captureUpvalue(vm.currentFrame().slots + index)
		} else {
			upvalues[i] = vm.currentFrame().closure.Upvalues[index]
		}
	}
	vm.push(value.Object(vm.heap.NewClosure(fn, upvalues)))
}

func (vm *VM) getProperty() error {
	v := vm.peek(0)
	inst, ok := v.Obj.(*value.Instance)
	if !v.IsObject() || !ok {
		return vm.runtimeErrorf(errors.KindAttributeError, errors.TagNoSuchAttribute,
			"%s object has no attributes", v.TypeName())
	}
	name := vm.readString()
	if field, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(field)
		return nil
	}
	return vm.bindMethod(inst.Class, name)
}

func (vm *VM) setProperty() error {
	v := vm.peek(1)
	inst, ok := v.Obj.(*value.Instance)
	if !v.IsObject() || !ok {
		return vm.runtimeErrorf(errors.KindAttributeError, errors.TagNoSuchAttribute,
			"%s object has no attributes", v.TypeName())
	}
	name := vm.readString()
	newValue := vm.pop()
	inst.Fields.Put(name, newValue)
	vm.pop()
	vm.push(newValue)
	return nil
}

func (vm *VM) inherit() error {
	superclass := vm.peek(1)
	super, ok := superclass.Obj.(*value.Class)
	if !superclass.IsObject() || !ok {
		return vm.runtimeErrorf(errors.KindTypeError, errors.TagSuperclassInvalidType, "superclass must be a class")
	}
	subclass := vm.peek(0).Obj.(*value.Class)
	super.Methods.Iter(func(name *value.ObjString, m *value.Closure) bool {
		subclass.Methods.Put(name, m)
		return false
	})
	vm.pop() // discard the transient subclass reference; superclass remains bound as "super"
	return nil
}

func (vm *VM) method() {
	name := vm.readString()
	closure := vm.pop().Obj.(*value.Closure)
	class := vm.peek(0).Obj.(*value.Class)
	class.Methods.Put(name, closure)
}

func (vm *VM) getSuper() error {
	name := vm.readString()
	superclass := vm.pop().Obj.(*value.Class)
	return vm.bindMethod(superclass, name)
}
