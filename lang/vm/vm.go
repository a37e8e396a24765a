// Package vm implements the stack-based virtual machine that executes
// compiled bytecode: a flat switch over opcodes walking an explicit program
// counter into a byte slice.
package vm

import (
	"fmt"
	"io"
	"time"

	"github.com/dolthub/swiss"

	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/compiler"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/parser"
	"github.com/mna/yarrow/lang/token"
	"github.com/mna/yarrow/lang/value"
)

const (
	// StackMax bounds the operand stack across every active frame.
	StackMax = 16384
	// FramesMax bounds call nesting; exceeding it is a StackOverflow
	// runtime error.
	FramesMax = 64
)

// VM executes one compiled program to completion, writing `print` output to
// Stdout. It is not safe for concurrent or repeated use across unrelated
// programs beyond globals persisting between successive Run calls, the way
// a REPL would want them to.
type VM struct {
	heap *gc.Heap

	stack    [StackMax]value.Value
	stackTop int

	frames     [FramesMax]frame
	frameCount int

	globals *swiss.Map[*value.ObjString, value.Value]

	openUpvalues *value.Upvalue // head, ordered by descending stack slot

	stdout io.Writer
}

// frame is one active call's bookkeeping: which closure is executing, the
// program counter into its chunk, and the stack index its locals begin at
//.
type frame struct {
	closure *value.Closure
	ip      int
	slots   int
}

// New creates a VM backed by heap, writing `print` output to stdout, and
// registers the language's sole builtin.
func New(heap *gc.Heap, stdout io.Writer) *VM {
	vm := &VM{
		heap:    heap,
		globals: swiss.NewMap[*value.ObjString, value.Value](64),
		stdout:  stdout,
	}
	heap.SetRoots(vm)
	vm.defineNative("clock", clockNative)
	return vm
}

func (vm *VM) defineNative(name string, fn value.NativeFn) {
	nameObj := vm.heap.AllocateString(name)
	native := vm.heap.NewNative(nameObj, fn)
	vm.globals.Put(nameObj, value.Object(native))
}

func clockNative([]value.Value) (value.Value, string, bool) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), "", true
}

// Run compiles and executes source, reporting every compile-time error it
// finds or, if compilation succeeds, the single runtime error that stopped
// execution, if any.
func (vm *VM) Run(source string) error {
	prog, perrs := parser.Parse(source)
	if perrs.Len() > 0 {
		return perrs.Err()
	}

	fn, err := compiler.Compile(vm.heap, prog)
	// Compile installs itself as the root provider for the duration of
	// compilation; restore the VM regardless of outcome before touching the
	// heap again.
	vm.heap.SetRoots(vm)
	if err != nil {
		return err
	}

	closure := vm.heap.NewClosure(fn, nil)
	vm.push(value.Object(closure))
	vm.frames[0] = frame{closure: closure, ip: 0, slots: 0}
	vm.frameCount = 1

	if rerr := vm.interpret(); rerr != nil {
		vm.reset()
		return rerr
	}
	return nil
}

func (vm *VM) reset() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) push(v value.Value) { vm.stack[vm.stackTop] = v; vm.stackTop++ }
func (vm *VM) pop() value.Value   { vm.stackTop--; return vm.stack[vm.stackTop] }
func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) currentFrame() *frame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) chunk() *bytecode.Chunk { return vm.currentFrame().closure.Function.Chunk }

func (vm *VM) readByte() byte {
	fr := vm.currentFrame()
	b := vm.chunk().Ops[fr.ip]
	fr.ip++
	return b
}

func (vm *VM) readU16() uint16 {
	fr := vm.currentFrame()
	v := vm.chunk().ReadU16(fr.ip)
	fr.ip += 2
	return v
}

func (vm *VM) readConstant() value.Value {
	idx := vm.readByte()
	return vm.chunk().Constants[idx].(value.Value)
}

func (vm *VM) readString() *value.ObjString {
	return vm.readConstant().Obj.(*value.ObjString)
}

// span returns the source span for the instruction just read, for runtime
// error reporting.
func (vm *VM) span() token.Span {
	fr := vm.currentFrame()
	return vm.chunk().SpanAt(fr.ip - 1)
}

func (vm *VM) runtimeErrorf(kind errors.Kind, tag errors.Tag, format string, args ...any) error {
	return errors.New(kind, tag, vm.span(), format, args...)
}

func (vm *VM) typeError(op string, operands ...value.Value) error {
	names := make([]string, len(operands))
	for i, v := range operands {
		names[i] = v.TypeName()
	}
	return vm.runtimeErrorf(errors.KindTypeError, errors.TagUnsupportedOperandInfix,
		"unsupported operand type(s) for %s: %s", op, joinTypeNames(names))
}

func joinTypeNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return fmt.Sprintf("%s and %s", names[0], names[1])
	default:
		return fmt.Sprintf("%v", names)
	}
}
