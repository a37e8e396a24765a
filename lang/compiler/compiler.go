// Package compiler performs a single pass over a parsed AST, resolving
// variable scope (local, upvalue or global) and lowering control flow
// directly to bytecode jumps as it goes, rather than building an
// intermediate CFG.
package compiler

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/token"
	"github.com/mna/yarrow/lang/value"
)

const (
	maxLocals     = 256
	maxUpvalues   = 256
	maxParams     = 255
	maxArgs       = 255
	maxJumpOffset = 1<<16 - 1
)

// funcType distinguishes the synthetic top-level script from an ordinary
// function and the two method flavors, since `return`, `this` and `super`
// are each legal only in a subset of these.
type funcType int

const (
	typeScript funcType = iota
	typeFunction
	typeMethod
	typeInitializer
)

// local is one entry in a function's compile-time local-variable stack.
type local struct {
	name        string
	depth       int
	initialized bool
	captured    bool
}

// upvalueRef records how one upvalue slot in a function was resolved: from
// the immediately enclosing function's locals, or from that function's own
// upvalues.
type upvalueRef struct {
	index   uint8
	isLocal bool
}

// classCtx tracks whether the function being compiled is nested inside a
// class body, and whether that class has a superclass, so `this` and
// `super` can be resolved and validated.
type classCtx struct {
	enclosing     *classCtx
	hasSuperclass bool
}

// fcomp holds the compiler state for a single function (or the top-level
// script). Nesting is modeled as a linked stack via enclosing, mirroring
// the recursive descent of the AST itself.
type fcomp struct {
	enclosing *fcomp
	class     *classCtx

	typ   funcType
	chunk *bytecode.Chunk

	// fn is the Function object this context is building, allocated up
	// front (sharing chunk with it) rather than at popFunc time, so that a
	// collection triggered mid-body always finds it reachable from
	// EachRoot instead of discovering a Function object only once it is
	// already a finished CLOSURE constant.
	fn *value.Function

	// lastOp is the most recently emitted opcode, tracked independently of
	// the raw byte stream so an operand byte that happens to equal RETURN's
	// numeric value can never be mistaken for an emitted return.
	lastOp bytecode.Opcode

	locals     []local
	scopeDepth int
	upvalues   []upvalueRef
	fnName     string
	arity      int
}

// Compiler compiles a parsed program into a top-level *value.Function. heap
// supplies string interning and object allocation: every
// ObjString and Function constant the compiler emits is allocated there.
type Compiler struct {
	heap heap
	errs errors.List
	cur  *fcomp
}

// heap is the subset of *gc.Heap the compiler needs. Kept as an interface
// so compiler tests can supply a minimal fake without importing the rest of
// lang/gc's surface.
type heap interface {
	AllocateString(s string) *value.ObjString
	NewFunction(name *value.ObjString, arity, upvalues int, chunk *bytecode.Chunk) *value.Function
	SetRoots(gc.Roots)
}

// New creates a Compiler that allocates constants through h.
func New(h heap) *Compiler {
	return &Compiler{heap: h}
}

// Compile compiles prog into the top-level script Function. It always
// returns a non-nil Function; callers must check errs.Len() == 0 (or the
// returned error) before running it. Compilation aggregates every error it
// finds rather than stopping at the first.
//
// Compile installs itself as h's root provider for the duration of
// compilation (spec.md §4.4 root #6: every Function under construction and
// every constant it already holds), since a collection triggered mid-compile
// must not sweep interned strings and nested Functions the compiler hasn't
// handed off to the VM yet. Callers that go on to execute the result must
// install their own root provider once Compile returns.
func Compile(h heap, prog *ast.Program) (*value.Function, error) {
	c := New(h)
	h.SetRoots(c)
	fn := c.compileScript(prog)
	if err := c.errs.Err(); err != nil {
		return fn, err
	}
	return fn, nil
}

// EachRoot implements gc.Roots: every fcomp on the enclosing-function stack
// is a compiler temporary root, covering both the Function it is building
// and (transitively, via Function.Trace) every constant already added to
// that function's chunk.
func (c *Compiler) EachRoot(mark func(value.Value)) {
	for f := c.cur; f != nil; f = f.enclosing {
		if f.fn != nil {
			mark(value.Object(f.fn))
		}
	}
}

func (c *Compiler) compileScript(prog *ast.Program) *value.Function {
	chunk := &bytecode.Chunk{}
	fn := c.heap.NewFunction(nil, 0, 0, chunk)
	c.cur = &fcomp{typ: typeScript, chunk: chunk, fn: fn}
	// Slot 0 is reserved for the running closure itself, same as every
	// other function, so a top-level block-local variable's index isn't
	// off by one against the VM's frame-relative addressing.
	c.cur.locals = append(c.cur.locals, local{name: "", depth: 0, initialized: true})
	for _, s := range prog.Stmts {
		c.stmt(s)
	}
	c.emitReturnNil(token.Span{})
	return fn
}

func (c *Compiler) errorf(kind errors.Kind, tag errors.Tag, span token.Span, format string, args ...any) {
	c.errs.Addf(kind, tag, span, format, args...)
}

func (c *Compiler) emit(op bytecode.Opcode, span token.Span) {
	c.cur.chunk.WriteOp(op, span)
	c.cur.lastOp = op
}

func (c *Compiler) emitU8(op bytecode.Opcode, arg byte, span token.Span) {
	c.cur.chunk.WriteOpU8(op, arg, span)
	c.cur.lastOp = op
}

func (c *Compiler) emitReturnNil(span token.Span) {
	c.emit(bytecode.NIL, span)
	c.emit(bytecode.RETURN, span)
}

// emitConstant interns v as a constant and emits op with the resulting
// index, reporting a properly tagged OverflowError if the pool is full
// instead of surfacing the chunk's generic error.
func (c *Compiler) emitConstant(op bytecode.Opcode, v value.Value, span token.Span) {
	idx, err := c.cur.chunk.AddConstant(v)
	if err != nil {
		c.errorf(errors.KindOverflowError, errors.TagTooManyConstants, span, "too many constants in one chunk")
		return
	}
	c.emitU8(op, byte(idx), span)
}

func (c *Compiler) identifierConstant(name string, span token.Span) value.Value {
	return value.Object(c.heap.AllocateString(name))
}

// valueOf boxes a *value.Function as the Value constant-pool entries
// everywhere else in the package expect.
func valueOf(fn *value.Function) value.Value { return value.Object(fn) }

// emitJump emits op followed by a two-byte placeholder and returns the
// offset to later pass to patchJump.
func (c *Compiler) emitJump(op bytecode.Opcode, span token.Span) int {
	c.cur.lastOp = op
	return c.cur.chunk.WriteOpU16Placeholder(op, span)
}

func (c *Compiler) patchJump(operandAt int, span token.Span) {
	jump := len(c.cur.chunk.Ops) - (operandAt + 2)
	if jump > maxJumpOffset {
		c.errorf(errors.KindOverflowError, errors.TagJumpTooLarge, span, "jump offset too large")
		return
	}
	c.cur.chunk.PatchU16(operandAt, uint16(jump))
}

func (c *Compiler) emitLoop(loopStart int, span token.Span) {
	offset := len(c.cur.chunk.Ops) + 3 - loopStart
	if offset > maxJumpOffset {
		c.errorf(errors.KindOverflowError, errors.TagJumpTooLarge, span, "loop body too large")
		return
	}
	operandAt := c.cur.chunk.WriteOpU16Placeholder(bytecode.LOOP, span)
	c.cur.lastOp = bytecode.LOOP
	c.cur.chunk.PatchU16(operandAt, uint16(offset))
}

func (c *Compiler) beginScope() { c.cur.scopeDepth++ }

// endScope pops every local declared in the scope being left, closing any
// that was captured by a nested closure instead of merely popping it
//.
func (c *Compiler) endScope(span token.Span) {
	c.cur.scopeDepth--
	locals := c.cur.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.cur.scopeDepth {
		if locals[len(locals)-1].captured {
			c.emit(bytecode.CLOSE_UPVALUE, span)
		} else {
			c.emit(bytecode.POP, span)
		}
		locals = locals[:len(locals)-1]
	}
	c.cur.locals = locals
}
