package compiler

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/token"
	"github.com/mna/yarrow/lang/value"
)

// declareLocal registers name as a new local in the current scope. Shadowing
// a local from an outer scope is fine; redeclaring one in the *same* scope
// is a NameError.
func (c *Compiler) declareLocal(name string, span token.Span) {
	if c.cur.scopeDepth == 0 {
		return // globals are resolved dynamically by name, never declared
	}
	for i := len(c.cur.locals) - 1; i >= 0; i-- {
		l := c.cur.locals[i]
		if l.depth < c.cur.scopeDepth {
			break
		}
		if l.name == name {
			c.errorf(errors.KindNameError, errors.TagAlreadyDefined, span, "name %q is already defined", name)
			return
		}
	}
	if len(c.cur.locals) >= maxLocals {
		c.errorf(errors.KindOverflowError, errors.TagTooManyLocals, span, "too many local variables in function")
		return
	}
	c.cur.locals = append(c.cur.locals, local{name: name, depth: c.cur.scopeDepth})
}

func (c *Compiler) defineLocal() {
	if c.cur.scopeDepth == 0 || len(c.cur.locals) == 0 {
		return
	}
	c.cur.locals[len(c.cur.locals)-1].initialized = true
}

// defineVariable emits DEFINE_GLOBAL for a top-level binding, or simply
// marks the most recently declared local as initialized.
func (c *Compiler) defineVariable(name string, span token.Span) {
	if c.cur.scopeDepth > 0 {
		c.defineLocal()
		return
	}
	c.emitConstant(bytecode.DEFINE_GLOBAL, c.identifierConstant(name, span), span)
}

// resolveLocal looks up name in f's own locals, innermost first. capture
// marks the local as captured when the lookup originates from a nested
// function resolving an upvalue chain.
func resolveLocal(f *fcomp, name string, capture bool, span token.Span, errs *errors.List) (int, bool) {
	for i := len(f.locals) - 1; i >= 0; i-- {
		if f.locals[i].name != name {
			continue
		}
		if !f.locals[i].initialized {
			errs.Addf(errors.KindNameError, errors.TagAccessInsideInitializer, span,
				"cannot access variable %q in its own initializer", name)
			return 0, true
		}
		if capture {
			f.locals[i].captured = true
		}
		return i, true
	}
	return 0, false
}

// resolveUpvalue walks the enclosing-function chain looking for name among
// outer locals (or outer upvalues), threading an upvalue slot through every
// intervening function so each frame only ever reaches one level out
//.
func resolveUpvalue(f *fcomp, name string, span token.Span, errs *errors.List) (int, bool) {
	if f.enclosing == nil {
		return 0, false
	}
	if idx, ok := resolveLocal(f.enclosing, name, true, span, errs); ok {
		return addUpvalue(f, uint8(idx), true, span, errs)
	}
	if idx, ok := resolveUpvalue(f.enclosing, name, span, errs); ok {
		return addUpvalue(f, uint8(idx), false, span, errs)
	}
	return 0, false
}

func addUpvalue(f *fcomp, index uint8, isLocal bool, span token.Span, errs *errors.List) (int, bool) {
	for i, uv := range f.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i, true
		}
	}
	if len(f.upvalues) >= maxUpvalues {
		errs.Addf(errors.KindOverflowError, errors.TagTooManyUpvalues, span, "too many closure variables in function")
		return 0, true
	}
	f.upvalues = append(f.upvalues, upvalueRef{index: index, isLocal: isLocal})
	return len(f.upvalues) - 1, true
}

// getVariable emits the read sequence for name, picking GET_LOCAL,
// GET_UPVALUE or GET_GLOBAL depending on where it resolves.
func (c *Compiler) getVariable(name string, span token.Span) {
	if idx, ok := resolveLocal(c.cur, name, false, span, &c.errs); ok {
		c.emitU8(bytecode.GET_LOCAL, byte(idx), span)
		return
	}
	if idx, ok := resolveUpvalue(c.cur, name, span, &c.errs); ok {
		c.emitU8(bytecode.GET_UPVALUE, byte(idx), span)
		return
	}
	c.emitConstant(bytecode.GET_GLOBAL, c.identifierConstant(name, span), span)
}

// setVariable emits the write sequence for name, symmetric with getVariable.
func (c *Compiler) setVariable(name string, span token.Span) {
	if idx, ok := resolveLocal(c.cur, name, false, span, &c.errs); ok {
		c.emitU8(bytecode.SET_LOCAL, byte(idx), span)
		return
	}
	if idx, ok := resolveUpvalue(c.cur, name, span, &c.errs); ok {
		c.emitU8(bytecode.SET_UPVALUE, byte(idx), span)
		return
	}
	c.emitConstant(bytecode.SET_GLOBAL, c.identifierConstant(name, span), span)
}

// pushFunc begins compiling a nested function, chaining it to the current
// one via enclosing so scope resolution can walk outward. The Function
// object is allocated here, up front, rather than when the function body is
// done: EachRoot walks the fcomp chain, so a collection triggered anywhere
// in the body finds both this function and its already-added constants
// reachable instead of a bare chunk with no owning object yet.
func (c *Compiler) pushFunc(typ funcType, name string, arity int) {
	chunk := &bytecode.Chunk{}
	var nameObj *value.ObjString
	if name != "" {
		nameObj = c.heap.AllocateString(name)
	}
	fn := c.heap.NewFunction(nameObj, arity, 0, chunk)
	c.cur = &fcomp{
		enclosing: c.cur,
		class:     c.cur.class,
		typ:       typ,
		chunk:     chunk,
		fn:        fn,
		fnName:    name,
		arity:     arity,
	}
	// Slot 0 is reserved for the receiver in methods/initializers, and is
	// simply unused (but still present, to keep local indices uniform) for
	// plain functions.
	receiver := ""
	if typ == typeMethod || typ == typeInitializer {
		receiver = "this"
	}
	c.cur.locals = append(c.cur.locals, local{name: receiver, depth: 0, initialized: true})
}

// popFunc finalizes the current function and returns to the enclosing one,
// yielding the (now complete) Function object and the resolved upvalue
// descriptor list.
func (c *Compiler) popFunc() (*value.Function, []upvalueRef) {
	fn, upvalues := c.cur.fn, c.cur.upvalues
	fn.UpvalueCount = len(upvalues)
	c.cur = c.cur.enclosing
	return fn, upvalues
}

func exprSpan(e ast.Expr) token.Span {
	if e == nil {
		return token.Span{}
	}
	return e.Span()
}
