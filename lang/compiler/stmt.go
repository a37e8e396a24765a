package compiler

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
)

func (c *Compiler) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		c.expr(n.Expr)
		c.emit(bytecode.POP, n.Sp)
	case *ast.PrintStmt:
		c.expr(n.Expr)
		c.emit(bytecode.PRINT, n.Sp)
	case *ast.VarStmt:
		c.varStmt(n)
	case *ast.BlockStmt:
		c.beginScope()
		for _, stmt := range n.Stmts {
			c.stmt(stmt)
		}
		c.endScope(n.Sp)
	case *ast.IfStmt:
		c.ifStmt(n)
	case *ast.WhileStmt:
		c.whileStmt(n)
	case *ast.ForStmt:
		c.forStmt(n)
	case *ast.FunctionStmt:
		c.functionDecl(n)
	case *ast.ReturnStmt:
		c.returnStmt(n)
	case *ast.ClassStmt:
		c.classStmt(n)
	}
}

func (c *Compiler) varStmt(n *ast.VarStmt) {
	c.declareLocal(n.Name, n.Sp)
	if n.Init != nil {
		c.expr(n.Init)
	} else {
		c.emit(bytecode.NIL, n.Sp)
	}
	c.defineVariable(n.Name, n.Sp)
}

func (c *Compiler) ifStmt(n *ast.IfStmt) {
	c.expr(n.Cond)
	jumpToElse := c.emitJump(bytecode.JUMP_IF_FALSE, n.Sp)
	c.emit(bytecode.POP, n.Sp)
	c.stmt(n.Then)
	jumpToEnd := c.emitJump(bytecode.JUMP, n.Sp)

	c.patchJump(jumpToElse, n.Sp)
	c.emit(bytecode.POP, n.Sp)
	if n.Else != nil {
		c.stmt(n.Else)
	}
	c.patchJump(jumpToEnd, n.Sp)
}

func (c *Compiler) whileStmt(n *ast.WhileStmt) {
	loopStart := len(c.cur.chunk.Ops)
	c.expr(n.Cond)
	jumpToEnd := c.emitJump(bytecode.JUMP_IF_FALSE, n.Sp)
	c.emit(bytecode.POP, n.Sp)
	c.stmt(n.Body)
	c.emitLoop(loopStart, n.Sp)

	c.patchJump(jumpToEnd, n.Sp)
	c.emit(bytecode.POP, n.Sp)
}

// forStmt lowers the C-style for loop to the same init/cond-jump/body/
// incr/loop shape a while loop would produce, wrapped in its own scope so
// a loop-variable declared in the init clause doesn't leak.
func (c *Compiler) forStmt(n *ast.ForStmt) {
	c.beginScope()
	if n.Init != nil {
		c.stmt(n.Init)
	}

	loopStart := len(c.cur.chunk.Ops)
	var jumpToEnd int
	hasCond := n.Cond != nil
	if hasCond {
		c.expr(n.Cond)
		jumpToEnd = c.emitJump(bytecode.JUMP_IF_FALSE, n.Sp)
		c.emit(bytecode.POP, n.Sp)
	}

	c.stmt(n.Body)

	if n.Incr != nil {
		c.expr(n.Incr)
		c.emit(bytecode.POP, n.Sp)
	}
	c.emitLoop(loopStart, n.Sp)

	if hasCond {
		c.patchJump(jumpToEnd, n.Sp)
		c.emit(bytecode.POP, n.Sp)
	}
	c.endScope(n.Sp)
}

func (c *Compiler) functionDecl(n *ast.FunctionStmt) {
	c.declareLocal(n.Name, n.Sp)
	c.defineLocal()
	c.compileFunction(n, typeFunction)
	c.defineVariable(n.Name, n.Sp)
}

// compileFunction compiles n's parameter list and body in a fresh fcomp,
// then emits CLOSURE with n's upvalue descriptor tail back in the
// enclosing function. The resulting closure is left on the
// enclosing function's stack, ready for whatever defineVariable or method
// registration the caller performs next.
func (c *Compiler) compileFunction(n *ast.FunctionStmt, typ funcType) {
	if len(n.Params) > maxParams {
		c.errorf(errors.KindOverflowError, errors.TagTooManyParams, n.Sp, "too many parameters in function %q", n.Name)
	}
	c.pushFunc(typ, n.Name, len(n.Params))
	c.beginScope()
	for _, p := range n.Params {
		c.declareLocal(p, n.Sp)
		c.defineLocal()
	}
	for _, stmt := range n.Body {
		c.stmt(stmt)
	}
	if !c.currentEndsInReturn() {
		if typ == typeInitializer {
			c.emitU8(bytecode.GET_LOCAL, 0, n.Sp)
			c.emit(bytecode.RETURN, n.Sp)
		} else {
			c.emitReturnNil(n.Sp)
		}
	}
	fn, upvalues := c.popFunc()
	c.emitConstant(bytecode.CLOSURE, valueOf(fn), n.Sp)
	for _, uv := range upvalues {
		isLocal := byte(0)
		if uv.isLocal {
			isLocal = 1
		}
		c.cur.chunk.Write(isLocal, n.Sp)
		c.cur.chunk.Write(uv.index, n.Sp)
	}
}

// currentEndsInReturn reports whether the most recently emitted opcode in
// the function being compiled is RETURN, tracked independently of the raw
// byte stream: an operand byte can legitimately carry the same numeric
// value as the RETURN opcode, so sniffing the last byte of Ops would
// misdetect a function as already returning.
func (c *Compiler) currentEndsInReturn() bool {
	return c.cur.lastOp == bytecode.RETURN
}

func (c *Compiler) returnStmt(n *ast.ReturnStmt) {
	if c.cur.typ == typeScript {
		c.errorf(errors.KindSyntaxError, errors.TagReturnOutsideFunction, n.Sp, "cannot return from top-level code")
		return
	}
	if n.Value == nil {
		if c.cur.typ == typeInitializer {
			c.emitU8(bytecode.GET_LOCAL, 0, n.Sp)
		} else {
			c.emit(bytecode.NIL, n.Sp)
		}
		c.emit(bytecode.RETURN, n.Sp)
		return
	}
	if c.cur.typ == typeInitializer {
		c.errorf(errors.KindSyntaxError, errors.TagReturnInInitializer, n.Sp, "cannot return a value from an initializer")
		return
	}
	c.expr(n.Value)
	c.emit(bytecode.RETURN, n.Sp)
}
