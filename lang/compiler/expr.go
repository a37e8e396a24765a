package compiler

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/token"
	"github.com/mna/yarrow/lang/value"
)

func (c *Compiler) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		c.literal(n)
	case *ast.VariableExpr:
		c.getVariable(n.Name, n.Sp)
	case *ast.AssignExpr:
		c.expr(n.Value)
		c.setVariable(n.Name, n.Sp)
	case *ast.GroupingExpr:
		c.expr(n.Expr)
	case *ast.UnaryExpr:
		c.unary(n)
	case *ast.BinaryExpr:
		c.binary(n)
	case *ast.LogicalExpr:
		c.logical(n)
	case *ast.CallExpr:
		c.call(n)
	case *ast.GetExpr:
		c.expr(n.Object)
		c.emitConstant(bytecode.GET_PROPERTY, c.identifierConstant(n.Name, n.Sp), n.Sp)
	case *ast.SetExpr:
		c.expr(n.Object)
		c.expr(n.Value)
		c.emitConstant(bytecode.SET_PROPERTY, c.identifierConstant(n.Name, n.Sp), n.Sp)
	case *ast.ThisExpr:
		c.thisExpr(n)
	case *ast.SuperExpr:
		c.superExpr(n)
	}
}

func (c *Compiler) literal(n *ast.LiteralExpr) {
	switch v := n.Value.(type) {
	case nil:
		c.emit(bytecode.NIL, n.Sp)
	case bool:
		if v {
			c.emit(bytecode.TRUE, n.Sp)
		} else {
			c.emit(bytecode.FALSE, n.Sp)
		}
	case float64:
		c.emitConstant(bytecode.CONSTANT, value.Number(v), n.Sp)
	case string:
		c.emitConstant(bytecode.CONSTANT, value.Object(c.heap.AllocateString(v)), n.Sp)
	}
}

func (c *Compiler) unary(n *ast.UnaryExpr) {
	c.expr(n.Right)
	switch n.Op {
	case token.MINUS:
		c.emit(bytecode.NEGATE, n.Sp)
	case token.BANG:
		c.emit(bytecode.NOT, n.Sp)
	}
}

func (c *Compiler) binary(n *ast.BinaryExpr) {
	c.expr(n.Left)
	c.expr(n.Right)
	switch n.Op {
	case token.PLUS:
		c.emit(bytecode.ADD, n.Sp)
	case token.MINUS:
		c.emit(bytecode.SUBTRACT, n.Sp)
	case token.STAR:
		c.emit(bytecode.MULTIPLY, n.Sp)
	case token.SLASH:
		c.emit(bytecode.DIVIDE, n.Sp)
	case token.EQEQ:
		c.emit(bytecode.EQUAL, n.Sp)
	case token.BANG_EQ:
		c.emit(bytecode.NOT_EQUAL, n.Sp)
	case token.GT:
		c.emit(bytecode.GREATER, n.Sp)
	case token.GE:
		c.emit(bytecode.GREATER_EQUAL, n.Sp)
	case token.LT:
		c.emit(bytecode.LESS, n.Sp)
	case token.LE:
		c.emit(bytecode.LESS_EQUAL, n.Sp)
	}
}

// logical compiles `and`/`or`, which must not evaluate their right operand
// unless necessary, so they lower to jumps rather than an opcode
//.
func (c *Compiler) logical(n *ast.LogicalExpr) {
	c.expr(n.Left)
	switch n.Op {
	case token.AND:
		jumpToEnd := c.emitJump(bytecode.JUMP_IF_FALSE, n.Sp)
		c.emit(bytecode.POP, n.Sp)
		c.expr(n.Right)
		c.patchJump(jumpToEnd, n.Sp)
	case token.OR:
		jumpToRight := c.emitJump(bytecode.JUMP_IF_FALSE, n.Sp)
		jumpToEnd := c.emitJump(bytecode.JUMP, n.Sp)
		c.patchJump(jumpToRight, n.Sp)
		c.emit(bytecode.POP, n.Sp)
		c.expr(n.Right)
		c.patchJump(jumpToEnd, n.Sp)
	}
}

func (c *Compiler) call(n *ast.CallExpr) {
	if len(n.Args) > maxArgs {
		c.errorf(errors.KindOverflowError, errors.TagTooManyArgs, n.Sp, "too many arguments in call")
	}

	c.expr(n.Callee)
	for _, a := range n.Args {
		c.expr(a)
	}
	c.emitU8(bytecode.CALL, byte(len(n.Args)), n.Sp)
}

func (c *Compiler) thisExpr(n *ast.ThisExpr) {
	if c.cur.class == nil {
		c.errorf(errors.KindSyntaxError, errors.TagThisOutsideClass, n.Sp, "cannot use 'this' outside of a method")
		return
	}
	c.getVariable("this", n.Sp)
}

// superExpr compiles `super.method`: pushes the receiver (via `this`), then
// the superclass captured as an upvalue named "super", and emits GET_SUPER
// with the method name as its constant operand.
func (c *Compiler) superExpr(n *ast.SuperExpr) {
	if c.cur.class == nil {
		c.errorf(errors.KindSyntaxError, errors.TagSuperOutsideClass, n.Sp, "cannot use 'super' outside of a class")
		return
	}
	if !c.cur.class.hasSuperclass {
		c.errorf(errors.KindSyntaxError, errors.TagSuperWithoutSuperclass, n.Sp, "cannot use 'super' in a class with no superclass")
		return
	}
	c.getVariable("this", n.Sp)
	c.getVariable("super", n.Sp)
	c.emitConstant(bytecode.GET_SUPER, c.identifierConstant(n.Method, n.Sp), n.Sp)
}
