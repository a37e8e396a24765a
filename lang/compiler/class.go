package compiler

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/bytecode"
	"github.com/mna/yarrow/lang/errors"
)

// classStmt compiles a class declaration: a CLASS opcode to create the
// runtime Class, an optional INHERIT to copy the superclass's method
// table, and one CLOSURE+METHOD pair per method body.
func (c *Compiler) classStmt(n *ast.ClassStmt) {
	c.declareLocal(n.Name, n.Sp)
	c.defineLocal()
	c.emitConstant(bytecode.CLASS, c.identifierConstant(n.Name, n.Sp), n.Sp)
	c.defineVariable(n.Name, n.Sp)

	cc := &classCtx{enclosing: c.cur.class}

	if n.Superclass != nil {
		if n.Superclass.Name == n.Name {
			c.errorf(errors.KindNameError, errors.TagClassInheritFromSelf, n.Sp, "class %q inherits from itself", n.Name)
		} else {
			c.getVariable(n.Superclass.Name, n.Superclass.Sp)
			c.beginScope()
			c.declareLocal("super", n.Sp)
			c.defineLocal()

			c.getVariable(n.Name, n.Sp)
			c.emit(bytecode.INHERIT, n.Sp)
			cc.hasSuperclass = true
		}
	}

	c.cur.class = cc

	c.getVariable(n.Name, n.Sp)
	for _, m := range n.Methods {
		c.method(m)
	}
	c.emit(bytecode.POP, n.Sp) // discard the class value left by getVariable

	c.cur.class = cc.enclosing
	if cc.hasSuperclass {
		c.endScope(n.Sp)
	}
}

func (c *Compiler) method(m *ast.FunctionStmt) {
	typ := typeMethod
	if m.Name == "init" {
		typ = typeInitializer
	}
	c.compileFunction(m, typ)
	c.emitConstant(bytecode.METHOD, c.identifierConstant(m.Name, m.Sp), m.Sp)
}
