// Package ast defines the span-annotated statement and expression tree
// produced by the parser and consumed by the compiler. It only fixes the
// shape of the tree that flows between them.
package ast

import "github.com/mna/yarrow/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source file: a flat sequence of top-level
// statements, compiled as the synthetic top-level function.
type Program struct {
	Stmts []Stmt
}
