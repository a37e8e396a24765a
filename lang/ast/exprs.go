package ast

import "github.com/mna/yarrow/lang/token"

// LiteralExpr is a nil, boolean, number or string literal. Value holds nil,
// bool, float64 or string respectively.
type LiteralExpr struct {
	Value any
	Sp    token.Span
}

// VariableExpr reads the value bound to Name (local, upvalue or global,
// resolved by the compiler).
type VariableExpr struct {
	Name string
	Sp   token.Span
}

// AssignExpr assigns Value to the variable Name.
type AssignExpr struct {
	Name  string
	Value Expr
	Sp    token.Span
}

// GroupingExpr is a parenthesized expression, kept distinct only to carry
// its own span; it has no other runtime effect.
type GroupingExpr struct {
	Expr Expr
	Sp   token.Span
}

// UnaryExpr is a prefix unary operation: `-x`, `!x`.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
	Sp    token.Span
}

// BinaryExpr is an arithmetic or comparison infix operation.
type BinaryExpr struct {
	Op          token.Token
	Left, Right Expr
	Sp          token.Span
}

// LogicalExpr is `and`/`or`, which short-circuit and so cannot be compiled
// like an ordinary BinaryExpr.
type LogicalExpr struct {
	Op          token.Token
	Left, Right Expr
	Sp          token.Span
}

// CallExpr is a function/method/class call `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Sp     token.Span
}

// GetExpr reads a property or method `object.name`.
type GetExpr struct {
	Object Expr
	Name   string
	Sp     token.Span
}

// SetExpr writes a field `object.name = value`.
type SetExpr struct {
	Object Expr
	Name   string
	Value  Expr
	Sp     token.Span
}

// ThisExpr reads the receiver inside a method body.
type ThisExpr struct {
	Sp token.Span
}

// SuperExpr is a `super.method` dispatch.
type SuperExpr struct {
	Method string
	Sp     token.Span
}

func (e *LiteralExpr) Span() token.Span  { return e.Sp }
func (e *VariableExpr) Span() token.Span { return e.Sp }
func (e *AssignExpr) Span() token.Span   { return e.Sp }
func (e *GroupingExpr) Span() token.Span { return e.Sp }
func (e *UnaryExpr) Span() token.Span    { return e.Sp }
func (e *BinaryExpr) Span() token.Span   { return e.Sp }
func (e *LogicalExpr) Span() token.Span  { return e.Sp }
func (e *CallExpr) Span() token.Span     { return e.Sp }
func (e *GetExpr) Span() token.Span      { return e.Sp }
func (e *SetExpr) Span() token.Span      { return e.Sp }
func (e *ThisExpr) Span() token.Span     { return e.Sp }
func (e *SuperExpr) Span() token.Span    { return e.Sp }

func (*LiteralExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*CallExpr) exprNode()     {}
func (*GetExpr) exprNode()      {}
func (*SetExpr) exprNode()      {}
func (*ThisExpr) exprNode()     {}
func (*SuperExpr) exprNode()    {}
