package ast

import "github.com/mna/yarrow/lang/token"

// ExprStmt is an expression evaluated for its side effects, result discarded.
type ExprStmt struct {
	Expr Expr
	Sp   token.Span
}

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Expr Expr
	Sp   token.Span
}

// VarStmt is `var name = init;` (Init may be nil).
type VarStmt struct {
	Name string
	Init Expr
	Sp   token.Span
}

// BlockStmt is a `{ ... }` sequence introducing a new lexical scope.
type BlockStmt struct {
	Stmts []Stmt
	Sp    token.Span
}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
	Sp   token.Span
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Sp   token.Span
}

// ForStmt is the C-style `for (init; cond; incr) body`; any clause may be
// nil, in which case the compiler lowers a nil Cond to an unconditional
// loop and omits the corresponding step.
type ForStmt struct {
	Init Stmt // VarStmt or ExprStmt, or nil
	Cond Expr // nil means "true"
	Incr Expr // nil means no post-iteration expression
	Body Stmt
	Sp   token.Span
}

// FunctionStmt declares a named function, or a method inside a ClassStmt.
type FunctionStmt struct {
	Name   string
	Params []string
	Body   []Stmt
	Sp     token.Span
}

// ReturnStmt is `return expr?;`. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
	Sp    token.Span
}

// ClassStmt declares a class, with an optional single superclass and a set
// of methods.
type ClassStmt struct {
	Name       string
	Superclass *VariableExpr // nil if no `< Super` clause
	Methods    []*FunctionStmt
	Sp         token.Span
}

func (s *ExprStmt) Span() token.Span     { return s.Sp }
func (s *PrintStmt) Span() token.Span    { return s.Sp }
func (s *VarStmt) Span() token.Span      { return s.Sp }
func (s *BlockStmt) Span() token.Span    { return s.Sp }
func (s *IfStmt) Span() token.Span       { return s.Sp }
func (s *WhileStmt) Span() token.Span    { return s.Sp }
func (s *ForStmt) Span() token.Span      { return s.Sp }
func (s *FunctionStmt) Span() token.Span { return s.Sp }
func (s *ReturnStmt) Span() token.Span   { return s.Sp }
func (s *ClassStmt) Span() token.Span    { return s.Sp }

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*VarStmt) stmtNode()      {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*ClassStmt) stmtNode()    {}
