package parser

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/token"
)

func (p *parser) declaration() (s ast.Stmt) {
	start := p.span().Start
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			s = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl(start)
	case p.match(token.FUN):
		return p.funDecl(start)
	case p.match(token.VAR):
		return p.varDecl(start)
	default:
		return p.statement()
	}
}

func (p *parser) classDecl(start token.Pos) ast.Stmt {
	name := p.expect(token.IDENT, "after 'class'")
	var super *ast.VariableExpr
	if p.match(token.LT) {
		superTok := p.expect(token.IDENT, "superclass name")
		super = &ast.VariableExpr{Name: asString(superTok.Value), Sp: superTok.Span}
	}
	p.expect(token.LBRACE, "before class body")
	var methods []*ast.FunctionStmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		mstart := p.span().Start
		methods = append(methods, p.function(mstart))
	}
	end := p.expect(token.RBRACE, "after class body")
	return &ast.ClassStmt{
		Name:       asString(name.Value),
		Superclass: super,
		Methods:    methods,
		Sp:         token.Span{Start: start, End: end.Span.End},
	}
}

func (p *parser) funDecl(start token.Pos) ast.Stmt {
	return p.function(start)
}

// function parses `name(params) { body }`, used for both top-level
// functions and methods.
func (p *parser) function(start token.Pos) *ast.FunctionStmt {
	name := p.expect(token.IDENT, "function name")
	p.expect(token.LPAREN, "after function name")
	var params []string
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= 255 {
				p.errorf(p.span(), "can't have more than 255 parameters")
			}
			pt := p.expect(token.IDENT, "parameter name")
			params = append(params, asString(pt.Value))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "after parameters")
	p.expect(token.LBRACE, "before function body")
	body, end := p.blockStmts()
	return &ast.FunctionStmt{Name: asString(name.Value), Params: params, Body: body, Sp: token.Span{Start: start, End: end}}
}

func (p *parser) varDecl(start token.Pos) ast.Stmt {
	name := p.expect(token.IDENT, "after 'var'")
	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	end := p.expect(token.SEMICOLON, "after variable declaration")
	return &ast.VarStmt{Name: asString(name.Value), Init: init, Sp: token.Span{Start: start, End: end.Span.End}}
}

func (p *parser) statement() ast.Stmt {
	start := p.span().Start
	switch {
	case p.match(token.PRINT):
		return p.printStmt(start)
	case p.match(token.RETURN):
		return p.returnStmt(start)
	case p.match(token.WHILE):
		return p.whileStmt(start)
	case p.match(token.FOR):
		return p.forStmt(start)
	case p.match(token.IF):
		return p.ifStmt(start)
	case p.match(token.LBRACE):
		stmts, end := p.blockStmts()
		return &ast.BlockStmt{Stmts: stmts, Sp: token.Span{Start: start, End: end}}
	default:
		return p.exprStmt(start)
	}
}

func (p *parser) blockStmts() ([]ast.Stmt, token.Pos) {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.expect(token.RBRACE, "after block")
	return stmts, end.Span.End
}

func (p *parser) printStmt(start token.Pos) ast.Stmt {
	e := p.expression()
	end := p.expect(token.SEMICOLON, "after value")
	return &ast.PrintStmt{Expr: e, Sp: token.Span{Start: start, End: end.Span.End}}
}

func (p *parser) returnStmt(start token.Pos) ast.Stmt {
	var val ast.Expr
	if !p.check(token.SEMICOLON) {
		val = p.expression()
	}
	end := p.expect(token.SEMICOLON, "after return value")
	return &ast.ReturnStmt{Value: val, Sp: token.Span{Start: start, End: end.Span.End}}
}

func (p *parser) whileStmt(start token.Pos) ast.Stmt {
	p.expect(token.LPAREN, "after 'while'")
	cond := p.expression()
	p.expect(token.RPAREN, "after condition")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: token.Span{Start: start, End: body.Span().End}}
}

func (p *parser) forStmt(start token.Pos) ast.Stmt {
	p.expect(token.LPAREN, "after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.check(token.VAR):
		p.advance()
		init = p.varDecl(p.span().Start)
	default:
		init = p.exprStmt(p.span().Start)
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON, "after loop condition")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.expect(token.RPAREN, "after for clauses")

	body := p.statement()
	return &ast.ForStmt{Init: init, Cond: cond, Incr: incr, Body: body, Sp: token.Span{Start: start, End: body.Span().End}}
}

func (p *parser) ifStmt(start token.Pos) ast.Stmt {
	p.expect(token.LPAREN, "after 'if'")
	cond := p.expression()
	p.expect(token.RPAREN, "after condition")
	then := p.statement()
	var els ast.Stmt
	end := then.Span().End
	if p.match(token.ELSE) {
		els = p.statement()
		end = els.Span().End
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Sp: token.Span{Start: start, End: end}}
}

func (p *parser) exprStmt(start token.Pos) ast.Stmt {
	e := p.expression()
	end := p.expect(token.SEMICOLON, "after expression")
	return &ast.ExprStmt{Expr: e, Sp: token.Span{Start: start, End: end.Span.End}}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
