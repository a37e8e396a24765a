package parser

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/token"
)

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.check(token.EQ) {
		eq := p.advance()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: e.Name, Value: value, Sp: token.Span{Start: e.Sp.Start, End: value.Span().End}}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value, Sp: token.Span{Start: e.Sp.Start, End: value.Span().End}}
		default:
			p.errorf(eq.Span, "invalid assignment target")
			return expr
		}
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.check(token.OR) {
		op := p.advance()
		right := p.and()
		expr = &ast.LogicalExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.check(token.AND) {
		op := p.advance()
		right := p.equality()
		expr = &ast.LogicalExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.check(token.BANG_EQ) || p.check(token.EQEQ) {
		op := p.advance()
		right := p.comparison()
		expr = &ast.BinaryExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.check(token.GT) || p.check(token.GE) || p.check(token.LT) || p.check(token.LE) {
		op := p.advance()
		right := p.term()
		expr = &ast.BinaryExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.check(token.MINUS) || p.check(token.PLUS) {
		op := p.advance()
		right := p.factor()
		expr = &ast.BinaryExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.check(token.SLASH) || p.check(token.STAR) {
		op := p.advance()
		right := p.unary()
		expr = &ast.BinaryExpr{Op: op.Token, Left: expr, Right: right, Sp: token.Span{Start: expr.Span().Start, End: right.Span().End}}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		right := p.unary()
		return &ast.UnaryExpr{Op: op.Token, Right: right, Sp: token.Span{Start: op.Span.Start, End: right.Span().End}}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.expect(token.IDENT, "property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: asString(name.Value), Sp: token.Span{Start: expr.Span().Start, End: name.Span.End}}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= 255 {
				p.errorf(p.span(), "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	end := p.expect(token.RPAREN, "after arguments")
	return &ast.CallExpr{Callee: callee, Args: args, Sp: token.Span{Start: callee.Span().Start, End: end.Span.End}}
}

func (p *parser) primary() ast.Expr {
	tv := p.cur()
	sp := tv.Span
	switch tv.Token {
	case token.FALSE:
		p.advance()
		return &ast.LiteralExpr{Value: false, Sp: sp}
	case token.TRUE:
		p.advance()
		return &ast.LiteralExpr{Value: true, Sp: sp}
	case token.NIL:
		p.advance()
		return &ast.LiteralExpr{Value: nil, Sp: sp}
	case token.NUMBER:
		p.advance()
		v, _ := tv.Value.(float64)
		return &ast.LiteralExpr{Value: v, Sp: sp}
	case token.STRING:
		p.advance()
		return &ast.LiteralExpr{Value: asString(tv.Value), Sp: sp}
	case token.THIS:
		p.advance()
		return &ast.ThisExpr{Sp: sp}
	case token.SUPER:
		p.advance()
		p.expect(token.DOT, "after 'super'")
		method := p.expect(token.IDENT, "superclass method name")
		return &ast.SuperExpr{Method: asString(method.Value), Sp: token.Span{Start: sp.Start, End: method.Span.End}}
	case token.IDENT:
		p.advance()
		return &ast.VariableExpr{Name: asString(tv.Value), Sp: sp}
	case token.LPAREN:
		p.advance()
		e := p.expression()
		end := p.expect(token.RPAREN, "after expression")
		return &ast.GroupingExpr{Expr: e, Sp: token.Span{Start: sp.Start, End: end.Span.End}}
	default:
		p.errorf(sp, "expected expression, got %s", tv.Token)
		p.advance()
		return &ast.LiteralExpr{Value: nil, Sp: sp}
	}
}
