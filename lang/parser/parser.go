// Package parser implements a recursive-descent (one function per
// precedence level for expressions) parser that turns a token stream into the ast.Program the compiler
// consumes. Like the scanner, the parser exists only so that running a
// script from source text is exercisable end to end.
package parser

import (
	"github.com/mna/yarrow/lang/ast"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/scanner"
	"github.com/mna/yarrow/lang/token"
)

// Parse scans and parses src, returning the program and any syntax errors
// collected along the way (aggregated, not fail-fast).
func Parse(src string) (*ast.Program, *errors.List) {
	toks, lexErrs := scanner.Scan(src)
	p := &parser{toks: toks}
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		if s := p.declaration(); s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
	}
	for _, e := range lexErrs.Errs() {
		p.errs.Add(e)
	}
	return prog, &p.errs
}

type parser struct {
	toks []scanner.TokenAndValue
	pos  int
	errs errors.List
}

func (p *parser) cur() scanner.TokenAndValue  { return p.toks[p.pos] }
func (p *parser) check(t token.Token) bool    { return p.cur().Token == t }
func (p *parser) atEnd() bool                 { return p.check(token.EOF) }
func (p *parser) span() token.Span            { return p.cur().Span }

func (p *parser) advance() scanner.TokenAndValue {
	tv := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tv
}

func (p *parser) match(ts ...token.Token) bool {
	for _, t := range ts {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(t token.Token, context string) scanner.TokenAndValue {
	if p.check(t) {
		return p.advance()
	}
	p.errorf(p.span(), "expected %s %s, got %s", t, context, p.cur().Token)
	return p.cur()
}

func (p *parser) errorf(sp token.Span, format string, args ...any) {
	p.errs.Addf(errors.KindSyntaxError, errors.TagParse, sp, format, args...)
}

// synchronize discards tokens until a plausible statement boundary, so one
// syntax error does not cascade into dozens of spurious ones.
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.toks[p.pos].Token == token.SEMICOLON {
			p.advance()
			return
		}
		switch p.cur().Token {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
