package parser

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/token"
)

func (p *Parser) parsePattern() ast.Pattern {
	switch {
	case p.cur.Kind == token.IDENT && p.cur.Text == "_":
		tok := p.advance().Tok
		return ast.NewWildcardPattern(tok)
	case p.atPunct("("):
		return p.parseTuplePattern()
	case p.cur.Kind == token.IDENT:
		name := p.expectIdent()
		if p.atPunct("(") {
			return p.parseVariantPattern(name)
		}
		return ast.NewBindingPattern(name)
	default:
		value := p.parseUnaryExpr()
		return ast.NewLiteralPattern(value)
	}
}

func (p *Parser) parseVariantPattern(name *ast.IdentNode) *ast.VariantPattern {
	p.advance() // '('
	var payload []ast.Pattern
	for !p.atPunct(")") && !p.atEOF() {
		payload = append(payload, p.parsePattern())
		if p.atPunct(",") {
			p.advance()
		}
	}
	close := p.expectPunct(")")
	return ast.NewVariantPattern(name, payload, close)
}

func (p *Parser) parseTuplePattern() *ast.TuplePattern {
	open := p.advance().Tok
	var elems []ast.Pattern
	for !p.atPunct(")") && !p.atEOF() {
		elems = append(elems, p.parsePattern())
		if p.atPunct(",") {
			p.advance()
		}
	}
	close := p.expectPunct(")")
	return ast.NewTuplePattern(open, elems, close)
}
