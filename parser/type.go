package parser

import (
	"github.com/dannys-code-corner/incan/ast"
)

func (p *Parser) parseType() ast.TypeExpr {
	if p.atKeyword("async") || p.atPunct("(") {
		return p.parseFuncOrTupleType()
	}
	if p.atKeyword("None") {
		tok := p.advance().Tok
		return ast.NewUnitType(tok)
	}
	name := p.expectIdent()
	var args []ast.TypeExpr
	var close ast.Token
	if p.atPunct("[") {
		p.advance()
		for !p.atPunct("]") && !p.atEOF() {
			args = append(args, p.parseType())
			if p.atPunct(",") {
				p.advance()
			}
		}
		close = p.expectPunct("]")
	}
	return ast.NewNamedType(name, args, close)
}

// parseFuncOrTupleType handles `(T1, T2) -> R`, its `async` form, and a
// bare tuple type `(T1, T2)`.
func (p *Parser) parseFuncOrTupleType() ast.TypeExpr {
	async := false
	start := p.cur.Tok
	if p.atKeyword("async") {
		p.advance()
		async = true
	}
	open := p.expectPunct("(")
	var elems []ast.TypeExpr
	for !p.atPunct(")") && !p.atEOF() {
		elems = append(elems, p.parseType())
		if p.atPunct(",") {
			p.advance()
		}
	}
	close := p.expectPunct(")")

	if p.atPunct("->") {
		p.advance()
		result := p.parseType()
		return ast.NewFuncType(start, async, elems, result)
	}
	return ast.NewTupleType(open, elems, close)
}
