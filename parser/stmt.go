package parser

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.atKeyword("let"):
		return p.parseBindingStmt(ast.BindLet)
	case p.atKeyword("mut"):
		return p.parseBindingStmt(ast.BindMut)
	case p.atKeyword("return"):
		return p.parseReturnStmt()
	case p.atKeyword("if"):
		return p.parseIfStmt()
	case p.atKeyword("while"):
		return p.parseWhileStmt()
	case p.atKeyword("for"):
		return p.parseForStmt()
	case p.atKeyword("match"):
		return p.parseMatchStmt()
	case p.atKeyword("pass"):
		tok := p.advance().Tok
		return ast.NewPassStmt(tok)
	case p.atKeyword("yield"):
		return p.parseYieldStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseBindingStmt(kind ast.BindingKind) *ast.BindingStmt {
	kw := p.advance().Tok
	name := p.expectIdent()
	var typ ast.TypeExpr
	if p.atPunct(":") {
		p.advance()
		typ = p.parseType()
	}
	p.expectPunct("=")
	value := p.parseExpr()
	return ast.NewBindingStmt(kw, kind, name, typ, value)
}

// parseSimpleStmt handles both a bare expression statement and the
// inferred binding/reassignment form `name = expr`, which share a prefix.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpr()
	if p.atPunct("=") {
		ident, ok := expr.(*ast.IdentNode)
		if !ok {
			p.errorf("left-hand side of assignment must be a plain name")
			p.advance()
			return ast.NewExprStmt(expr)
		}
		p.advance()
		value := p.parseExpr()
		return ast.NewBindingStmt(0, ast.BindInferred, ident, nil, value)
	}
	return ast.NewExprStmt(expr)
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	kw := p.advance().Tok
	if p.cur.Kind == token.NEWLINE || p.cur.Kind == token.DEDENT || p.atEOF() {
		return ast.NewReturnStmt(kw, nil)
	}
	return ast.NewReturnStmt(kw, p.parseExpr())
}

func (p *Parser) parseYieldStmt() *ast.YieldStmt {
	kw := p.advance().Tok
	if p.cur.Kind == token.NEWLINE || p.cur.Kind == token.DEDENT || p.atEOF() {
		return ast.NewYieldStmt(kw, nil)
	}
	return ast.NewYieldStmt(kw, p.parseExpr())
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	kw := p.advance().Tok
	cond := p.parseExpr()
	p.expectPunct(":")
	body, end := p.parseBlock()

	if p.atKeyword("elif") {
		elif := p.parseIfStmtElif()
		return ast.NewIfStmt(kw, cond, body, nil, elif, elif.End())
	}
	if p.atKeyword("else") {
		p.advance()
		p.expectPunct(":")
		elseBody, elseEnd := p.parseBlock()
		return ast.NewIfStmt(kw, cond, body, elseBody, nil, elseEnd)
	}
	return ast.NewIfStmt(kw, cond, body, nil, nil, end)
}

// parseIfStmtElif parses an `elif` clause as a nested *IfStmt, the same way
// the keyword's own grammar production works, so chained elif/else reuses
// IfStmt.Elif all the way down.
func (p *Parser) parseIfStmtElif() *ast.IfStmt {
	kw := p.advance().Tok
	cond := p.parseExpr()
	p.expectPunct(":")
	body, end := p.parseBlock()
	if p.atKeyword("elif") {
		nested := p.parseIfStmtElif()
		return ast.NewIfStmt(kw, cond, body, nil, nested, nested.End())
	}
	if p.atKeyword("else") {
		p.advance()
		p.expectPunct(":")
		elseBody, elseEnd := p.parseBlock()
		return ast.NewIfStmt(kw, cond, body, elseBody, nil, elseEnd)
	}
	return ast.NewIfStmt(kw, cond, body, nil, nil, end)
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	kw := p.advance().Tok
	cond := p.parseExpr()
	p.expectPunct(":")
	body, end := p.parseBlock()
	return ast.NewWhileStmt(kw, cond, body, end)
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	kw := p.advance().Tok
	v := p.expectIdent()
	p.expectKeyword("in")
	iter := p.parseExpr()
	p.expectPunct(":")
	body, end := p.parseBlock()
	return ast.NewForStmt(kw, v, iter, body, end)
}

func (p *Parser) parseMatchStmt() *ast.MatchStmt {
	kw := p.advance().Tok
	scrutinee := p.parseExpr()
	p.expectPunct(":")
	if p.cur.Kind == token.NEWLINE {
		p.advance()
	}
	p.expectPunctOrIndent()

	var arms []*ast.MatchArm
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		arms = append(arms, p.parseMatchArm())
	}
	end := p.consumeDedent()
	return ast.NewMatchStmt(kw, scrutinee, arms, end)
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	p.expectKeyword("case")
	pattern := p.parsePattern()
	var guard ast.Expr
	if p.atKeyword("if") {
		p.advance()
		guard = p.parseExpr()
	}
	p.expectPunct(":")
	body, end := p.parseArmBody()
	return ast.NewMatchArm(pattern, guard, body, nil, end)
}

// parseArmBody parses a match arm's statement-list body: either the usual
// indented block, or spec's `case pattern: stmt` shorthand, a single
// statement inline on the same line as the colon.
func (p *Parser) parseArmBody() ([]ast.Stmt, ast.Token) {
	if p.cur.Kind == token.NEWLINE || p.cur.Kind == token.INDENT {
		return p.parseBlock()
	}
	stmt := p.parseStmt()
	return []ast.Stmt{stmt}, stmt.End()
}
