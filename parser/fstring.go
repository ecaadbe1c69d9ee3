package parser

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/lexer"
	"github.com/dannys-code-corner/incan/reporter"
)

// assembleFString turns the raw parts a lexer.Result carries for an
// f-string literal into an ast.FStringExpr, parsing each embedded
// expression's source text independently (see lexer's scanFString doc
// comment on why this happens here rather than inline in the lexer).
func (p *Parser) assembleFString(r lexer.Result) *ast.FStringExpr {
	var fragments []ast.FStringFragment
	for _, part := range r.Parts {
		if !part.IsExpr {
			fragments = append(fragments, ast.FStringFragment{Literal: part.Literal})
			continue
		}
		expr, err := ParseExpr(p.lex.Info().Name(), []byte(part.ExprSource), p.handler)
		if err != nil || expr == nil {
			_ = p.handler.HandleDiagnostic(reporter.Parse, p.lex.Info().TokenInfo(r.Tok).Start(), err, nil)
			continue
		}
		fragments = append(fragments, ast.FStringFragment{
			IsExpr: true, Expr: expr, FormatSpec: part.FormatSpec, Debug: part.Debug,
		})
	}
	return ast.NewFStringExpr(r.Tok, fragments, r.Tok)
}
