package parser

import (
	"fmt"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/lexer"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/token"
)

// Parser holds the state needed to turn one file's token stream into an
// ast.File. It buffers exactly one token of lookahead beyond `cur`, which
// is all a recursive-descent grammar with no backtracking needs here.
type Parser struct {
	lex     *lexer.Lexer
	handler *reporter.Handler

	cur  lexer.Result
	next lexer.Result
	haveNext bool
}

// Parse lexes and parses a complete Incan source file.
func Parse(filename string, contents []byte, handler *reporter.Handler) (*ast.File, error) {
	p := &Parser{lex: lexer.New(filename, contents, handler), handler: handler}
	p.cur = p.lex.Next()

	start := p.cur.Tok
	decls := p.parseDecls()
	end := p.cur.Tok // EOF token

	if err := handler.ReporterError(); err != nil {
		return nil, err
	}
	return ast.NewFile(p.lex.Info(), decls, start, end), nil
}

// ParseExpr lexes and parses standalone expression source, used by the
// f-string fragment parser (lexer hands back raw, unparsed `{expr}` text).
func ParseExpr(filename string, contents []byte, handler *reporter.Handler) (ast.Expr, error) {
	p := &Parser{lex: lexer.New(filename, contents, handler), handler: handler}
	p.cur = p.lex.Next()
	e := p.parseExpr()
	if err := handler.ReporterError(); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) advance() lexer.Result {
	prev := p.cur
	if p.haveNext {
		p.cur = p.next
		p.haveNext = false
	} else {
		p.cur = p.lex.Next()
	}
	return prev
}

func (p *Parser) peekNext() lexer.Result {
	if !p.haveNext {
		p.next = p.lex.Next()
		p.haveNext = true
	}
	return p.next
}

func (p *Parser) atEOF() bool { return p.cur.Kind == token.EOF }

func (p *Parser) atKeyword(kw string) bool {
	return p.cur.Kind == token.KEYWORD && p.cur.Keyword == kw
}

func (p *Parser) atOp(op string) bool {
	return p.cur.Kind == token.OPERATOR && p.cur.Text == op
}

func (p *Parser) atPunct(s string) bool {
	return p.cur.Kind == token.PUNCT && p.cur.Text == s
}

func (p *Parser) errorf(format string, args ...interface{}) {
	pos := p.lex.Info().TokenInfo(p.cur.Tok).Start()
	_ = p.handler.HandleDiagnostic(reporter.Parse, pos, fmt.Errorf(format, args...), nil)
}

// expectPunct consumes `s` if present, else reports an error and returns the
// current token's handle anyway so callers can keep building a span.
func (p *Parser) expectPunct(s string) ast.Token {
	if p.atPunct(s) {
		return p.advance().Tok
	}
	p.errorf("expected %q, found %s %q", s, p.cur.Kind, p.cur.Text)
	return p.cur.Tok
}

func (p *Parser) expectKeyword(kw string) ast.Token {
	if p.atKeyword(kw) {
		return p.advance().Tok
	}
	p.errorf("expected keyword %q, found %s %q", kw, p.cur.Kind, p.cur.Text)
	return p.cur.Tok
}

func (p *Parser) expectIdent() *ast.IdentNode {
	if p.cur.Kind == token.IDENT {
		r := p.advance()
		return ast.NewIdentNode(r.Text, r.Tok)
	}
	p.errorf("expected identifier, found %s %q", p.cur.Kind, p.cur.Text)
	return ast.NewIdentNode("<error>", p.cur.Tok)
}

// skipNewlines consumes any run of NEWLINE tokens (blank lines between
// top-level declarations, or before a block's first statement).
func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}
}

// parseBlock parses an INDENT, a sequence of statements, and the matching
// DEDENT, following a header line's trailing `:` and NEWLINE.
func (p *Parser) parseBlock() ([]ast.Stmt, ast.Token) {
	if p.cur.Kind == token.NEWLINE {
		p.advance()
	}
	if p.cur.Kind != token.INDENT {
		p.errorf("expected an indented block")
		return nil, p.cur.Tok
	}
	p.advance()
	var stmts []ast.Stmt
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}
	end := p.cur.Tok
	if p.cur.Kind == token.DEDENT {
		end = p.advance().Tok
	}
	return stmts, end
}
