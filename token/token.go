package token

// Span is a half-open byte range within a single file, independent of the
// AST's own ast.Token handle — it is what the lexer produces and the
// ast.FileInfo.AddToken call consumes.
type Span struct {
	Offset int
	Length int
}

// Lexeme is one token as produced by the lexer, before it is registered
// with an ast.FileInfo and turned into an ast.Token handle.
type Lexeme struct {
	Kind Kind
	Span Span
	Text string // raw source text; decoded literal value lives on the AST node

	// Keyword holds the canonical spelling when Kind == KEYWORD.
	Keyword string
}

// FStringPart is one raw piece of an f-string literal as produced by the
// lexer: either a decoded literal fragment, or the unparsed source text of
// an embedded `{expr}` (or `{expr:spec}`, `{expr:?}`) the parser must lex
// and parse in its own right before assembling an ast.FStringExpr.
type FStringPart struct {
	Literal    string
	IsExpr     bool
	ExprSource string
	FormatSpec string
	Debug      bool
}
