// Package lexer turns Incan source text into a stream of tokens, tracking
// indentation (INDENT/DEDENT), joining continuation lines inside open
// brackets, and decoding literals (including f-string fragments) along the
// way.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/token"
)

// indentWidth is how many columns a tab expands to for the purpose of
// comparing indentation levels. The spec fixes this at two spaces.
const indentWidth = 2

// Result is one token produced by the lexer: enough for the parser to act
// on immediately (Kind, decoded value) plus the ast.Token handle needed to
// build AST nodes with correct spans.
type Result struct {
	Kind  token.Kind
	Tok   ast.Token
	Text  string
	Int   uint64
	Float float64
	Str   string
	Bytes []byte
	Bool  bool
	// Keyword holds the canonical spelling when Kind == token.KEYWORD.
	Keyword string
	// Parts holds the decoded pieces of an f-string when Kind ==
	// token.STRING and IsFString is true.
	Parts     []token.FStringPart
	IsFString bool
}

// Lexer is a single-use scanner over one file's contents.
type Lexer struct {
	input   *runeReader
	info    *ast.FileInfo
	handler *reporter.Handler

	// indents is the stack of currently open indentation widths; indents[0]
	// is always 0.
	indents []int
	// parenDepth counts unclosed (), [], {}; inside any of them, newlines
	// are insignificant and never trigger indent processing.
	parenDepth int

	// pending holds INDENT/DEDENT/NEWLINE tokens queued up to be returned
	// before the scanner resumes normal tokenizing.
	pending []Result

	atLineStart bool
	sawEOF      bool

	pendingComments []ast.Token
	prevTok         ast.Token
	havePrevTok     bool
}

// New creates a lexer over contents, registering filename with a fresh
// ast.FileInfo that the caller can retrieve via Info.
func New(filename string, contents []byte, handler *reporter.Handler) *Lexer {
	return &Lexer{
		input:       &runeReader{data: contents},
		info:        ast.NewFileInfo(filename, contents),
		handler:     handler,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Info returns the FileInfo this lexer is populating; the parser threads it
// through to every AST node it builds.
func (l *Lexer) Info() *ast.FileInfo { return l.info }

func (l *Lexer) pos() ast.SourcePos { return l.info.SourcePos(l.input.offset()) }

func (l *Lexer) fail(err error) Result {
	_ = l.handler.HandleDiagnostic(reporter.Lex, l.pos(), err, nil)
	return Result{Kind: token.Invalid}
}

// newTok registers the most recently marked span with FileInfo and attaches
// any comments accumulated since the previous token as its leading
// comments.
func (l *Lexer) newTok() ast.Token {
	tok := l.info.AddToken(l.input.mark, l.input.pos-l.input.mark)
	for _, c := range l.pendingComments {
		l.info.AddComment(c, tok)
	}
	l.pendingComments = nil
	l.prevTok = tok
	l.havePrevTok = true
	return tok
}

// Next returns the next token in the stream. Once it has returned a Result
// with Kind == token.EOF, every subsequent call returns the same thing.
func (l *Lexer) Next() Result {
	if len(l.pending) > 0 {
		r := l.pending[0]
		l.pending = l.pending[1:]
		return r
	}
	if l.sawEOF {
		return l.emitEOF()
	}

	if l.atLineStart && l.parenDepth == 0 {
		if done := l.scanIndentation(); done {
			if len(l.pending) > 0 {
				r := l.pending[0]
				l.pending = l.pending[1:]
				return r
			}
		}
	}

	return l.scanToken()
}

// scanIndentation measures the leading whitespace of a new logical line and
// queues whatever INDENT/DEDENT/NEWLINE tokens result. Blank and
// comment-only lines are skipped entirely: they never affect the indent
// stack and never produce a NEWLINE. Returns true once `pending` may have
// something in it (including "nothing, just keep scanning").
func (l *Lexer) scanIndentation() bool {
	for {
		col := 0
		for {
			r, sz := l.input.peekRune()
			if r == ' ' {
				col++
			} else if r == '\t' {
				col += indentWidth
			} else {
				break
			}
			l.input.readRune()
			_ = sz
		}

		r, _ := l.input.peekRune()
		if r == 0 && l.input.pos >= len(l.input.data) {
			l.atLineStart = false
			return false
		}
		if r == '\n' {
			l.input.readRune()
			l.info.AddLine(l.input.offset())
			continue // blank line: no indent processing
		}
		if r == '#' {
			l.input.setMark()
			l.skipLineComment()
			continue
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case col > top:
			l.indents = append(l.indents, col)
			l.input.setMark()
			l.pending = append(l.pending, Result{Kind: token.INDENT, Tok: l.newTok()})
		case col < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > col {
				l.indents = l.indents[:len(l.indents)-1]
				l.input.setMark()
				l.pending = append(l.pending, Result{Kind: token.DEDENT, Tok: l.newTok()})
			}
			if l.indents[len(l.indents)-1] != col {
				l.pending = append(l.pending, l.fail(fmt.Errorf("unindent does not match any outer indentation level")))
			}
		}
		return true
	}
}

func (l *Lexer) skipLineComment() {
	for {
		r, _, err := l.input.readRune()
		if err != nil || r == '\n' {
			if r == '\n' {
				l.info.AddLine(l.input.offset())
			}
			break
		}
	}
	l.pendingComments = append(l.pendingComments, l.newTok())
}

func (l *Lexer) emitEOF() Result {
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.input.setMark()
		return Result{Kind: token.DEDENT, Tok: l.newTok()}
	}
	l.input.setMark()
	return Result{Kind: token.EOF, Tok: l.newTok()}
}

// scanToken scans exactly one non-structural token (identifier, literal,
// operator, punctuation, or NEWLINE), having already dealt with
// indentation.
func (l *Lexer) scanToken() Result {
	for {
		l.input.setMark()
		c, _, err := l.input.readRune()
		if errors.Is(err, io.EOF) {
			l.sawEOF = true
			return l.emitEOF()
		} else if err != nil {
			return l.fail(err)
		}

		switch {
		case c == '\n':
			l.info.AddLine(l.input.offset())
			if l.parenDepth > 0 {
				continue
			}
			l.atLineStart = true
			return Result{Kind: token.NEWLINE, Tok: l.newTok()}

		case c == ' ' || c == '\t' || c == '\r':
			continue

		case c == '#':
			l.skipLineComment()
			continue

		case c == '_' || isAlpha(c):
			return l.scanIdent()

		case c >= '0' && c <= '9':
			return l.scanNumber()

		case c == '.':
			r, sz := l.input.peekRune()
			if r >= '0' && r <= '9' {
				return l.scanNumber()
			}
			if r == '.' {
				l.input.readRune()
				r2, sz2 := l.input.peekRune()
				if r2 == '=' {
					l.input.readRune()
					return Result{Kind: token.OPERATOR, Text: "..=", Tok: l.newTok()}
				}
				_ = sz2
				return Result{Kind: token.OPERATOR, Text: "..", Tok: l.newTok()}
			}
			_ = sz
			return Result{Kind: token.PUNCT, Text: ".", Tok: l.newTok()}

		case c == '"' || c == '\'':
			return l.scanString(c, false)

		case c == 'f' && (l.peekIs('"') || l.peekIs('\'')):
			quote, _ := l.input.peekRune()
			l.input.readRune()
			return l.scanFString(quote)

		case c == 'b' && (l.peekIs('"') || l.peekIs('\'')):
			quote, _ := l.input.peekRune()
			l.input.readRune()
			return l.scanString(quote, true)

		case c == '(' || c == '[' || c == '{':
			l.parenDepth++
			return Result{Kind: token.PUNCT, Text: string(c), Tok: l.newTok()}

		case c == ')' || c == ']' || c == '}':
			if l.parenDepth > 0 {
				l.parenDepth--
			}
			return Result{Kind: token.PUNCT, Text: string(c), Tok: l.newTok()}

		default:
			return l.scanOperatorOrPunct(c)
		}
	}
}

func (l *Lexer) peekIs(want rune) bool {
	r, _ := l.input.peekRune()
	return r == want
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (l *Lexer) scanIdent() Result {
	for {
		r, sz := l.input.peekRune()
		if r == '_' || isAlpha(r) || (r >= '0' && r <= '9') {
			l.input.readRune()
			continue
		}
		_ = sz
		break
	}
	text := l.input.markedText()
	if canonical, ok := token.LookupKeyword(text); ok {
		if canonical == "true" {
			return Result{Kind: token.KEYWORD, Keyword: "true", Bool: true, Text: text, Tok: l.newTok()}
		}
		if canonical == "false" {
			return Result{Kind: token.KEYWORD, Keyword: "false", Bool: false, Text: text, Tok: l.newTok()}
		}
		if canonical == "and" || canonical == "or" || canonical == "in" {
			return Result{Kind: token.OPERATOR, Text: canonical, Keyword: canonical, Tok: l.newTok()}
		}
		return Result{Kind: token.KEYWORD, Keyword: canonical, Text: text, Tok: l.newTok()}
	}
	return Result{Kind: token.IDENT, Text: text, Tok: l.newTok()}
}

func (l *Lexer) scanNumber() Result {
	isFloat := false
	if strings.HasPrefix(l.input.markedText(), "0") {
		// possible 0x/0o/0b prefix; peek second char before generic scan
	}
	first := l.input.markedText()
	if first == "0" {
		r, _ := l.input.peekRune()
		switch r {
		case 'x', 'X':
			l.input.readRune()
			return l.scanRadix(16, "hexadecimal")
		case 'o', 'O':
			l.input.readRune()
			return l.scanRadix(8, "octal")
		case 'b', 'B':
			l.input.readRune()
			return l.scanRadix(2, "binary")
		}
	}
	for {
		r, _ := l.input.peekRune()
		switch {
		case r >= '0' && r <= '9', r == '_':
			l.input.readRune()
		case r == '.' && !isFloat:
			isFloat = true
			l.input.readRune()
		case r == 'e' || r == 'E':
			isFloat = true
			l.input.readRune()
			if rn, _ := l.input.peekRune(); rn == '+' || rn == '-' {
				l.input.readRune()
			}
		default:
			text := strings.ReplaceAll(l.input.markedText(), "_", "")
			if isFloat {
				f, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return l.fail(fmt.Errorf("invalid float literal %q: %w", text, err))
				}
				return Result{Kind: token.FLOAT, Float: f, Text: text, Tok: l.newTok()}
			}
			i, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return l.fail(fmt.Errorf("invalid integer literal %q: %w", text, err))
			}
			return Result{Kind: token.INT, Int: i, Text: text, Tok: l.newTok()}
		}
	}
}

func (l *Lexer) scanRadix(base int, name string) Result {
	l.input.setMark()
	for {
		r, _ := l.input.peekRune()
		if r == '_' || isHexDigitForBase(r, base) {
			l.input.readRune()
			continue
		}
		break
	}
	text := strings.ReplaceAll(l.input.markedText(), "_", "")
	i, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return l.fail(fmt.Errorf("invalid %s integer literal %q: %w", name, text, err))
	}
	return Result{Kind: token.INT, Int: i, Text: text, Tok: l.newTok()}
}

func isHexDigitForBase(r rune, base int) bool {
	switch base {
	case 16:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case 8:
		return r >= '0' && r <= '7'
	case 2:
		return r == '0' || r == '1'
	}
	return false
}

// twoCharOps must be checked before their one-character prefix.
var twoCharOps = map[string]string{
	"==": "==", "!=": "!=", "<=": "<=", ">=": ">=",
	"->": "->", "=>": "=>", "//": "//", "**": "**", "::": "::",
}

func (l *Lexer) scanOperatorOrPunct(c rune) Result {
	if r2, sz2 := l.input.peekRune(); sz2 > 0 {
		if op, ok := twoCharOps[string(c)+string(r2)]; ok {
			l.input.readRune()
			kind := token.OPERATOR
			if op == "->" || op == "=>" || op == "::" {
				kind = token.PUNCT
			}
			return Result{Kind: kind, Text: op, Tok: l.newTok()}
		}
	}
	switch c {
	case '+', '-', '*', '/', '%', '<', '>':
		return Result{Kind: token.OPERATOR, Text: string(c), Tok: l.newTok()}
	case '=', ',', ':', '?', '@':
		return Result{Kind: token.PUNCT, Text: string(c), Tok: l.newTok()}
	default:
		return l.fail(fmt.Errorf("unexpected character %q", c))
	}
}
