package lexer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dannys-code-corner/incan/token"
)

// scanFString scans an `f"..."` literal, having already consumed the
// leading `f` and the opening quote. It yields alternating literal
// fragments and, for each `{expr}` / `{expr:spec}` / `{expr:?}`, the raw
// unparsed source of the embedded expression: the parser lexes and parses
// that text independently, keeping this package free of a dependency on
// the parser.
func (l *Lexer) scanFString(quote rune) Result {
	triple := false
	if r1, sz1 := l.input.peekRune(); r1 == quote {
		if r2, _ := l.peekRuneAt(sz1); r2 == quote {
			l.input.readRune()
			l.input.readRune()
			triple = true
		}
	}

	var parts []token.FStringPart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, token.FStringPart{Literal: lit.String()})
			lit.Reset()
		}
	}

	for {
		c, _, err := l.input.readRune()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return l.fail(fmt.Errorf("unterminated f-string literal: %w", err))
		}
		switch {
		case c == quote && !triple:
			flush()
			return Result{Kind: token.STRING, IsFString: true, Parts: parts, Tok: l.newTok()}
		case c == quote && triple:
			r1, sz1 := l.input.peekRune()
			if r1 == quote {
				if r2, _ := l.peekRuneAt(sz1); r2 == quote {
					l.input.readRune()
					l.input.readRune()
					flush()
					return Result{Kind: token.STRING, IsFString: true, Parts: parts, Tok: l.newTok()}
				}
			}
			lit.WriteRune(c)
		case c == '\n':
			if !triple {
				return l.fail(fmt.Errorf("encountered end of line before end of f-string literal"))
			}
			l.info.AddLine(l.input.offset())
			lit.WriteRune(c)
		case c == '{':
			if r, _ := l.input.peekRune(); r == '{' {
				l.input.readRune()
				lit.WriteRune('{')
				continue
			}
			flush()
			part, err := l.scanFStringExpr()
			if err != nil {
				return l.fail(err)
			}
			parts = append(parts, part)
		case c == '}':
			if r, _ := l.input.peekRune(); r == '}' {
				l.input.readRune()
				lit.WriteRune('}')
				continue
			}
			return l.fail(fmt.Errorf("unmatched '}' in f-string literal"))
		case c == '\\':
			r, err := l.readEscape()
			if err != nil {
				return l.fail(err)
			}
			lit.WriteRune(r)
		default:
			lit.WriteRune(c)
		}
	}
}

// scanFStringExpr scans the body of a `{...}` substitution, tracking
// bracket/quote depth so commas, colons, and braces inside the expression
// itself don't terminate it early. The leading `{` has already been
// consumed; the trailing `}` is consumed by this call.
func (l *Lexer) scanFStringExpr() (token.FStringPart, error) {
	var src strings.Builder
	depth := 0
	var formatSpec string
	debug := false

	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return token.FStringPart{}, fmt.Errorf("unterminated f-string expression: %w", err)
		}
		switch c {
		case '(', '[', '{':
			depth++
			src.WriteRune(c)
		case ')', ']':
			depth--
			src.WriteRune(c)
		case '"', '\'':
			src.WriteRune(c)
			if err := l.copyNestedString(&src, c); err != nil {
				return token.FStringPart{}, err
			}
		case '}':
			if depth == 0 {
				return token.FStringPart{ExprSource: src.String(), IsExpr: true, FormatSpec: formatSpec, Debug: debug}, nil
			}
			depth--
			src.WriteRune(c)
		case ':':
			if depth == 0 {
				spec, dbg, err := l.scanFormatSpec()
				if err != nil {
					return token.FStringPart{}, err
				}
				formatSpec, debug = spec, dbg
				continue
			}
			src.WriteRune(c)
		default:
			src.WriteRune(c)
		}
	}
}

// copyNestedString copies a plain quoted string embedded inside an
// f-string expression verbatim into src, so its contents (which may
// contain `}` or `:`) are never mistaken for expression syntax.
func (l *Lexer) copyNestedString(src *strings.Builder, quote rune) error {
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return fmt.Errorf("unterminated string inside f-string expression: %w", err)
		}
		src.WriteRune(c)
		if c == '\\' {
			c2, _, err := l.input.readRune()
			if err != nil {
				return err
			}
			src.WriteRune(c2)
			continue
		}
		if c == quote {
			return nil
		}
	}
}

// scanFormatSpec scans the `:spec` or `:?` suffix of a `{expr:...}`
// substitution, up to (but not including) the closing `}`.
func (l *Lexer) scanFormatSpec() (spec string, debug bool, err error) {
	var b strings.Builder
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return "", false, fmt.Errorf("unterminated format spec: %w", err)
		}
		if c == '}' {
			l.input.unreadRune(runeLen(c))
			text := b.String()
			if text == "?" {
				return "", true, nil
			}
			return text, false, nil
		}
		b.WriteRune(c)
	}
}

func runeLen(r rune) int {
	if r < 0x80 {
		return 1
	}
	if r < 0x800 {
		return 2
	}
	if r < 0x10000 {
		return 3
	}
	return 4
}
