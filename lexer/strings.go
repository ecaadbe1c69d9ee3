package lexer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dannys-code-corner/incan/token"
)

// scanString scans a quoted literal whose opening quote has already been
// consumed (stored as the single rune `quote`). If triple-quoted (the
// opening quote is immediately followed by two more of the same quote
// character), embedded newlines are permitted. If isBytes, the result is
// ASCII-validated and returned as Bytes rather than Str.
func (l *Lexer) scanString(quote rune, isBytes bool) Result {
	triple := false
	if r1, sz1 := l.input.peekRune(); r1 == quote {
		if r2, _ := l.peekRuneAt(sz1); r2 == quote {
			l.input.readRune()
			l.input.readRune()
			triple = true
		}
	}

	var buf strings.Builder
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return l.fail(fmt.Errorf("unterminated string literal: %w", err))
		}
		if c == '\n' {
			if !triple {
				return l.fail(fmt.Errorf("encountered end of line before end of string literal"))
			}
			l.info.AddLine(l.input.offset())
			buf.WriteRune(c)
			continue
		}
		if c == quote {
			if !triple {
				break
			}
			r1, sz1 := l.input.peekRune()
			if r1 == quote {
				if r2, _ := l.peekRuneAt(sz1); r2 == quote {
					l.input.readRune()
					l.input.readRune()
					break
				}
			}
			buf.WriteRune(c)
			continue
		}
		if c == '\\' {
			r, err := l.readEscape()
			if err != nil {
				return l.fail(err)
			}
			buf.WriteRune(r)
			continue
		}
		buf.WriteRune(c)
	}

	text := buf.String()
	if isBytes {
		raw := make([]byte, 0, len(text))
		for _, r := range text {
			if r > 0x7f {
				return l.fail(fmt.Errorf("byte string literal contains non-ASCII rune %q", r))
			}
			raw = append(raw, byte(r))
		}
		return Result{Kind: token.BYTES, Bytes: raw, Text: text, Tok: l.newTok()}
	}
	return Result{Kind: token.STRING, Str: text, Text: text, Tok: l.newTok()}
}

// peekRuneAt peeks the rune starting `skip` bytes past the current cursor,
// without consuming anything.
func (l *Lexer) peekRuneAt(skip int) (rune, int) {
	save := l.input.pos
	l.input.pos += skip
	r, sz := l.input.peekRune()
	l.input.pos = save
	return r, sz
}

// readEscape decodes the escape sequence following a backslash that has
// already been consumed.
func (l *Lexer) readEscape() (rune, error) {
	c, _, err := l.input.readRune()
	if err != nil {
		return 0, err
	}
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case 'x':
		return l.readHexEscape(2)
	case 'u':
		return l.readUnicodeEscape()
	default:
		return 0, fmt.Errorf("invalid escape sequence \\%c", c)
	}
}

func (l *Lexer) readHexEscape(n int) (rune, error) {
	digits := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		c, _, err := l.input.readRune()
		if err != nil {
			return 0, err
		}
		digits = append(digits, c)
	}
	v, err := strconv.ParseInt(string(digits), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex escape \\x%s", string(digits))
	}
	return rune(v), nil
}

// readUnicodeEscape decodes `\u{XXXX}`.
func (l *Lexer) readUnicodeEscape() (rune, error) {
	c, _, err := l.input.readRune()
	if err != nil {
		return 0, err
	}
	if c != '{' {
		return 0, fmt.Errorf("expected '{' after \\u")
	}
	var digits []rune
	for {
		c, _, err := l.input.readRune()
		if err != nil {
			return 0, err
		}
		if c == '}' {
			break
		}
		digits = append(digits, c)
	}
	v, err := strconv.ParseInt(string(digits), 16, 32)
	if err != nil || v > 0x10ffff {
		return 0, fmt.Errorf("invalid unicode escape \\u{%s}", string(digits))
	}
	return rune(v), nil
}
