// Package emit turns an ir.Program into target source text: one token tree
// per file, built through Builder (spec §4.5's "string concatenation is
// disallowed for code emission" discipline), then rendered by the
// pretty-printer into final bytes.
//
// The shape is grounded on the teacher's experimental/printer/dom package: a
// Dom built from Chunks, rendered by walking the tree once. Unlike that
// package, Builder does not do line-width-adaptive splitting — Incan's
// target output has no reader-facing line-fitting requirement the way a
// reformatted .proto file does, so indentation is fixed by nesting depth
// and every split point is a hard newline the caller asked for explicitly.
package emit

import (
	"strings"
)

// token is one unit of a Builder's output: literal text, a single space, a
// hard newline, or an indent-depth change. Keeping these as distinct values
// rather than appending to a string is what satisfies the
// no-string-concatenation discipline: every character that reaches the
// output passes through Render's single switch.
type tokenKind int

const (
	tokText tokenKind = iota
	tokSpace
	tokNewline
	tokIndent
	tokDedent
)

type token struct {
	kind tokenKind
	text string
}

// Builder accumulates a token tree for one emitted file (or one nested
// block within it). Call its methods to append tokens, then Render to
// produce final text. A Builder is not safe for concurrent use; the emitter
// is single-threaded per spec §5.
type Builder struct {
	tokens []token
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Text appends literal text with no surrounding whitespace.
func (b *Builder) Text(s string) *Builder {
	b.tokens = append(b.tokens, token{kind: tokText, text: s})
	return b
}

// Space appends a single ASCII space.
func (b *Builder) Space() *Builder {
	b.tokens = append(b.tokens, token{kind: tokSpace})
	return b
}

// Newline appends a hard line break.
func (b *Builder) Newline() *Builder {
	b.tokens = append(b.tokens, token{kind: tokNewline})
	return b
}

// BlankLine appends two consecutive line breaks, the emitter's convention
// for separating top-level declarations.
func (b *Builder) BlankLine() *Builder {
	return b.Newline().Newline()
}

// Indent increases the indent depth for every token appended after it,
// until a matching Dedent.
func (b *Builder) Indent() *Builder {
	b.tokens = append(b.tokens, token{kind: tokIndent})
	return b
}

// Dedent decreases the indent depth.
func (b *Builder) Dedent() *Builder {
	b.tokens = append(b.tokens, token{kind: tokDedent})
	return b
}

// Block appends a `{ ... }`-style braced block at the current position:
// an opening brace, a newline, the indented body (built by fn against a
// fresh child Builder), and a closing brace aligned with the opener.
func (b *Builder) Block(fn func(*Builder)) *Builder {
	b.Text("{").Indent().Newline()
	child := NewBuilder()
	fn(child)
	b.Append(child)
	if n := len(child.tokens); n > 0 && child.tokens[n-1].kind != tokNewline {
		b.Newline()
	}
	b.Dedent().Text("}")
	return b
}

// Append splices another Builder's tokens into this one, preserving its
// internal indent/dedent changes relative to the point of insertion.
func (b *Builder) Append(other *Builder) *Builder {
	b.tokens = append(b.tokens, other.tokens...)
	return b
}

// Join appends each item, separated by sep (typically ", "), calling fn to
// build each one against a scratch Builder.
func Join[T any](b *Builder, items []T, sep string, fn func(*Builder, T)) {
	for i, item := range items {
		if i > 0 {
			b.Text(sep)
		}
		fn(b, item)
	}
}

const indentUnit = "    "

// Render walks the token tree and produces final text. A newline is
// followed by indentUnit repeated to the current depth, unless the next
// token is itself a dedent or another newline (so blank lines stay blank).
func (b *Builder) Render() string {
	var out strings.Builder
	depth := 0
	atLineStart := true
	for _, t := range b.tokens {
		switch t.kind {
		case tokText:
			if atLineStart && t.text != "" {
				out.WriteString(strings.Repeat(indentUnit, depth))
				atLineStart = false
			}
			out.WriteString(t.text)
		case tokSpace:
			out.WriteString(" ")
		case tokNewline:
			out.WriteString("\n")
			atLineStart = true
		case tokIndent:
			depth++
		case tokDedent:
			depth--
		}
	}
	return out.String()
}
