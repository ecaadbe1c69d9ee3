package reporter

import (
	"errors"
	"fmt"

	"github.com/dannys-code-corner/incan/ast"
)

// ErrInvalidSource is returned by a compile when syntax, resolution, or type
// errors were encountered but the configured ErrorReporter swallowed all of
// them (returned nil every time).
var ErrInvalidSource = errors.New("compile failed: invalid source")

// Category classifies which pipeline stage produced a diagnostic. It is
// primarily useful to callers that want to bucket or filter diagnostics
// (e.g. "stop after the first parse error, but collect all type errors").
type Category int

const (
	// Uncategorized is used for errors with no specific stage association
	// (e.g. I/O failures reading a file).
	Uncategorized Category = iota
	Lex
	Parse
	Resolve
	Type
	Lowering
	Emission
	Build
)

func (c Category) String() string {
	switch c {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Resolve:
		return "resolve"
	case Type:
		return "type"
	case Lowering:
		return "lowering"
	case Emission:
		return "emission"
	case Build:
		return "build"
	default:
		return "error"
	}
}

// ErrorWithPos is an error about an Incan source file that carries the
// primary location that caused it, plus any secondary related locations and
// hints a diagnostic renderer can use to produce a richer message.
//
// The value of Error() contains the SourcePos and the underlying message.
// Unwrap returns only the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	GetCategory() Category
	GetSecondary() []Related
	GetHints() []string
	Unwrap() error
}

// Related is a secondary source location attached to a diagnostic, e.g. "the
// variable was declared immutable here".
type Related struct {
	Pos     ast.SourcePos
	Message string
}

// Error creates an ErrorWithPos with no category, no secondary locations,
// and no hints.
func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf is like Error but builds the underlying error from a format string.
func Errorf(pos ast.SourcePos, format string, args ...interface{}) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

// Diagnostic builds a fully-dressed ErrorWithPos: a category, secondary
// locations, and hints, in addition to the primary position and message.
// This is the constructor every pass beyond the raw lexer should use.
func Diagnostic(cat Category, pos ast.SourcePos, err error, secondary []Related, hints ...string) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err, category: cat, secondary: secondary, hints: hints}
}

// errorWithSourcePos is the concrete implementation of ErrorWithPos used
// throughout the compiler. Calling code that wants to inspect diagnostics
// should do so through the ErrorWithPos interface rather than asserting this
// type directly; it is unexported, and other packages construct it only
// via the functions above.
type errorWithSourcePos struct {
	underlying error
	pos        ast.SourcePos
	category   Category
	secondary  []Related
	hints      []string
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

// GetPosition implements ErrorWithPos.
func (e errorWithSourcePos) GetPosition() ast.SourcePos { return e.pos }

// GetCategory implements ErrorWithPos.
func (e errorWithSourcePos) GetCategory() Category { return e.category }

// GetSecondary implements ErrorWithPos.
func (e errorWithSourcePos) GetSecondary() []Related { return e.secondary }

// GetHints implements ErrorWithPos.
func (e errorWithSourcePos) GetHints() []string { return e.hints }

// Unwrap implements ErrorWithPos.
func (e errorWithSourcePos) Unwrap() error { return e.underlying }

var _ ErrorWithPos = errorWithSourcePos{}
