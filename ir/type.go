// Package ir defines the lowered intermediate representation lowering
// produces from a checked ast.File plus its check.Info side table, and that
// the emitter consumes to produce target source. Unlike the checker's types,
// an ir.Type carries the ownership and width decisions the checker's type
// language has no room for: whether a value is owned or borrowed at this use
// site, whether it is a compile-time-frozen constant, and, for numeric
// grounds, the concrete target width chosen for it.
package ir

import "github.com/dannys-code-corner/incan/checktypes"

// Ownership records how a value is held at one particular use site. The same
// checktypes.Type may appear as Owned in one place and Borrowed in another;
// ownership is a property of the use, not of the declared type.
type Ownership int

const (
	// Owned is a value this use site has exclusive, moved-in possession of.
	Owned Ownership = iota
	// Borrowed is a shared, non-owning reference into a value owned
	// elsewhere (a function parameter read but not consumed, a receiver of
	// a non-mutating method call).
	Borrowed
	// Static marks a value backed by a compile-time constant with target
	// `'static` (or equivalent) lifetime: the frozen backing of a `const`.
	Static
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	case Static:
		return "static"
	default:
		return "<invalid ownership>"
	}
}

// Width is the target-specific numeric width chosen for an int or float
// ground type. The checker never distinguishes these; lowering picks one
// width per declaration so the emitter never has to guess.
type Width int

const (
	WidthDefault Width = iota // no explicit width requested; emitter uses its default (e.g. i64/f64)
	Width8
	Width16
	Width32
	Width64
	WidthSize // pointer-sized (target `usize`/`isize`), used for container lengths and indices
)

// Type pairs a checker type with the ownership and width lowering decided
// for one use site. Two Types with the same Base but different Ownership are
// not interchangeable: the emitter reads Ownership to decide whether to emit
// a reference sigil, a clone call, or a plain move.
type Type struct {
	Base      checktypes.Type
	Ownership Ownership
	Width     Width
}

// OwnedType wraps base as a freshly constructed, exclusively owned value,
// the common case for a literal or a fully evaluated expression result.
func OwnedType(base checktypes.Type) Type { return Type{Base: base, Ownership: Owned} }

// Borrow returns a borrowed view of base, used for receiver and read-only
// parameter positions.
func Borrow(base checktypes.Type) Type { return Type{Base: base, Ownership: Borrowed} }

// WithWidth returns t with its Width replaced; only meaningful when Base is
// the int or float ground type.
func (t Type) WithWidth(w Width) Type {
	t.Width = w
	return t
}

func (t Type) String() string {
	if t.Base == nil {
		return "<untyped>"
	}
	return t.Base.String()
}
