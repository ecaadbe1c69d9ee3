// Package checktypes defines the type language used by the typechecker:
// ground types, containers, sums, records, newtypes, function types, and the
// frozen variants used in const contexts. Every type is immutable once
// constructed and comparable by value where the underlying Go type permits
// it, so the checker can use types directly as map keys and cache entries.
package checktypes

import (
	"fmt"
	"strings"
)

// Type is implemented by every member of the checker's type language. It is
// a closed set — typeNode is unexported so no package outside checktypes can
// introduce a new kind of Type — matching the closed surface-grammar node
// interfaces in package ast.
type Type interface {
	fmt.Stringer
	typeNode()
}

// Ground is one of the checker's primitive scalar types.
type Ground int

const (
	Int Ground = iota
	Float
	Bool
	Str
	Bytes
	Unit
)

func (g Ground) String() string {
	switch g {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Bytes:
		return "bytes"
	case Unit:
		return "unit"
	default:
		return "<invalid ground type>"
	}
}
func (Ground) typeNode() {}

// List is `List[T]`.
type List struct{ Elem Type }

func (l *List) String() string { return "List[" + l.Elem.String() + "]" }
func (*List) typeNode()        {}

// Dict is `Dict[K,V]`.
type Dict struct{ Key, Value Type }

func (d *Dict) String() string { return "Dict[" + d.Key.String() + "," + d.Value.String() + "]" }
func (*Dict) typeNode()        {}

// Set is `Set[T]`.
type Set struct{ Elem Type }

func (s *Set) String() string { return "Set[" + s.Elem.String() + "]" }
func (*Set) typeNode()        {}

// Tuple is `Tuple[T1,...,Tn]`.
type Tuple struct{ Elems []Type }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "Tuple[" + strings.Join(parts, ",") + "]"
}
func (*Tuple) typeNode() {}

// Option is `Option[T]`, the builtin sum type for an optional value.
type Option struct{ Elem Type }

func (o *Option) String() string { return "Option[" + o.Elem.String() + "]" }
func (*Option) typeNode()        {}

// Result is `Result[T,E]`, the builtin sum type for a fallible value.
type Result struct{ Ok, Err Type }

func (r *Result) String() string { return "Result[" + r.Ok.String() + "," + r.Err.String() + "]" }
func (*Result) typeNode()        {}

// Enum is a user-declared sum type with named variants, each carrying zero
// or more payload types.
type Enum struct {
	Name     string
	Variants []EnumVariant
}

// EnumVariant is one constructor of an Enum.
type EnumVariant struct {
	Name    string
	Payload []Type
}

func (e *Enum) String() string { return e.Name }
func (*Enum) typeNode()        {}

// Field is one named, typed member of a Record.
type Field struct {
	Name string
	Type Type
}

// Record is a user model or class: a named, field-carrying type. Methods
// live on the symbol table entry for the type, not here; Bases holds the
// inherited parent record (at most one), which field lookup walks.
type Record struct {
	Name    string
	Fields  []Field
	IsClass bool // false for a `model`, true for a `class`
	IsTrait bool // true for a trait's placeholder type-namespace entry
	Bases   []*Record
}

func (r *Record) String() string { return r.Name }
func (*Record) typeNode()        {}

// Newtype is a nominally distinct wrapper over a single underlying type:
// `newtype UserID = int` produces a Newtype whose Underlying is Int, and
// which is never implicitly convertible to or from Int.
type Newtype struct {
	Name       string
	Underlying Type
}

func (n *Newtype) String() string { return n.Name }
func (*Newtype) typeNode()        {}

// Func is a function type: `(T1,...,Tn) -> R`, optionally async.
type Func struct {
	Params []Type
	Result Type
	Async  bool
}

func (f *Func) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if f.Async {
		prefix = "async "
	}
	return fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(parts, ","), f.Result.String())
}
func (*Func) typeNode() {}

// Frozen wraps a container or string type to mark it as deep-immutable,
// usable in const contexts. Source annotations name them through the
// FrozenStr, FrozenBytes, FrozenList, FrozenDict and FrozenSet type names,
// which the checker resolves to a Frozen.
type Frozen struct{ Elem Type }

func (f *Frozen) String() string { return "Frozen" + f.Elem.String() }
func (*Frozen) typeNode()        {}

// Equal reports whether two types denote the same type. Record and Enum
// types compare by name (structural identity is established once, at
// declaration time, by the symbol table), everything else compares
// structurally.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case Ground:
		b, ok := b.(Ground)
		return ok && a == b
	case *List:
		b, ok := b.(*List)
		return ok && Equal(a.Elem, b.Elem)
	case *Dict:
		b, ok := b.(*Dict)
		return ok && Equal(a.Key, b.Key) && Equal(a.Value, b.Value)
	case *Set:
		b, ok := b.(*Set)
		return ok && Equal(a.Elem, b.Elem)
	case *Tuple:
		b, ok := b.(*Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *Option:
		b, ok := b.(*Option)
		return ok && Equal(a.Elem, b.Elem)
	case *Result:
		b, ok := b.(*Result)
		return ok && Equal(a.Ok, b.Ok) && Equal(a.Err, b.Err)
	case *Enum:
		b, ok := b.(*Enum)
		return ok && a.Name == b.Name
	case *Record:
		b, ok := b.(*Record)
		return ok && a.Name == b.Name
	case *Newtype:
		b, ok := b.(*Newtype)
		return ok && a.Name == b.Name
	case *Func:
		b, ok := b.(*Func)
		if !ok || a.Async != b.Async || len(a.Params) != len(b.Params) || !Equal(a.Result, b.Result) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case *Frozen:
		b, ok := b.(*Frozen)
		return ok && Equal(a.Elem, b.Elem)
	default:
		return false
	}
}

// IsNumeric reports whether t is int or float, the two types eligible for
// the checker's limited, explicit numeric promotion.
func IsNumeric(t Type) bool {
	g, ok := t.(Ground)
	return ok && (g == Int || g == Float)
}
