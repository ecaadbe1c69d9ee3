// Package symbols implements the lexically-scoped name environment used by
// the typechecker: a stack of scopes, each mapping a name to a Entry
// describing what that name denotes (a value, a function, a type, an enum
// variant, or a module alias).
package symbols

import (
	"github.com/tidwall/btree"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
)

// Kind classifies what an Entry denotes.
type Kind int

const (
	Value Kind = iota
	Function
	TypeName
	Variant
	ModuleAlias
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Function:
		return "function"
	case TypeName:
		return "type"
	case Variant:
		return "enum variant"
	case ModuleAlias:
		return "module"
	default:
		return "symbol"
	}
}

// Entry is one binding in a scope.
type Entry struct {
	Kind    Kind
	Name    string
	Type    checktypes.Type
	Mutable bool
	Origin  ast.SourcePos

	// AliasOf is set for a ModuleAlias entry created by `import x as y`, or
	// by a plain `import x`: it names the module whose top-level scope this
	// alias resolves into. For an External entry it is the dotted crate
	// path as written (`rust::serde_json` -> "rust.serde_json"), which
	// never resolves to a collected module.
	AliasOf string

	// External marks a `rust::crate[::...]` import: a dependency the
	// project generator must add to the manifest rather than a module the
	// resolver discovered on disk.
	External bool
}

// Scope is one lexical block's name table: a model/class/trait body, a
// function body, a comprehension, or a module's top level. Scopes nest in a
// stack (see Table), and lookup walks outward from the innermost one.
//
// Names are kept in a btree.Map rather than a plain Go map so that any pass
// which needs to enumerate a scope's contents (diagnostics listing "did you
// mean" candidates, or a future pretty-printer of the symbol table) gets a
// stable, insertion-order-irrelevant iteration order instead of Go's
// randomized map order.
type Scope struct {
	entries btree.Map[string, Entry]
}

// Declare adds name to the scope. If name is already bound in this scope, it
// reports a duplicate-definition diagnostic through handler and does not
// overwrite the existing entry.
func (s *Scope) Declare(entry Entry, handler *reporter.Handler) error {
	if existing, ok := s.entries.Get(entry.Name); ok {
		return handler.HandleDiagnostic(reporter.Type, entry.Origin,
			duplicateDefinitionError{name: entry.Name, prior: existing.Origin},
			[]reporter.Related{{Pos: existing.Origin, Message: "first defined here"}})
	}
	s.entries.Set(entry.Name, entry)
	return nil
}

// Lookup finds name directly in this scope, without consulting any parent.
func (s *Scope) Lookup(name string) (Entry, bool) {
	return s.entries.Get(name)
}

// Table is a stack of Scopes: push one per block (module top level, function
// body, if/while/for body, comprehension, class/trait body), pop it on exit.
// Lookup searches from the innermost scope outward, matching spec's purely
// lexical name resolution.
type Table struct {
	scopes []*Scope
}

// NewTable creates a Table with a single, empty module-level scope.
func NewTable() *Table {
	return &Table{scopes: []*Scope{{}}}
}

// Push opens a new, empty scope nested inside the current one.
func (t *Table) Push() {
	t.scopes = append(t.scopes, &Scope{})
}

// Pop closes the innermost scope. It panics if called with only the
// module-level scope remaining, since that would unbalance Push/Pop.
func (t *Table) Pop() {
	if len(t.scopes) <= 1 {
		panic("symbols: Pop called with no scope to pop")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Current returns the innermost scope, for direct declaration.
func (t *Table) Current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// Module returns the outermost (module-level) scope.
func (t *Table) Module() *Scope {
	return t.scopes[0]
}

// Declare adds entry to the innermost scope.
func (t *Table) Declare(entry Entry, handler *reporter.Handler) error {
	return t.Current().Declare(entry, handler)
}

// Lookup searches from the innermost scope outward and returns the first
// match.
func (t *Table) Lookup(name string) (Entry, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e, ok := t.scopes[i].Lookup(name); ok {
			return e, true
		}
	}
	return Entry{}, false
}

type duplicateDefinitionError struct {
	name  string
	prior ast.SourcePos
}

func (e duplicateDefinitionError) Error() string {
	return "duplicate definition of " + e.name + "; already defined at " + e.prior.String()
}
