package ir

import "github.com/dannys-code-corner/incan/checktypes"

// Decl is implemented by every lowered top-level declaration.
type Decl interface {
	irDeclNode()
}

// Param is one lowered function parameter.
type Param struct {
	Name    string
	Typ     Type
	Default Expr // nil if the parameter has no default
}

// FuncDecl is a lowered function or method. Receiver is non-nil for a
// method; methods adopted from a trait's default body are copied in here by
// inheritance flattening, so the emitter never has to look a method up
// through a base-class chain at emission time.
type FuncDecl struct {
	Name     string
	Async    bool
	Receiver *Param
	Params   []Param
	Result   Type
	Body     []Stmt
}

func (*FuncDecl) irDeclNode() {}

// Field is one lowered, typed model/class field.
type Field struct {
	Name string
	Typ  Type
}

// ModelDecl is a lowered `model`: a plain data record with only derived
// behavior.
type ModelDecl struct {
	Name    string
	Pub     bool
	Fields  []Field
	Derives []string
}

func (*ModelDecl) irDeclNode() {}

// ClassDecl is a lowered `class`, after inheritance flattening: Fields and
// Methods already include every inherited field and every trait-provided
// method the class did not itself override, so the emitter needs no base
// reference at all. BaseName records the single inherited class (empty if
// none) for informational/debug output only.
type ClassDecl struct {
	Name     string
	Pub      bool
	BaseName string
	Fields   []Field
	Methods  []*FuncDecl
	Derives  []string
}

func (*ClassDecl) irDeclNode() {}

// TraitImplDecl records that a class adopted a trait and which of the
// trait's methods it satisfies via the trait's own default body (as opposed
// to a method the class defines itself); the emitter uses this to decide
// whether to emit a target-language trait-impl block in addition to the
// class's inherent methods.
type TraitImplDecl struct {
	ClassName string
	TraitName string
	Methods   []string
}

func (*TraitImplDecl) irDeclNode() {}

// EnumVariant is one lowered variant of an enum declaration.
type EnumVariant struct {
	Name    string
	Payload []Type
}

// EnumDecl is a lowered `enum`.
type EnumDecl struct {
	Name     string
	Pub      bool
	Variants []EnumVariant
	Derives  []string
}

func (*EnumDecl) irDeclNode() {}

// NewtypeDecl is a lowered `newtype`.
type NewtypeDecl struct {
	Name       string
	Pub        bool
	Underlying Type
	Derives    []string
}

func (*NewtypeDecl) irDeclNode() {}

// FrozenBacking is the compile-time-constant representation lowering
// computes for a const whose declared type is a container or string: the
// const's value is folded once, here, rather than re-evaluated by the
// emitted program at every use.
type FrozenBacking struct {
	Typ   checktypes.Type
	Value Expr
}

// ConstDecl is a lowered `const`. Backing is non-nil when the const's type
// needed frozen (deep-immutable) representation; for a plain numeric/bool
// const it is nil and Value is emitted directly.
type ConstDecl struct {
	Name    string
	Pub     bool
	Typ     Type
	Value   Expr
	Backing *FrozenBacking
}

func (*ConstDecl) irDeclNode() {}

// Import is a lowered import: Path is the resolved module path, Alias the
// binding name in scope, and External marks a `rust::`-prefixed
// external-crate import that the project generator must also add to the
// manifest's dependency table.
type Import struct {
	Path     string
	Alias    string
	External bool
}

func (*Import) irDeclNode() {}
