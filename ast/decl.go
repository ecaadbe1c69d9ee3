package ast

// Decl is implemented by every top-level (and model/class-body) declaration.
type Decl interface {
	Node
	declNode()
}

// Param is one function parameter: `name: T` or `name: T = default`. For a
// method's receiver parameter (Name "self"), Mutable distinguishes `mut
// self` from plain `self`; it is otherwise unused since ordinary parameters
// take their mutability from the binding the call site passes.
type Param struct {
	Name    *IdentNode
	Type    TypeExpr
	Default Expr // nil if the parameter has no default
	Mutable bool
}

// FuncDecl is a `def name(params) -> ret: body` declaration, or its `async`
// counterpart.
type FuncDecl struct {
	compositeNode
	Decorators []*Decorator
	Async      bool
	Name       *IdentNode
	Params     []*Param
	Result     TypeExpr // nil if the function returns the unit type implicitly
	Body       []Stmt
	Receiver   *Param // non-nil when this is a method on a model/class/trait body
}

func NewFuncDecl(start Token, decorators []*Decorator, async bool, name *IdentNode, recv *Param, params []*Param, result TypeExpr, body []Stmt, end Token) *FuncDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &FuncDecl{
		compositeNode: compositeNode{start: start, end: end},
		Decorators:    decorators, Async: async, Name: name,
		Receiver: recv, Params: params, Result: result, Body: body,
	}
}
func (*FuncDecl) declNode() {}

// FieldDecl is one `name: T` field of a model or class body.
type FieldDecl struct {
	Name *IdentNode
	Type TypeExpr
}

// ModelDecl is a `model Name: field: T ...` declaration: a plain data record
// with no behavior other than derived trait implementations.
type ModelDecl struct {
	compositeNode
	Decorators []*Decorator
	Name       *IdentNode
	Fields     []FieldDecl
	Pub        bool
}

func NewModelDecl(start Token, decorators []*Decorator, name *IdentNode, fields []FieldDecl, end Token) *ModelDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &ModelDecl{compositeNode: compositeNode{start: start, end: end}, Decorators: decorators, Name: name, Fields: fields}
}
func (*ModelDecl) declNode() {}

// ClassDecl is a `class Name(Base1, Base2): ...` declaration: fields plus
// methods. Bases lists both the (at most one) inherited class and any
// adopted traits; the checker inherits from the first non-trait base only.
type ClassDecl struct {
	compositeNode
	Decorators []*Decorator
	Name       *IdentNode
	Bases      []*IdentNode
	Fields     []FieldDecl
	Methods    []*FuncDecl
	Pub        bool
}

func NewClassDecl(start Token, decorators []*Decorator, name *IdentNode, bases []*IdentNode, fields []FieldDecl, methods []*FuncDecl, end Token) *ClassDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &ClassDecl{compositeNode: compositeNode{start: start, end: end}, Decorators: decorators, Name: name, Bases: bases, Fields: fields, Methods: methods}
}
func (*ClassDecl) declNode() {}

// TraitMethod is one method signature (with optional default body) inside a
// trait declaration.
type TraitMethod struct {
	Name    *IdentNode
	Params  []*Param
	Result  TypeExpr
	Body    []Stmt // nil for a required, bodyless method
}

// TraitDecl is a `trait Name: ...` declaration, optionally carrying
// `@requires(field: Type)` field requirements its adopters must satisfy.
type TraitDecl struct {
	compositeNode
	Decorators []*Decorator
	Name       *IdentNode
	Requires   []FieldDecl // field requirements named by @requires decorators
	Methods    []TraitMethod
}

func NewTraitDecl(start Token, decorators []*Decorator, name *IdentNode, requires []FieldDecl, methods []TraitMethod, end Token) *TraitDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &TraitDecl{compositeNode: compositeNode{start: start, end: end}, Decorators: decorators, Name: name, Requires: requires, Methods: methods}
}
func (*TraitDecl) declNode() {}

// EnumVariant is one variant of an enum declaration; Payload is empty for a
// unit variant.
type EnumVariant struct {
	Name    *IdentNode
	Payload []TypeExpr
}

// EnumDecl is an `enum Name: Variant1 Variant2(T) ...` declaration.
type EnumDecl struct {
	compositeNode
	Decorators []*Decorator
	Name       *IdentNode
	Variants   []EnumVariant
	Pub        bool
}

func NewEnumDecl(start Token, decorators []*Decorator, name *IdentNode, variants []EnumVariant, end Token) *EnumDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &EnumDecl{compositeNode: compositeNode{start: start, end: end}, Decorators: decorators, Name: name, Variants: variants}
}
func (*EnumDecl) declNode() {}

// NewtypeDecl is a `newtype Name = T` declaration: a distinct nominal type
// wrapping a single underlying type with no implicit conversion.
type NewtypeDecl struct {
	compositeNode
	Decorators []*Decorator
	Name       *IdentNode
	Underlying TypeExpr
	Pub        bool
}

func NewNewtypeDecl(start Token, decorators []*Decorator, name *IdentNode, underlying TypeExpr) *NewtypeDecl {
	if len(decorators) > 0 {
		start = decorators[0].Start()
	}
	return &NewtypeDecl{compositeNode: compositeNode{start: start, end: underlying.End()}, Decorators: decorators, Name: name, Underlying: underlying}
}
func (*NewtypeDecl) declNode() {}

// ConstDecl is a `const NAME: T = expr` declaration.
type ConstDecl struct {
	compositeNode
	Name  *IdentNode
	Type  TypeExpr
	Value Expr
	Pub   bool
}

func NewConstDecl(kw Token, name *IdentNode, typ TypeExpr, value Expr) *ConstDecl {
	return &ConstDecl{compositeNode: compositeNode{start: kw, end: value.End()}, Name: name, Type: typ, Value: value}
}
func (*ConstDecl) declNode() {}

// TypeAliasDecl is a `type Name = T` declaration.
type TypeAliasDecl struct {
	compositeNode
	Name   *IdentNode
	Target TypeExpr
}

func NewTypeAliasDecl(kw Token, name *IdentNode, target TypeExpr) *TypeAliasDecl {
	return &TypeAliasDecl{compositeNode: compositeNode{start: kw, end: target.End()}, Name: name, Target: target}
}
func (*TypeAliasDecl) declNode() {}

// ImportDecl is an `import pkg.path` or `import pkg.path as alias`
// declaration.
type ImportDecl struct {
	compositeNode
	Path  []*IdentNode // dotted path segments
	Alias *IdentNode   // nil if no `as alias` clause
}

func NewImportDecl(kw Token, path []*IdentNode, alias *IdentNode) *ImportDecl {
	end := path[len(path)-1].End()
	if alias != nil {
		end = alias.End()
	}
	return &ImportDecl{compositeNode: compositeNode{start: kw, end: end}, Path: path, Alias: alias}
}
func (*ImportDecl) declNode() {}

// ImportedName is one `name [as alias]` item of a `from path import ...`
// declaration.
type ImportedName struct {
	Name  *IdentNode
	Alias *IdentNode // nil if no `as alias` clause
}

// ImportFromDecl is a `from path import a, b [as c]` declaration: the
// interoperating counterpart of ImportDecl (spec's two import styles share
// the same dotted-path grammar but this one binds one or more names out of
// the module directly into scope, rather than binding the module itself).
type ImportFromDecl struct {
	compositeNode
	Path  []*IdentNode // dotted path segments
	Names []ImportedName
}

func NewImportFromDecl(kw Token, path []*IdentNode, names []ImportedName, end Token) *ImportFromDecl {
	return &ImportFromDecl{compositeNode: compositeNode{start: kw, end: end}, Path: path, Names: names}
}
func (*ImportFromDecl) declNode() {}
