package ast

// TypeExpr is the syntactic representation of a type annotation; the
// checker (package check) resolves these into checktypes.Type values.
type TypeExpr interface {
	Node
	typeNode()
}

// NamedType is a bare or generic named type: `int`, `List[T]`, `MyModel`.
type NamedType struct {
	compositeNode
	Name string
	Args []TypeExpr // generic arguments, possibly empty
}

func NewNamedType(name *IdentNode, args []TypeExpr, close Token) *NamedType {
	end := name.End()
	if close != 0 {
		end = close
	}
	return &NamedType{compositeNode: compositeNode{start: name.Start(), end: end}, Name: name.Name, Args: args}
}
func (*NamedType) typeNode() {}

// TupleType is `(T1, T2, ...)` used as a type.
type TupleType struct {
	compositeNode
	Elems []TypeExpr
}

func NewTupleType(open Token, elems []TypeExpr, close Token) *TupleType {
	return &TupleType{compositeNode: compositeNode{start: open, end: close}, Elems: elems}
}
func (*TupleType) typeNode() {}

// FuncType is `(T1, T2) -> R`, optionally `async (T1) -> R`.
type FuncType struct {
	compositeNode
	Async   bool
	Params  []TypeExpr
	Result  TypeExpr
}

func NewFuncType(start Token, async bool, params []TypeExpr, result TypeExpr) *FuncType {
	return &FuncType{compositeNode: compositeNode{start: start, end: result.End()}, Async: async, Params: params, Result: result}
}
func (*FuncType) typeNode() {}

// UnitType is the surface spelling `None` used in a return-type position.
type UnitType struct {
	compositeNode
}

func NewUnitType(tok Token) *UnitType {
	return &UnitType{compositeNode: compositeNode{start: tok, end: tok}}
}
func (*UnitType) typeNode() {}
