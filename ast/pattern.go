package ast

// Pattern is implemented by every match-arm pattern node (§4.2).
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is the catch-all `_` pattern.
type WildcardPattern struct {
	compositeNode
}

func NewWildcardPattern(tok Token) *WildcardPattern {
	return &WildcardPattern{compositeNode: compositeNode{start: tok, end: tok}}
}
func (*WildcardPattern) patternNode() {}

// BindingPattern binds the scrutinee (or, nested, a sub-value) to a name:
// `x`.
type BindingPattern struct {
	compositeNode
	Name string
}

func NewBindingPattern(name *IdentNode) *BindingPattern {
	return &BindingPattern{compositeNode: compositeNode{start: name.Start(), end: name.End()}, Name: name.Name}
}
func (*BindingPattern) patternNode() {}

// LiteralPattern matches an exact literal value: `0`, `"x"`, `true`.
type LiteralPattern struct {
	compositeNode
	Value Expr // one of the literal Expr node kinds
}

func NewLiteralPattern(v Expr) *LiteralPattern {
	return &LiteralPattern{compositeNode: compositeNode{start: v.Start(), end: v.End()}, Value: v}
}
func (*LiteralPattern) patternNode() {}

// VariantPattern matches an enum/Option/Result variant, optionally binding
// its payload fields: `Ok(p)`, `Some(x)`, `Err(e)`, `None`.
type VariantPattern struct {
	compositeNode
	Variant string
	Payload []Pattern // bound sub-patterns, in declared payload order
}

func NewVariantPattern(name *IdentNode, payload []Pattern, close Token) *VariantPattern {
	end := name.End()
	if close != 0 {
		end = close
	}
	return &VariantPattern{compositeNode: compositeNode{start: name.Start(), end: end}, Variant: name.Name, Payload: payload}
}
func (*VariantPattern) patternNode() {}

// TuplePattern destructures a tuple one level deep: `(a, b)`.
type TuplePattern struct {
	compositeNode
	Elems []Pattern
}

func NewTuplePattern(open Token, elems []Pattern, close Token) *TuplePattern {
	return &TuplePattern{compositeNode: compositeNode{start: open, end: close}, Elems: elems}
}
func (*TuplePattern) patternNode() {}
