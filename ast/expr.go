package ast

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// compositeNode is the embeddable base for every non-leaf node: it stores
// the first and last token of the node's span and hands back whatever
// children the concrete node type wants to expose.
type compositeNode struct {
	start, end Token
}

func (c compositeNode) Start() Token { return c.start }
func (c compositeNode) End() Token   { return c.end }

func span(first, last Node) compositeNode {
	return compositeNode{start: first.Start(), end: last.End()}
}

// BinaryExpr is `lhs op rhs`, e.g. `a + b`, `a and b`, `a == b`.
type BinaryExpr struct {
	compositeNode
	Left, Right Expr
	Op          string
	OpToken     Token
}

func NewBinaryExpr(left Expr, op string, opTok Token, right Expr) *BinaryExpr {
	return &BinaryExpr{compositeNode: span(left, right), Left: left, Right: right, Op: op, OpToken: opTok}
}
func (*BinaryExpr) exprNode() {}

// UnaryExpr is a prefix operator applied to an operand: `-x`, `not x`.
type UnaryExpr struct {
	compositeNode
	Op      string
	OpToken Token
	Operand Expr
}

func NewUnaryExpr(op string, opTok Token, operand Expr) *UnaryExpr {
	return &UnaryExpr{compositeNode: compositeNode{start: opTok, end: operand.End()}, Op: op, OpToken: opTok, Operand: operand}
}
func (*UnaryExpr) exprNode() {}

// CallExpr is a free function call: `name(args...)`.
type CallExpr struct {
	compositeNode
	Func      Expr
	Args      []Expr
	KwArgs    []KwArg
	CloseParen Token
}

// KwArg is a `name: value` keyword argument in a call.
type KwArg struct {
	Name  *IdentNode
	Value Expr
}

func NewCallExpr(fn Expr, args []Expr, kwargs []KwArg, closeParen Token) *CallExpr {
	return &CallExpr{compositeNode: compositeNode{start: fn.Start(), end: closeParen}, Func: fn, Args: args, KwArgs: kwargs, CloseParen: closeParen}
}
func (*CallExpr) exprNode() {}

// MethodCallExpr is `receiver.method(args...)`.
type MethodCallExpr struct {
	compositeNode
	Receiver   Expr
	Method     *IdentNode
	Args       []Expr
	KwArgs     []KwArg
	CloseParen Token
}

func NewMethodCallExpr(recv Expr, method *IdentNode, args []Expr, kwargs []KwArg, closeParen Token) *MethodCallExpr {
	return &MethodCallExpr{compositeNode: compositeNode{start: recv.Start(), end: closeParen}, Receiver: recv, Method: method, Args: args, KwArgs: kwargs, CloseParen: closeParen}
}
func (*MethodCallExpr) exprNode() {}

// IndexExpr is `recv[index]`.
type IndexExpr struct {
	compositeNode
	Receiver Expr
	Index    Expr
}

func NewIndexExpr(recv Expr, index Expr, closeBracket Token) *IndexExpr {
	return &IndexExpr{compositeNode: compositeNode{start: recv.Start(), end: closeBracket}, Receiver: recv, Index: index}
}
func (*IndexExpr) exprNode() {}

// SliceExpr is `recv[low:high:step]`; any of Low, High, Step may be nil.
type SliceExpr struct {
	compositeNode
	Receiver         Expr
	Low, High, Step  Expr
}

func NewSliceExpr(recv Expr, low, high, step Expr, closeBracket Token) *SliceExpr {
	return &SliceExpr{compositeNode: compositeNode{start: recv.Start(), end: closeBracket}, Receiver: recv, Low: low, High: high, Step: step}
}
func (*SliceExpr) exprNode() {}

// FieldAccessExpr is `recv.field`.
type FieldAccessExpr struct {
	compositeNode
	Receiver Expr
	Field    *IdentNode
}

func NewFieldAccessExpr(recv Expr, field *IdentNode) *FieldAccessExpr {
	return &FieldAccessExpr{compositeNode: compositeNode{start: recv.Start(), end: field.End()}, Receiver: recv, Field: field}
}
func (*FieldAccessExpr) exprNode() {}

// AwaitExpr is `await expr`; only legal inside an async function body.
type AwaitExpr struct {
	compositeNode
	Operand Expr
}

func NewAwaitExpr(kw Token, operand Expr) *AwaitExpr {
	return &AwaitExpr{compositeNode: compositeNode{start: kw, end: operand.End()}, Operand: operand}
}
func (*AwaitExpr) exprNode() {}

// TryExpr is the postfix `expr?` error-propagation operator.
type TryExpr struct {
	compositeNode
	Operand Expr
}

func NewTryExpr(operand Expr, question Token) *TryExpr {
	return &TryExpr{compositeNode: compositeNode{start: operand.Start(), end: question}, Operand: operand}
}
func (*TryExpr) exprNode() {}

// IfExpr is the expression form `a if cond else b`.
type IfExpr struct {
	compositeNode
	Cond, Then, Else Expr
}

func NewIfExpr(then Expr, cond Expr, els Expr) *IfExpr {
	return &IfExpr{compositeNode: compositeNode{start: then.Start(), end: els.End()}, Cond: cond, Then: then, Else: els}
}
func (*IfExpr) exprNode() {}

// MatchExpr matches a scrutinee against a list of arms, each of which binds
// a pattern to either a block or a single expression.
type MatchExpr struct {
	compositeNode
	Scrutinee Expr
	Arms      []*MatchArm
}

func NewMatchExpr(kw Token, scrutinee Expr, arms []*MatchArm, end Token) *MatchExpr {
	return &MatchExpr{compositeNode: compositeNode{start: kw, end: end}, Scrutinee: scrutinee, Arms: arms}
}
func (*MatchExpr) exprNode() {}

// MatchArm is one `case pattern:` or `pattern => expr` arm of a match.
type MatchArm struct {
	compositeNode
	Pattern Pattern
	Guard   Expr // optional `if cond`
	Body    []Stmt
	Expr    Expr // set instead of Body for the `=>` shorthand
}

func NewMatchArm(pattern Pattern, guard Expr, body []Stmt, bodyExpr Expr, end Token) *MatchArm {
	return &MatchArm{compositeNode: compositeNode{start: pattern.Start(), end: end}, Pattern: pattern, Guard: guard, Body: body, Expr: bodyExpr}
}

// ListExpr is a `[e1, e2, ...]` literal.
type ListExpr struct {
	compositeNode
	Elems []Expr
}

func NewListExpr(open Token, elems []Expr, close Token) *ListExpr {
	return &ListExpr{compositeNode: compositeNode{start: open, end: close}, Elems: elems}
}
func (*ListExpr) exprNode() {}

// SetExpr is a `{e1, e2, ...}` literal.
type SetExpr struct {
	compositeNode
	Elems []Expr
}

func NewSetExpr(open Token, elems []Expr, close Token) *SetExpr {
	return &SetExpr{compositeNode: compositeNode{start: open, end: close}, Elems: elems}
}
func (*SetExpr) exprNode() {}

// DictEntry is one `key: value` pair of a dict literal.
type DictEntry struct {
	Key, Value Expr
}

// DictExpr is a `{k1: v1, k2: v2, ...}` literal.
type DictExpr struct {
	compositeNode
	Entries []DictEntry
}

func NewDictExpr(open Token, entries []DictEntry, close Token) *DictExpr {
	return &DictExpr{compositeNode: compositeNode{start: open, end: close}, Entries: entries}
}
func (*DictExpr) exprNode() {}

// TupleExpr is a `(e1, e2, ...)` literal (at least two elements; a single
// parenthesized expression is not a tuple).
type TupleExpr struct {
	compositeNode
	Elems []Expr
}

func NewTupleExpr(open Token, elems []Expr, close Token) *TupleExpr {
	return &TupleExpr{compositeNode: compositeNode{start: open, end: close}, Elems: elems}
}
func (*TupleExpr) exprNode() {}

// RangeExpr is `lo..hi` or the inclusive `lo..=hi`.
type RangeExpr struct {
	compositeNode
	Low, High Expr
	Inclusive bool
}

func NewRangeExpr(low Expr, inclusive bool, high Expr) *RangeExpr {
	start := Token(0)
	if low != nil {
		start = low.Start()
	} else {
		start = high.Start()
	}
	end := Token(0)
	if high != nil {
		end = high.End()
	} else {
		end = low.End()
	}
	return &RangeExpr{compositeNode: compositeNode{start: start, end: end}, Low: low, High: high, Inclusive: inclusive}
}
func (*RangeExpr) exprNode() {}

// ArrowClosureExpr is `(params) => expr`.
type ArrowClosureExpr struct {
	compositeNode
	Params []*Param
	Body   Expr
}

func NewArrowClosureExpr(open Token, params []*Param, body Expr) *ArrowClosureExpr {
	return &ArrowClosureExpr{compositeNode: compositeNode{start: open, end: body.End()}, Params: params, Body: body}
}
func (*ArrowClosureExpr) exprNode() {}

// ComprehensionExpr is `[expr for name in iter if cond]` (list form) or the
// dict/set analogues; Kind distinguishes which container is produced.
type ComprehensionKind int

const (
	ListComprehension ComprehensionKind = iota
	SetComprehension
	DictComprehension
)

type ComprehensionExpr struct {
	compositeNode
	Kind    ComprehensionKind
	Elem    Expr // for list/set; unused for dict
	KeyElem Expr // for dict comprehensions
	ValElem Expr // for dict comprehensions
	Var     *IdentNode
	Iter    Expr
	Cond    Expr // optional filter
}

func NewComprehensionExpr(kind ComprehensionKind, open Token, elem, key, val Expr, v *IdentNode, iter Expr, cond Expr, close Token) *ComprehensionExpr {
	return &ComprehensionExpr{
		compositeNode: compositeNode{start: open, end: close},
		Kind:          kind, Elem: elem, KeyElem: key, ValElem: val,
		Var: v, Iter: iter, Cond: cond,
	}
}
func (*ComprehensionExpr) exprNode() {}

// FStringFragment is either a literal text fragment or an embedded
// expression (with an optional format spec, e.g. `{x:.2f}`).
type FStringFragment struct {
	Literal    string
	IsExpr     bool
	Expr       Expr
	FormatSpec string
	Debug      bool // true for `{x:?}`
}

// FStringExpr is an `f"..."` literal, lowered from alternating literal and
// expression fragments produced by the lexer.
type FStringExpr struct {
	compositeNode
	Fragments []FStringFragment
}

func NewFStringExpr(open Token, fragments []FStringFragment, close Token) *FStringExpr {
	return &FStringExpr{compositeNode: compositeNode{start: open, end: close}, Fragments: fragments}
}
func (*FStringExpr) exprNode() {}

// StructFieldInit is a `name: value` field initializer.
type StructFieldInit struct {
	Name  *IdentNode
	Value Expr
}

// StructConstructorExpr is `TypeName { field: value, ... }`.
type StructConstructorExpr struct {
	compositeNode
	TypeName *IdentNode
	Fields   []StructFieldInit
}

func NewStructConstructorExpr(typeName *IdentNode, fields []StructFieldInit, close Token) *StructConstructorExpr {
	return &StructConstructorExpr{compositeNode: compositeNode{start: typeName.Start(), end: close}, TypeName: typeName, Fields: fields}
}
func (*StructConstructorExpr) exprNode() {}
