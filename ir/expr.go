package ir

// Expr is implemented by every lowered expression node. Unlike ast.Expr,
// each node here already carries the type and ownership decisions checking
// and lowering settled on; the emitter reads them directly instead of
// consulting a side table.
type Expr interface {
	Type() Type
	irExprNode()
}

// IntLit, FloatLit, BoolLit, StrLit, BytesLit are literal values; their Typ
// field carries the target numeric width lowering chose, where applicable.
type IntLit struct {
	Value int64
	Typ   Type
}

func (l *IntLit) Type() Type { return l.Typ }
func (*IntLit) irExprNode()  {}

type FloatLit struct {
	Value float64
	Typ   Type
}

func (l *FloatLit) Type() Type { return l.Typ }
func (*FloatLit) irExprNode()  {}

type BoolLit struct {
	Value bool
	Typ   Type
}

func (l *BoolLit) Type() Type { return l.Typ }
func (*BoolLit) irExprNode()  {}

// StrLit's Typ.Ownership records whether the lowered string needs to own its
// bytes (interpolated or mutated downstream) or can be emitted as a borrowed
// string-literal reference.
type StrLit struct {
	Value string
	Typ   Type
}

func (l *StrLit) Type() Type { return l.Typ }
func (*StrLit) irExprNode()  {}

type BytesLit struct {
	Value []byte
	Typ   Type
}

func (l *BytesLit) Type() Type { return l.Typ }
func (*BytesLit) irExprNode()  {}

// BinaryExpr is `lhs op rhs`.
type BinaryExpr struct {
	Left, Right Expr
	Op          string
	Typ         Type
}

func (e *BinaryExpr) Type() Type { return e.Typ }
func (*BinaryExpr) irExprNode()  {}

// UnaryExpr is a prefix operator applied to Operand.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Typ     Type
}

func (e *UnaryExpr) Type() Type { return e.Typ }
func (*UnaryExpr) irExprNode()  {}

// VarRef is a reference to a binding, parameter, or receiver. Its
// Typ.Ownership is the ownership lowering decided for THIS use: the same
// variable can appear Borrowed at one call site and Owned (moved) at the
// last use in its scope.
type VarRef struct {
	Name string
	Typ  Type
}

func (e *VarRef) Type() Type { return e.Typ }
func (*VarRef) irExprNode()  {}

// ListExpr is a `[e1, e2, ...]` literal.
type ListExpr struct {
	Elems []Expr
	Typ   Type
}

func (e *ListExpr) Type() Type { return e.Typ }
func (*ListExpr) irExprNode()  {}

// SetExpr is a `{e1, e2, ...}` literal.
type SetExpr struct {
	Elems []Expr
	Typ   Type
}

func (e *SetExpr) Type() Type { return e.Typ }
func (*SetExpr) irExprNode()  {}

// DictEntry is one `key: value` pair of a lowered dict literal.
type DictEntry struct {
	Key, Value Expr
}

// DictExpr is a `{k1: v1, ...}` literal.
type DictExpr struct {
	Entries []DictEntry
	Typ     Type
}

func (e *DictExpr) Type() Type { return e.Typ }
func (*DictExpr) irExprNode()  {}

// TupleExpr is a `(e1, e2, ...)` literal.
type TupleExpr struct {
	Elems []Expr
	Typ   Type
}

func (e *TupleExpr) Type() Type { return e.Typ }
func (*TupleExpr) irExprNode()  {}

// CallKind distinguishes a call to a fixed builtin function from an
// ordinary call to a user-declared function.
type CallKind int

const (
	CallUser CallKind = iota
	CallBuiltin
)

// CallExpr is a free function call, tagged with which dispatch path the
// emitter should take.
type CallExpr struct {
	Kind    CallKind
	Builtin BuiltinFn // meaningful only when Kind == CallBuiltin
	Callee  string    // user function name; empty for a builtin call
	Args    []Expr
	Typ     Type
}

func (e *CallExpr) Type() Type { return e.Typ }
func (*CallExpr) irExprNode()  {}

// MethodCallExpr is `receiver.method(args)`, tagged with the receiver's
// builtin family (if any) so the emitter can dispatch to a hand-written
// implementation instead of a vtable lookup that does not exist on the
// target side for builtin types.
type MethodCallExpr struct {
	Receiver Expr
	Method   string
	Kind     MethodKind
	Args     []Expr
	Typ      Type
}

func (e *MethodCallExpr) Type() Type { return e.Typ }
func (*MethodCallExpr) irExprNode()  {}

// FieldInit is one `name: value` field initializer in a struct or enum
// variant construction.
type FieldInit struct {
	Name  string
	Value Expr
}

// ConstructExpr builds a model/class instance (Variant == "") or an enum
// variant (Variant holds the variant name) from named field initializers.
type ConstructExpr struct {
	TypeName string
	Variant  string
	Fields   []FieldInit
	Typ      Type
}

func (e *ConstructExpr) Type() Type { return e.Typ }
func (*ConstructExpr) irExprNode()  {}

// FieldAccessExpr is `recv.field`.
type FieldAccessExpr struct {
	Receiver Expr
	Field    string
	Typ      Type
}

func (e *FieldAccessExpr) Type() Type { return e.Typ }
func (*FieldAccessExpr) irExprNode()  {}

// BoundsPolicy records the runtime check an index or slice operation needs:
// negative indices normalize against the receiver's length, and an
// out-of-range index panics with the target's IndexError-equivalent.
type BoundsPolicy int

const (
	// BoundsChecked is an ordinary non-negative index: the emitter still
	// emits a length comparison, since an access past the end must panic
	// with the spec's IndexError message rather than the target
	// language's own (differently worded) panic.
	BoundsChecked BoundsPolicy = iota
	// BoundsNegativeNormalized is an index known, from a literal or a
	// provably-non-positive expression, to need `len + index` normalization
	// before the bounds check.
	BoundsNegativeNormalized
)

// IndexExpr is `recv[index]`.
type IndexExpr struct {
	Receiver Expr
	Index    Expr
	Policy   BoundsPolicy
	Typ      Type
}

func (e *IndexExpr) Type() Type { return e.Typ }
func (*IndexExpr) irExprNode()  {}

// SliceExpr is `recv[low:high:step]`; any of Low, High may be nil (meaning
// "from the start" / "to the end"). StepChecked is true when Step is not a
// provably-nonzero literal, requiring a runtime zero-step panic check.
type SliceExpr struct {
	Receiver    Expr
	Low, High   Expr
	Step        Expr // nil for an implicit step of 1
	StepChecked bool
	Typ         Type
}

func (e *SliceExpr) Type() Type { return e.Typ }
func (*SliceExpr) irExprNode()  {}

// MatchArm is one lowered arm: a pattern-tested guard expression (nil if the
// arm has no `if` guard) plus the expression the arm evaluates to.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr
	Body    []Stmt
	Result  Expr // set instead of Body when the source used the `=>` shorthand
}

// MatchExpr is the expression form of `match`.
type MatchExpr struct {
	Scrutinee Expr
	Arms      []MatchArm
	Typ       Type
}

func (e *MatchExpr) Type() Type { return e.Typ }
func (*MatchExpr) irExprNode()  {}

// IfExpr is `then if cond else els`.
type IfExpr struct {
	Cond, Then, Else Expr
	Typ              Type
}

func (e *IfExpr) Type() Type { return e.Typ }
func (*IfExpr) irExprNode()  {}

// AwaitExpr suspends until Operand, an async call, resolves.
type AwaitExpr struct {
	Operand Expr
	Typ     Type
}

func (e *AwaitExpr) Type() Type { return e.Typ }
func (*AwaitExpr) irExprNode()  {}

// PropagateErrorExpr is the lowered form of the postfix `?` operator: on an
// Err/None, return early from the enclosing function with the same variant;
// on Ok/Some, evaluate to the wrapped value.
type PropagateErrorExpr struct {
	Operand Expr
	Typ     Type
}

func (e *PropagateErrorExpr) Type() Type { return e.Typ }
func (*PropagateErrorExpr) irExprNode()  {}

// FormatFragment is one piece of a lowered format string: a literal
// fragment, or an expression fragment with its resolved format spec.
type FormatFragment struct {
	Literal    string
	IsExpr     bool
	Value      Expr
	FormatSpec string
	Debug      bool
}

// FormatExpr is the lowered form of an f-string: a sequence of fragments the
// emitter joins with the target's string-building facility.
type FormatExpr struct {
	Fragments []FormatFragment
	Typ       Type
}

func (e *FormatExpr) Type() Type { return e.Typ }
func (*FormatExpr) irExprNode()  {}

// ClosureParam is one parameter of a lowered closure.
type ClosureParam struct {
	Name string
	Typ  Type
}

// ClosureExpr is a lowered arrow closure; Captures lists the outer bindings
// the body references, so the emitter can decide move-vs-borrow capture per
// variable.
type ClosureExpr struct {
	Params   []ClosureParam
	Body     Expr
	Captures []string
	Typ      Type
}

func (e *ClosureExpr) Type() Type { return e.Typ }
func (*ClosureExpr) irExprNode()  {}

// RangeExpr is `low..high` or `low..=high`.
type RangeExpr struct {
	Low, High Expr
	Inclusive bool
	Typ       Type
}

func (e *RangeExpr) Type() Type { return e.Typ }
func (*RangeExpr) irExprNode()  {}

// ComprehensionExpr is the lowered form of a list/set/dict comprehension: an
// iterator-chain expression over Iter, binding Var, optionally filtered by
// Cond, producing Elem (list/set) or Key/Val (dict). Lowering does not
// eagerly materialize the container; the emitter decides, per target,
// whether the iterator chain stays lazy or collects.
type ComprehensionKind int

const (
	ComprehensionList ComprehensionKind = iota
	ComprehensionSet
	ComprehensionDict
)

type ComprehensionExpr struct {
	Kind     ComprehensionKind
	Var      string
	Iter     Expr
	Cond     Expr
	Elem     Expr
	KeyElem  Expr
	ValElem  Expr
	Typ      Type
}

func (e *ComprehensionExpr) Type() Type { return e.Typ }
func (*ComprehensionExpr) irExprNode()  {}
