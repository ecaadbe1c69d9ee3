package ir

// Stmt is implemented by every lowered statement node.
type Stmt interface {
	irStmtNode()
}

// Conversion records a value conversion lowering inserted at an assignment
// or return boundary: a widening/narrowing numeric cast, a clone to satisfy
// an owned target from a borrowed source, or none at all.
type Conversion int

const (
	ConvertNone Conversion = iota
	ConvertNumeric          // int/float width or int<->float conversion
	ConvertClone            // borrowed source, owned target: clone
	ConvertMove             // owned source consumed by the target (last use)
)

// LetStmt introduces a new binding (the lowered form of both `let` and a
// fresh `name = e` that checking resolved as a new binding, per spec's
// mutability rules). Typ is the binding's declared type — the conversion
// target Conversion converts Value into, consulted by the emitter when
// Conversion is ConvertNumeric to pick the cast's destination width.
type LetStmt struct {
	Name       string
	Mutable    bool
	Value      Expr
	Conversion Conversion
	Typ        Type
}

func (*LetStmt) irStmtNode() {}

// ReassignStmt rebinds an existing `mut` binding.
type ReassignStmt struct {
	Name       string
	Value      Expr
	Conversion Conversion
	Typ        Type
}

func (*ReassignStmt) irStmtNode() {}

// ReturnStmt is `return [expr]`; Value is nil for a bare return from a
// unit-returning function. Typ is the enclosing function's declared result
// type.
type ReturnStmt struct {
	Value      Expr
	Conversion Conversion
	Typ        Type
}

func (*ReturnStmt) irStmtNode() {}

// IfStmt mirrors ast.IfStmt's elif-chaining shape after lowering.
type IfStmt struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
	Elif *IfStmt
}

func (*IfStmt) irStmtNode() {}

// WhileStmt is `while cond: body`.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (*WhileStmt) irStmtNode() {}

// ForStmt is `for name in iter: body`, where Iter has already been lowered
// to whatever iterator-producing expression the target needs (a Range, a
// container, or a comprehension).
type ForStmt struct {
	Var  string
	Iter Expr
	Body []Stmt
}

func (*ForStmt) irStmtNode() {}

// MatchStmt is the statement form of match: each arm's body is a statement
// list rather than a single result expression.
type MatchStmt struct {
	Scrutinee Expr
	Arms      []MatchArm
}

func (*MatchStmt) irStmtNode() {}

// ExprStmt evaluates Value for its side effects and discards the result.
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) irStmtNode() {}

// PassStmt is the explicit no-op; it lowers to nothing and the emitter
// drops it, but it is kept as a distinct node so a block that is only
// `pass` still lowers to a non-empty body list.
type PassStmt struct{}

func (*PassStmt) irStmtNode() {}

// YieldStmt is `yield [expr]`. Spec's core has no generator scheduling
// (§4.4 "No operation suspends or yields"), so a yield lowers as a plain
// expression statement evaluating Value for effect; this node only exists
// so the emitter can choose target-appropriate wording for the rare
// surface program that still uses the keyword.
type YieldStmt struct {
	Value Expr
}

func (*YieldStmt) irStmtNode() {}
