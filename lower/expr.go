package lower

import (
	"strings"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/symbols"
	"github.com/dannys-code-corner/incan/token"
)

// sumConstructorNames are the builtin Option/Result constructor spellings
// lowering recognizes as a ConstructExpr rather than an ordinary call; the
// checker does not yet pre-declare them as callable symbols (see DESIGN.md),
// so lowering matches on spelling directly, the same way it already must for
// builtin free functions.
var sumConstructorNames = map[string]bool{"Some": true, "Ok": true, "Err": true}

func (l *lowerer) lowerExpr(e ast.Expr) (ir.Expr, error) {
	t := l.typeOf(e)
	switch e := e.(type) {
	case *ast.IntLiteralNode:
		return &ir.IntLit{Value: e.Value, Typ: ir.OwnedType(checktypes.Int).WithWidth(widthFor(checktypes.Int))}, nil
	case *ast.FloatLiteralNode:
		return &ir.FloatLit{Value: e.Value, Typ: ir.OwnedType(checktypes.Float).WithWidth(widthFor(checktypes.Float))}, nil
	case *ast.BoolLiteralNode:
		return &ir.BoolLit{Value: e.Value, Typ: ir.OwnedType(checktypes.Bool)}, nil
	case *ast.StringLiteralNode:
		return &ir.StrLit{Value: e.Value, Typ: ir.OwnedType(checktypes.Str)}, nil
	case *ast.BytesLiteralNode:
		return &ir.BytesLit{Value: e.Value, Typ: ir.OwnedType(checktypes.Bytes)}, nil
	case *ast.IdentNode:
		return l.lowerIdent(e, t)
	case *ast.BinaryExpr:
		return l.lowerBinary(e, t)
	case *ast.UnaryExpr:
		operand, err := l.lowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: e.Op, Operand: operand, Typ: ir.OwnedType(t)}, nil
	case *ast.CallExpr:
		return l.lowerCall(e, t)
	case *ast.MethodCallExpr:
		return l.lowerMethodCall(e, t)
	case *ast.FieldAccessExpr:
		return l.lowerFieldAccess(e, t)
	case *ast.IndexExpr:
		return l.lowerIndex(e, t)
	case *ast.SliceExpr:
		return l.lowerSlice(e, t)
	case *ast.AwaitExpr:
		operand, err := l.lowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.AwaitExpr{Operand: operand, Typ: ir.OwnedType(t)}, nil
	case *ast.TryExpr:
		operand, err := l.lowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.PropagateErrorExpr{Operand: operand, Typ: ir.OwnedType(t)}, nil
	case *ast.IfExpr:
		cond, err := l.lowerExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := l.lowerExpr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := l.lowerExpr(e.Else)
		if err != nil {
			return nil, err
		}
		return &ir.IfExpr{Cond: cond, Then: then, Else: els, Typ: ir.OwnedType(t)}, nil
	case *ast.MatchExpr:
		return l.lowerMatchExpr(e, t)
	case *ast.ListExpr:
		elems, err := l.lowerExprs(e.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.ListExpr{Elems: elems, Typ: ir.OwnedType(t)}, nil
	case *ast.SetExpr:
		elems, err := l.lowerExprs(e.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.SetExpr{Elems: elems, Typ: ir.OwnedType(t)}, nil
	case *ast.DictExpr:
		entries := make([]ir.DictEntry, len(e.Entries))
		for i, entry := range e.Entries {
			k, err := l.lowerExpr(entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := l.lowerExpr(entry.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ir.DictEntry{Key: k, Value: v}
		}
		return &ir.DictExpr{Entries: entries, Typ: ir.OwnedType(t)}, nil
	case *ast.TupleExpr:
		elems, err := l.lowerExprs(e.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.TupleExpr{Elems: elems, Typ: ir.OwnedType(t)}, nil
	case *ast.RangeExpr:
		var low, high ir.Expr
		var err error
		if e.Low != nil {
			if low, err = l.lowerExpr(e.Low); err != nil {
				return nil, err
			}
		}
		if e.High != nil {
			if high, err = l.lowerExpr(e.High); err != nil {
				return nil, err
			}
		}
		return &ir.RangeExpr{Low: low, High: high, Inclusive: e.Inclusive, Typ: ir.OwnedType(t)}, nil
	case *ast.ArrowClosureExpr:
		return l.lowerClosure(e, t)
	case *ast.ComprehensionExpr:
		return l.lowerComprehension(e, t)
	case *ast.FStringExpr:
		return l.lowerFString(e)
	case *ast.StructConstructorExpr:
		return l.lowerStructConstructor(e, t)
	default:
		return &ir.BoolLit{Value: false, Typ: ir.OwnedType(checktypes.Unit)}, nil
	}
}

func (l *lowerer) lowerExprs(exprs []ast.Expr) ([]ir.Expr, error) {
	out := make([]ir.Expr, len(exprs))
	for i, e := range exprs {
		lowered, err := l.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}

// asBorrowed reinterprets a lowered expression as a non-owning use: for a
// plain variable reference this flips its Ownership; for everything else
// (a freshly built literal, call result, or container) there is no existing
// owner to borrow from, so it is left Owned — it is a temporary either way.
func asBorrowed(e ir.Expr) ir.Expr {
	if ref, ok := e.(*ir.VarRef); ok {
		ref.Typ.Ownership = ir.Borrowed
		return ref
	}
	return e
}

func (l *lowerer) lowerIdent(e *ast.IdentNode, t checktypes.Type) (ir.Expr, error) {
	return &ir.VarRef{Name: e.Name, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerBinary(e *ast.BinaryExpr, t checktypes.Type) (ir.Expr, error) {
	left, err := l.lowerExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := l.lowerExpr(e.Right)
	if err != nil {
		return nil, err
	}
	return &ir.BinaryExpr{Left: asBorrowed(left), Right: asBorrowed(right), Op: e.Op, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerCall(e *ast.CallExpr, t checktypes.Type) (ir.Expr, error) {
	args, err := l.lowerExprs(e.Args)
	if err != nil {
		return nil, err
	}
	if ident, ok := e.Func.(*ast.IdentNode); ok {
		if sumConstructorNames[ident.Name] {
			fields := make([]ir.FieldInit, len(args))
			for i, a := range args {
				fields[i] = ir.FieldInit{Name: indexFieldName(i), Value: a}
			}
			return &ir.ConstructExpr{Variant: ident.Name, Fields: fields, Typ: ir.OwnedType(t)}, nil
		}
		if token.IsBuiltinFunction(ident.Name) {
			return &ir.CallExpr{Kind: ir.CallBuiltin, Builtin: ir.LookupBuiltinFn(ident.Name), Args: args, Typ: ir.OwnedType(t)}, nil
		}
		return &ir.CallExpr{Kind: ir.CallUser, Callee: ident.Name, Args: args, Typ: ir.OwnedType(t)}, nil
	}
	// A module-qualified call (`pkg.func(...)`) names its callee through a
	// field access rather than a bare identifier; resolve the alias the
	// same way lowerFieldAccess does, so the qualified name survives into
	// the callee rather than lowering to an anonymous call.
	if fa, ok := e.Func.(*ast.FieldAccessExpr); ok {
		if ident, ok := fa.Receiver.(*ast.IdentNode); ok {
			if entry, found := l.table.Lookup(ident.Name); found && entry.Kind == symbols.ModuleAlias {
				callee := fa.Field.Name
				if entry.External {
					callee = strings.ReplaceAll(entry.AliasOf, ".", "::") + "::" + fa.Field.Name
				}
				return &ir.CallExpr{Kind: ir.CallUser, Callee: callee, Args: args, Typ: ir.OwnedType(t)}, nil
			}
		}
	}
	return &ir.CallExpr{Kind: ir.CallUser, Args: args, Typ: ir.OwnedType(t)}, nil
}

func indexFieldName(i int) string {
	digits := "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	// Constructors with more than 9 positional payload fields are not
	// expected in practice; fall back to a stable, if ugly, name.
	return "field" + string(rune('0'+i))
}

func (l *lowerer) lowerMethodCall(e *ast.MethodCallExpr, t checktypes.Type) (ir.Expr, error) {
	// `pkg.func(args)` and `receiver.method(args)` share the same surface
	// syntax; a receiver naming a module alias is a free-function call
	// namespaced by `::`, not a call on a value, so it lowers to a
	// CallExpr rather than a MethodCallExpr.
	if ident, ok := e.Receiver.(*ast.IdentNode); ok {
		if entry, found := l.table.Lookup(ident.Name); found && entry.Kind == symbols.ModuleAlias {
			args, err := l.lowerExprs(e.Args)
			if err != nil {
				return nil, err
			}
			callee := e.Method.Name
			if entry.External {
				callee = strings.ReplaceAll(entry.AliasOf, ".", "::") + "::" + e.Method.Name
			}
			return &ir.CallExpr{Kind: ir.CallUser, Callee: callee, Args: args, Typ: ir.OwnedType(t)}, nil
		}
	}
	recv, err := l.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}
	args, err := l.lowerExprs(e.Args)
	if err != nil {
		return nil, err
	}
	recvT := l.typeOf(e.Receiver)
	class := ir.ReceiverClassOf(recvT)
	kind := ir.ResolveMethodKind(class, e.Method.Name)
	return &ir.MethodCallExpr{Receiver: asBorrowed(recv), Method: e.Method.Name, Kind: kind, Args: args, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerFieldAccess(e *ast.FieldAccessExpr, t checktypes.Type) (ir.Expr, error) {
	if ident, ok := e.Receiver.(*ast.IdentNode); ok {
		if entry, found := l.table.Lookup(ident.Name); found && entry.Kind == symbols.ModuleAlias {
			// A module-qualified reference (`pkg.name`) is not a field
			// access on a value at all; lower it as a direct reference to
			// the imported symbol's own name, the way the emitter's import
			// resolution expects to find it.
			return &ir.VarRef{Name: e.Field.Name, Typ: ir.OwnedType(t)}, nil
		}
	}
	recv, err := l.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}
	return &ir.FieldAccessExpr{Receiver: asBorrowed(recv), Field: e.Field.Name, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerIndex(e *ast.IndexExpr, t checktypes.Type) (ir.Expr, error) {
	recv, err := l.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}
	index, err := l.lowerExpr(e.Index)
	if err != nil {
		return nil, err
	}
	policy := ir.BoundsChecked
	if neg, ok := e.Index.(*ast.UnaryExpr); ok && neg.Op == "-" {
		policy = ir.BoundsNegativeNormalized
	}
	return &ir.IndexExpr{Receiver: asBorrowed(recv), Index: index, Policy: policy, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerSlice(e *ast.SliceExpr, t checktypes.Type) (ir.Expr, error) {
	recv, err := l.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}
	var low, high, step ir.Expr
	stepChecked := false
	if e.Low != nil {
		if low, err = l.lowerExpr(e.Low); err != nil {
			return nil, err
		}
	}
	if e.High != nil {
		if high, err = l.lowerExpr(e.High); err != nil {
			return nil, err
		}
	}
	if e.Step != nil {
		if step, err = l.lowerExpr(e.Step); err != nil {
			return nil, err
		}
		if lit, ok := e.Step.(*ast.IntLiteralNode); !ok || lit.Value == 0 {
			stepChecked = true
		}
	}
	return &ir.SliceExpr{Receiver: asBorrowed(recv), Low: low, High: high, Step: step, StepChecked: stepChecked, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerMatchExpr(e *ast.MatchExpr, t checktypes.Type) (ir.Expr, error) {
	scrutT := l.typeOf(e.Scrutinee)
	scrutinee, err := l.lowerExpr(e.Scrutinee)
	if err != nil {
		return nil, err
	}
	arms := make([]ir.MatchArm, len(e.Arms))
	for i, arm := range e.Arms {
		lowered, err := l.lowerMatchArm(arm, scrutT)
		if err != nil {
			return nil, err
		}
		arms[i] = lowered
	}
	return &ir.MatchExpr{Scrutinee: scrutinee, Arms: arms, Typ: ir.OwnedType(t)}, nil
}

func (l *lowerer) lowerMatchArm(arm *ast.MatchArm, scrutT checktypes.Type) (ir.MatchArm, error) {
	l.table.Push()
	defer l.table.Pop()
	pattern, err := l.lowerPattern(arm.Pattern, scrutT)
	if err != nil {
		return ir.MatchArm{}, err
	}
	var guard ir.Expr
	if arm.Guard != nil {
		if guard, err = l.lowerExpr(arm.Guard); err != nil {
			return ir.MatchArm{}, err
		}
	}
	var result ir.Expr
	var body []ir.Stmt
	if arm.Expr != nil {
		if result, err = l.lowerExpr(arm.Expr); err != nil {
			return ir.MatchArm{}, err
		}
	} else {
		if body, err = l.lowerBlock(arm.Body); err != nil {
			return ir.MatchArm{}, err
		}
	}
	return ir.MatchArm{Pattern: pattern, Guard: guard, Body: body, Result: result}, nil
}

func (l *lowerer) lowerClosure(e *ast.ArrowClosureExpr, t checktypes.Type) (ir.Expr, error) {
	l.table.Push()
	defer l.table.Pop()
	params := make([]ir.ClosureParam, len(e.Params))
	for i, p := range e.Params {
		pt := l.resolveType(p.Type)
		params[i] = ir.ClosureParam{Name: p.Name.Name, Typ: ir.OwnedType(pt)}
		_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name.Name, Type: pt, Origin: l.pos(p.Name)}, l.handler)
	}
	body, err := l.lowerExpr(e.Body)
	if err != nil {
		return nil, err
	}
	captures := freeVars(e.Body, paramNames(e.Params))
	return &ir.ClosureExpr{Params: params, Body: body, Captures: captures, Typ: ir.OwnedType(t)}, nil
}

func paramNames(params []*ast.Param) map[string]bool {
	out := make(map[string]bool, len(params))
	for _, p := range params {
		out[p.Name.Name] = true
	}
	return out
}

// freeVars collects the identifier names e references that are not in
// bound, so the emitter can decide a capture-by-move vs capture-by-borrow
// policy per variable. This is a syntactic approximation (it does not
// exclude names shadowed by a nested binding inside e), adequate for a
// single-expression closure body; a statement-bodied closure is not part of
// the surface grammar.
func freeVars(e ast.Expr, bound map[string]bool) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.IdentNode:
			if !bound[e.Name] && !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		case *ast.BinaryExpr:
			walk(e.Left)
			walk(e.Right)
		case *ast.UnaryExpr:
			walk(e.Operand)
		case *ast.CallExpr:
			walk(e.Func)
			for _, a := range e.Args {
				walk(a)
			}
		case *ast.MethodCallExpr:
			walk(e.Receiver)
			for _, a := range e.Args {
				walk(a)
			}
		case *ast.FieldAccessExpr:
			walk(e.Receiver)
		case *ast.IndexExpr:
			walk(e.Receiver)
			walk(e.Index)
		}
	}
	walk(e)
	return names
}

func (l *lowerer) lowerComprehension(e *ast.ComprehensionExpr, t checktypes.Type) (ir.Expr, error) {
	iter, err := l.lowerExpr(e.Iter)
	if err != nil {
		return nil, err
	}
	l.table.Push()
	defer l.table.Pop()
	elemT := elementTypeOf(l.typeOf(e.Iter))
	_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: e.Var.Name, Type: elemT, Origin: l.pos(e.Var)}, l.handler)

	var cond ir.Expr
	if e.Cond != nil {
		if cond, err = l.lowerExpr(e.Cond); err != nil {
			return nil, err
		}
	}
	kind := ir.ComprehensionList
	var elem, key, val ir.Expr
	switch e.Kind {
	case ast.DictComprehension:
		kind = ir.ComprehensionDict
		if key, err = l.lowerExpr(e.KeyElem); err != nil {
			return nil, err
		}
		if val, err = l.lowerExpr(e.ValElem); err != nil {
			return nil, err
		}
	case ast.SetComprehension:
		kind = ir.ComprehensionSet
		if elem, err = l.lowerExpr(e.Elem); err != nil {
			return nil, err
		}
	default:
		if elem, err = l.lowerExpr(e.Elem); err != nil {
			return nil, err
		}
	}
	return &ir.ComprehensionExpr{Kind: kind, Var: e.Var.Name, Iter: iter, Cond: cond, Elem: elem, KeyElem: key, ValElem: val, Typ: ir.OwnedType(t)}, nil
}

func elementTypeOf(t checktypes.Type) checktypes.Type {
	switch t := t.(type) {
	case *checktypes.List:
		return t.Elem
	case *checktypes.Set:
		return t.Elem
	case *checktypes.Dict:
		return t.Key
	default:
		return checktypes.Unit
	}
}

func (l *lowerer) lowerFString(e *ast.FStringExpr) (ir.Expr, error) {
	frags := make([]ir.FormatFragment, len(e.Fragments))
	for i, frag := range e.Fragments {
		out := ir.FormatFragment{Literal: frag.Literal, IsExpr: frag.IsExpr, FormatSpec: frag.FormatSpec, Debug: frag.Debug}
		if frag.IsExpr {
			v, err := l.lowerExpr(frag.Expr)
			if err != nil {
				return nil, err
			}
			out.Value = asBorrowed(v)
		}
		frags[i] = out
	}
	return &ir.FormatExpr{Fragments: frags, Typ: ir.OwnedType(checktypes.Str)}, nil
}

func (l *lowerer) lowerStructConstructor(e *ast.StructConstructorExpr, t checktypes.Type) (ir.Expr, error) {
	fields := make([]ir.FieldInit, len(e.Fields))
	for i, f := range e.Fields {
		v, err := l.lowerExpr(f.Value)
		if err != nil {
			return nil, err
		}
		fields[i] = ir.FieldInit{Name: f.Name.Name, Value: v}
	}
	return &ir.ConstructExpr{TypeName: e.TypeName.Name, Fields: fields, Typ: ir.OwnedType(t)}, nil
}
