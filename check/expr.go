package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
	"github.com/dannys-code-corner/incan/token"
)

// typeOfExpr computes an expression's type without surfacing the error
// handler's abort decision to the caller; used where a caller already knows
// checking happened earlier (e.g. re-deriving a const's type after
// checkConstExpr already validated its shape).
func (c *checker) typeOfExpr(e ast.Expr) checktypes.Type {
	t, _ := c.checkExprErr(e)
	return t
}

// checkExprErr computes e's type, recording it in c.info and reporting any
// diagnostic through c.handler. A non-nil error means the handler decided
// to abort the compile; callers should propagate it immediately.
func (c *checker) checkExprErr(e ast.Expr) (checktypes.Type, error) {
	t, err := c.exprType(e)
	if t != nil && c.info != nil {
		c.info.Types[e] = t
	}
	return t, err
}

func (c *checker) exprType(e ast.Expr) (checktypes.Type, error) {
	switch e := e.(type) {
	case *ast.IntLiteralNode:
		return checktypes.Int, nil
	case *ast.FloatLiteralNode:
		return checktypes.Float, nil
	case *ast.BoolLiteralNode:
		return checktypes.Bool, nil
	case *ast.StringLiteralNode:
		return checktypes.Str, nil
	case *ast.BytesLiteralNode:
		return checktypes.Bytes, nil
	case *ast.IdentNode:
		return c.identType(e)
	case *ast.BinaryExpr:
		return c.binaryType(e)
	case *ast.UnaryExpr:
		return c.unaryType(e)
	case *ast.CallExpr:
		return c.callType(e)
	case *ast.MethodCallExpr:
		return c.methodCallType(e)
	case *ast.FieldAccessExpr:
		return c.fieldAccessType(e)
	case *ast.IndexExpr:
		return c.indexType(e)
	case *ast.SliceExpr:
		recvT, err := c.checkExprErr(e.Receiver)
		if err != nil {
			return nil, err
		}
		for _, sub := range []ast.Expr{e.Low, e.High, e.Step} {
			if sub != nil {
				if _, err := c.checkExprErr(sub); err != nil {
					return nil, err
				}
			}
		}
		return recvT, nil
	case *ast.AwaitExpr:
		if !c.inAsync {
			if err := c.handler.HandleDiagnostic(reporter.Type, c.pos(e),
				invalidReceiverError{reason: "`await` used outside an async function"}, nil); err != nil {
				return nil, err
			}
		}
		return c.checkExprErr(e.Operand)
	case *ast.TryExpr:
		return c.tryType(e)
	case *ast.IfExpr:
		if _, err := c.checkExprErr(e.Cond); err != nil {
			return nil, err
		}
		thenT, err := c.checkExprErr(e.Then)
		if err != nil {
			return nil, err
		}
		if _, err := c.checkExprErr(e.Else); err != nil {
			return nil, err
		}
		return thenT, nil
	case *ast.MatchExpr:
		return c.matchExprType(e)
	case *ast.ListExpr:
		var elem checktypes.Type = checktypes.Unit
		for _, el := range e.Elems {
			t, err := c.checkExprErr(el)
			if err != nil {
				return nil, err
			}
			if t != nil {
				elem = t
			}
		}
		return &checktypes.List{Elem: elem}, nil
	case *ast.SetExpr:
		var elem checktypes.Type = checktypes.Unit
		for _, el := range e.Elems {
			t, err := c.checkExprErr(el)
			if err != nil {
				return nil, err
			}
			if t != nil {
				elem = t
			}
		}
		return &checktypes.Set{Elem: elem}, nil
	case *ast.DictExpr:
		var key, val checktypes.Type = checktypes.Unit, checktypes.Unit
		for _, entry := range e.Entries {
			k, err := c.checkExprErr(entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := c.checkExprErr(entry.Value)
			if err != nil {
				return nil, err
			}
			if k != nil {
				key = k
			}
			if v != nil {
				val = v
			}
		}
		return &checktypes.Dict{Key: key, Value: val}, nil
	case *ast.TupleExpr:
		elems := make([]checktypes.Type, len(e.Elems))
		for i, el := range e.Elems {
			t, err := c.checkExprErr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &checktypes.Tuple{Elems: elems}, nil
	case *ast.RangeExpr:
		if e.Low != nil {
			if _, err := c.checkExprErr(e.Low); err != nil {
				return nil, err
			}
		}
		if e.High != nil {
			if _, err := c.checkExprErr(e.High); err != nil {
				return nil, err
			}
		}
		return &checktypes.List{Elem: checktypes.Int}, nil
	case *ast.ArrowClosureExpr:
		c.table.Push()
		defer c.table.Pop()
		params := make([]checktypes.Type, len(e.Params))
		for i, p := range e.Params {
			t := resolveType(c.file, p.Type, c.table, c.handler)
			params[i] = t
			if err := c.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name.Name, Type: t, Origin: c.pos(p.Name)}, c.handler); err != nil {
				return nil, err
			}
		}
		result, err := c.checkExprErr(e.Body)
		if err != nil {
			return nil, err
		}
		return &checktypes.Func{Params: params, Result: result}, nil
	case *ast.ComprehensionExpr:
		return c.comprehensionType(e)
	case *ast.FStringExpr:
		for _, frag := range e.Fragments {
			if frag.IsExpr {
				if _, err := c.checkExprErr(frag.Expr); err != nil {
					return nil, err
				}
			}
		}
		return checktypes.Str, nil
	case *ast.StructConstructorExpr:
		return c.structConstructorType(e)
	default:
		return checktypes.Unit, nil
	}
}

func (c *checker) identType(e *ast.IdentNode) (checktypes.Type, error) {
	entry, ok := c.table.Lookup(e.Name)
	if !ok {
		return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e), unknownSymbolError{name: e.Name}, nil)
	}
	if c.info != nil {
		c.info.Idents[e] = entry
	}
	return entry.Type, nil
}

func (c *checker) binaryType(e *ast.BinaryExpr) (checktypes.Type, error) {
	lhs, err := c.checkExprErr(e.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := c.checkExprErr(e.Right)
	if err != nil {
		return nil, err
	}
	if lhs == nil || rhs == nil {
		return checktypes.Unit, nil
	}
	if e.Op == "**" {
		if _, isInt := e.Right.(*ast.IntLiteralNode); isInt && lhs == checktypes.Int {
			return checktypes.Int, nil
		}
		return checktypes.Float, nil
	}
	result, ok := binaryResultType(e.Op, lhs, rhs)
	if !ok {
		return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e),
			typeMismatchError{context: "operator " + e.Op, expected: "compatible operand types", got: lhs.String() + " and " + rhs.String()}, nil)
	}
	return result, nil
}

func (c *checker) unaryType(e *ast.UnaryExpr) (checktypes.Type, error) {
	t, err := c.checkExprErr(e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Op == "not" {
		return checktypes.Bool, nil
	}
	return t, nil
}

func (c *checker) tryType(e *ast.TryExpr) (checktypes.Type, error) {
	operandT, err := c.checkExprErr(e.Operand)
	if err != nil {
		return nil, err
	}
	res, isResult := c.funcResult.(*checktypes.Result)
	if !isResult {
		return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e), tryOutsideResultFuncError{}, nil)
	}
	operandResult, ok := operandT.(*checktypes.Result)
	if !ok {
		return res.Ok, nil
	}
	return operandResult.Ok, nil
}

func (c *checker) callType(e *ast.CallExpr) (checktypes.Type, error) {
	argTypes := make([]checktypes.Type, len(e.Args))
	for i, a := range e.Args {
		t, err := c.checkExprErr(a)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}
	for _, kw := range e.KwArgs {
		if _, err := c.checkExprErr(kw.Value); err != nil {
			return nil, err
		}
	}
	if ident, ok := e.Func.(*ast.IdentNode); ok {
		if token.IsBuiltinFunction(ident.Name) {
			return builtinResultType(ident.Name, argTypes), nil
		}
		entry, found := c.table.Lookup(ident.Name)
		if !found {
			return checktypes.Unit, c.handler.HandleDiagnostic(reporter.Type, c.pos(ident), unknownSymbolError{name: ident.Name}, nil)
		}
		if fn, ok := entry.Type.(*checktypes.Func); ok {
			return fn.Result, nil
		}
		if rec, ok := entry.Type.(*checktypes.Record); ok {
			return rec, nil
		}
		if nt, ok := entry.Type.(*checktypes.Newtype); ok {
			return nt, nil
		}
		return checktypes.Unit, nil
	}
	fnT, err := c.checkExprErr(e.Func)
	if err != nil {
		return nil, err
	}
	if fn, ok := fnT.(*checktypes.Func); ok {
		return fn.Result, nil
	}
	return checktypes.Unit, nil
}

func (c *checker) methodCallType(e *ast.MethodCallExpr) (checktypes.Type, error) {
	recvT, err := c.checkExprErr(e.Receiver)
	if err != nil {
		return nil, err
	}
	for _, a := range e.Args {
		if _, err := c.checkExprErr(a); err != nil {
			return nil, err
		}
	}
	for _, kw := range e.KwArgs {
		if _, err := c.checkExprErr(kw.Value); err != nil {
			return nil, err
		}
	}
	_ = recvT // resolving user-defined method signatures happens in lowering,
	// which has access to the full per-type method table; the checker only
	// needs the receiver's own type to have checked out.
	return checktypes.Unit, nil
}

func (c *checker) fieldAccessType(e *ast.FieldAccessExpr) (checktypes.Type, error) {
	if ident, ok := e.Receiver.(*ast.IdentNode); ok {
		if entry, found := c.table.Lookup(ident.Name); found && entry.Kind == symbols.ModuleAlias {
			if entry.External {
				// An external crate has no symbol table of its own to look
				// a member up in; its signature is opaque to the checker,
				// the same way a user-defined method's signature is opaque
				// until lowering resolves it against the concrete type.
				return checktypes.Unit, nil
			}
			modTable, ok := c.prog.moduleByPath(entry.AliasOf)
			if !ok {
				return checktypes.Unit, c.handler.HandleDiagnostic(reporter.Resolve, c.pos(e), importNotFoundError{path: entry.AliasOf}, nil)
			}
			member, found := modTable.Module().Lookup(e.Field.Name)
			if !found {
				return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e.Field), unknownSymbolError{name: e.Field.Name}, nil)
			}
			return member.Type, nil
		}
	}
	recvT, err := c.checkExprErr(e.Receiver)
	if err != nil {
		return nil, err
	}
	rec, ok := recvT.(*checktypes.Record)
	if !ok {
		return checktypes.Unit, nil
	}
	for _, f := range allFields(rec) {
		if f.Name == e.Field.Name {
			return f.Type, nil
		}
	}
	return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e.Field), unknownSymbolError{name: e.Field.Name}, nil)
}

func allFields(rec *checktypes.Record) []checktypes.Field {
	fields := append([]checktypes.Field{}, rec.Fields...)
	for _, base := range rec.Bases {
		fields = append(fields, allFields(base)...)
	}
	return fields
}

func (c *checker) indexType(e *ast.IndexExpr) (checktypes.Type, error) {
	recvT, err := c.checkExprErr(e.Receiver)
	if err != nil {
		return nil, err
	}
	if _, err := c.checkExprErr(e.Index); err != nil {
		return nil, err
	}
	switch t := recvT.(type) {
	case *checktypes.List:
		return t.Elem, nil
	case *checktypes.Dict:
		return t.Value, nil
	case *checktypes.Tuple:
		if len(t.Elems) > 0 {
			return t.Elems[0], nil
		}
		return checktypes.Unit, nil
	case checktypes.Ground:
		if t == checktypes.Str {
			return checktypes.Str, nil
		}
		return checktypes.Unit, nil
	default:
		return checktypes.Unit, nil
	}
}

func (c *checker) comprehensionType(e *ast.ComprehensionExpr) (checktypes.Type, error) {
	iterT, err := c.checkExprErr(e.Iter)
	if err != nil {
		return nil, err
	}
	c.table.Push()
	defer c.table.Pop()
	if err := c.table.Declare(symbols.Entry{Kind: symbols.Value, Name: e.Var.Name, Type: elementTypeOf(iterT), Origin: c.pos(e.Var)}, c.handler); err != nil {
		return nil, err
	}
	if e.Cond != nil {
		if _, err := c.checkExprErr(e.Cond); err != nil {
			return nil, err
		}
	}
	switch e.Kind {
	case ast.DictComprehension:
		k, err := c.checkExprErr(e.KeyElem)
		if err != nil {
			return nil, err
		}
		v, err := c.checkExprErr(e.ValElem)
		if err != nil {
			return nil, err
		}
		return &checktypes.Dict{Key: k, Value: v}, nil
	case ast.SetComprehension:
		el, err := c.checkExprErr(e.Elem)
		if err != nil {
			return nil, err
		}
		return &checktypes.Set{Elem: el}, nil
	default:
		el, err := c.checkExprErr(e.Elem)
		if err != nil {
			return nil, err
		}
		return &checktypes.List{Elem: el}, nil
	}
}

// builtinResultType computes a builtin free function's result type from its
// argument types, so a call like `println(...)` or `len(xs)` typechecks without
// needing a symbol-table entry the way a user function does — builtins are
// lowering's concern (spec §4.4's builtin dispatch table), not a name the
// source ever declares.
func builtinResultType(name string, args []checktypes.Type) checktypes.Type {
	elemOf := func(t checktypes.Type) checktypes.Type {
		switch t := t.(type) {
		case *checktypes.List:
			return t.Elem
		case *checktypes.Set:
			return t.Elem
		default:
			return checktypes.Unit
		}
	}
	switch name {
	case "println", "write_file":
		return checktypes.Unit
	case "len":
		return checktypes.Int
	case "range":
		return &checktypes.List{Elem: checktypes.Int}
	case "sum", "min", "max", "abs":
		if len(args) > 0 {
			if l, ok := args[0].(*checktypes.List); ok {
				return l.Elem
			}
			return args[0]
		}
		return checktypes.Int
	case "sorted", "reversed":
		if len(args) > 0 {
			return args[0]
		}
		return &checktypes.List{Elem: checktypes.Unit}
	case "enumerate":
		if len(args) > 0 {
			return &checktypes.List{Elem: &checktypes.Tuple{Elems: []checktypes.Type{checktypes.Int, elemOf(args[0])}}}
		}
		return &checktypes.List{Elem: checktypes.Unit}
	case "zip":
		if len(args) >= 2 {
			return &checktypes.List{Elem: &checktypes.Tuple{Elems: []checktypes.Type{elemOf(args[0]), elemOf(args[1])}}}
		}
		return &checktypes.List{Elem: checktypes.Unit}
	case "map":
		if len(args) >= 2 {
			return &checktypes.List{Elem: elemOf(args[1])}
		}
		return &checktypes.List{Elem: checktypes.Unit}
	case "filter":
		if len(args) >= 2 {
			return args[1]
		}
		return &checktypes.List{Elem: checktypes.Unit}
	case "json_stringify", "read_file", "str":
		return checktypes.Str
	case "json_parse":
		return checktypes.Str
	case "int":
		return checktypes.Int
	case "float":
		return checktypes.Float
	case "bool":
		return checktypes.Bool
	default:
		return checktypes.Unit
	}
}

func (c *checker) structConstructorType(e *ast.StructConstructorExpr) (checktypes.Type, error) {
	entry, ok := c.table.Lookup(e.TypeName.Name)
	if !ok || entry.Kind != symbols.TypeName {
		return nil, c.handler.HandleDiagnostic(reporter.Type, c.pos(e.TypeName), unknownSymbolError{name: e.TypeName.Name}, nil)
	}
	for _, f := range e.Fields {
		if _, err := c.checkExprErr(f.Value); err != nil {
			return nil, err
		}
	}
	return entry.Type, nil
}
