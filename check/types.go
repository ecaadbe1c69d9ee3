package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

// posOf recovers an ast.SourcePos for any node in file; every standalone
// (non-checker-method) function in this package that needs to report a
// position takes file explicitly for this reason, since only a *ast.File's
// FileInfo can turn a Token handle into a line/column.
func posOf(file *ast.File, n ast.Node) ast.SourcePos {
	if file == nil {
		return ast.UnknownPos("")
	}
	return file.Info.NodeInfo(n).Start()
}

// resolveType converts a syntactic type annotation into a checktypes.Type,
// resolving named user types (models, classes, traits, enums, newtypes,
// aliases) against table. Unrecognized names report unknownSymbolError.
func resolveType(file *ast.File, t ast.TypeExpr, table *symbols.Table, handler *reporter.Handler) checktypes.Type {
	switch t := t.(type) {
	case *ast.UnitType:
		return checktypes.Unit
	case *ast.NamedType:
		return resolveNamedType(file, t, table, handler)
	case *ast.TupleType:
		elems := make([]checktypes.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = resolveType(file, e, table, handler)
		}
		return &checktypes.Tuple{Elems: elems}
	case *ast.FuncType:
		params := make([]checktypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = resolveType(file, p, table, handler)
		}
		return &checktypes.Func{Params: params, Result: resolveType(file, t.Result, table, handler), Async: t.Async}
	default:
		return checktypes.Unit
	}
}

func resolveNamedType(file *ast.File, t *ast.NamedType, table *symbols.Table, handler *reporter.Handler) checktypes.Type {
	switch t.Name {
	case "int":
		return checktypes.Int
	case "float":
		return checktypes.Float
	case "bool":
		return checktypes.Bool
	case "str":
		return checktypes.Str
	case "bytes":
		return checktypes.Bytes
	case "None":
		return checktypes.Unit
	case "List":
		return &checktypes.List{Elem: typeArg(file, t, 0, table, handler)}
	case "Set":
		return &checktypes.Set{Elem: typeArg(file, t, 0, table, handler)}
	case "Dict":
		return &checktypes.Dict{Key: typeArg(file, t, 0, table, handler), Value: typeArg(file, t, 1, table, handler)}
	case "Option":
		return &checktypes.Option{Elem: typeArg(file, t, 0, table, handler)}
	case "Result":
		return &checktypes.Result{Ok: typeArg(file, t, 0, table, handler), Err: typeArg(file, t, 1, table, handler)}
	case "FrozenStr":
		return &checktypes.Frozen{Elem: checktypes.Str}
	case "FrozenBytes":
		return &checktypes.Frozen{Elem: checktypes.Bytes}
	case "FrozenList":
		return &checktypes.Frozen{Elem: &checktypes.List{Elem: typeArg(file, t, 0, table, handler)}}
	case "FrozenDict":
		return &checktypes.Frozen{Elem: &checktypes.Dict{Key: typeArg(file, t, 0, table, handler), Value: typeArg(file, t, 1, table, handler)}}
	case "FrozenSet":
		return &checktypes.Frozen{Elem: &checktypes.Set{Elem: typeArg(file, t, 0, table, handler)}}
	}

	entry, ok := table.Lookup(t.Name)
	if !ok || entry.Kind != symbols.TypeName {
		_ = handler.HandleDiagnostic(reporter.Type, posOf(file, t), unknownSymbolError{name: t.Name}, nil)
		return checktypes.Unit
	}
	return entry.Type
}

func typeArg(file *ast.File, t *ast.NamedType, i int, table *symbols.Table, handler *reporter.Handler) checktypes.Type {
	if i >= len(t.Args) {
		return checktypes.Unit
	}
	return resolveType(file, t.Args[i], table, handler)
}

// binaryResultType implements spec's (op, lhs, rhs) -> result type table,
// including the limited explicit numeric promotion rules. ok is false when
// the operator is not defined for the given operand types.
func binaryResultType(op string, lhs, rhs checktypes.Type) (result checktypes.Type, ok bool) {
	switch op {
	case "and", "or":
		if lhs == checktypes.Bool && rhs == checktypes.Bool {
			return checktypes.Bool, true
		}
		return nil, false
	case "==", "!=", "<", "<=", ">", ">=":
		if checktypes.IsNumeric(lhs) && checktypes.IsNumeric(rhs) {
			return checktypes.Bool, true
		}
		if checktypes.Equal(lhs, rhs) {
			return checktypes.Bool, true
		}
		return nil, false
	case "in":
		return checktypes.Bool, true
	case "+":
		if lhs == checktypes.Str && rhs == checktypes.Str {
			return checktypes.Str, true
		}
		if lhs == checktypes.Bytes && rhs == checktypes.Bytes {
			return checktypes.Bytes, true
		}
		return numericResult(lhs, rhs)
	case "-", "*":
		return numericResult(lhs, rhs)
	case "/":
		if checktypes.IsNumeric(lhs) && checktypes.IsNumeric(rhs) {
			return checktypes.Float, true
		}
		return nil, false
	case "//":
		if !checktypes.IsNumeric(lhs) || !checktypes.IsNumeric(rhs) {
			return nil, false
		}
		if lhs == checktypes.Int && rhs == checktypes.Int {
			return checktypes.Int, true
		}
		return checktypes.Float, true
	case "%":
		return numericResult(lhs, rhs)
	case "**":
		// Whether this yields int depends on whether the exponent is a
		// non-negative integer literal; that refinement needs the operand
		// expression, not just its type, so the caller (binaryType)
		// special-cases "**" rather than relying on this table entry.
		return numericResult(lhs, rhs)
	}
	return nil, false
}

func numericResult(lhs, rhs checktypes.Type) (checktypes.Type, bool) {
	if !checktypes.IsNumeric(lhs) || !checktypes.IsNumeric(rhs) {
		return nil, false
	}
	if lhs == checktypes.Int && rhs == checktypes.Int {
		return checktypes.Int, true
	}
	return checktypes.Float, true
}
