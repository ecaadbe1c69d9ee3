package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/symbols"
)

// resolveType mirrors check's own resolveType: by the time lowering runs,
// every name it can reference has already been validated, so this never
// reports a diagnostic — an unresolvable name falls back to Unit the same
// way a value lowering never reaches would.
func (l *lowerer) resolveType(t ast.TypeExpr) checktypes.Type {
	switch t := t.(type) {
	case nil:
		return checktypes.Unit
	case *ast.UnitType:
		return checktypes.Unit
	case *ast.NamedType:
		return l.resolveNamedType(t)
	case *ast.TupleType:
		elems := make([]checktypes.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = l.resolveType(e)
		}
		return &checktypes.Tuple{Elems: elems}
	case *ast.FuncType:
		params := make([]checktypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = l.resolveType(p)
		}
		return &checktypes.Func{Params: params, Result: l.resolveType(t.Result), Async: t.Async}
	default:
		return checktypes.Unit
	}
}

func (l *lowerer) resolveNamedType(t *ast.NamedType) checktypes.Type {
	arg := func(i int) checktypes.Type {
		if i >= len(t.Args) {
			return checktypes.Unit
		}
		return l.resolveType(t.Args[i])
	}
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
		return &checktypes.List{Elem: arg(0)}
	case "Set":
		return &checktypes.Set{Elem: arg(0)}
	case "Dict":
		return &checktypes.Dict{Key: arg(0), Value: arg(1)}
	case "Option":
		return &checktypes.Option{Elem: arg(0)}
	case "Result":
		return &checktypes.Result{Ok: arg(0), Err: arg(1)}
	case "FrozenStr":
		return &checktypes.Frozen{Elem: checktypes.Str}
	case "FrozenBytes":
		return &checktypes.Frozen{Elem: checktypes.Bytes}
	case "FrozenList":
		return &checktypes.Frozen{Elem: &checktypes.List{Elem: arg(0)}}
	case "FrozenDict":
		return &checktypes.Frozen{Elem: &checktypes.Dict{Key: arg(0), Value: arg(1)}}
	case "FrozenSet":
		return &checktypes.Frozen{Elem: &checktypes.Set{Elem: arg(0)}}
	}
	entry, ok := l.table.Lookup(t.Name)
	if !ok || entry.Kind != symbols.TypeName {
		return checktypes.Unit
	}
	return entry.Type
}
