package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/symbols"
)

func (l *lowerer) lowerPattern(p ast.Pattern, scrutT checktypes.Type) (ir.Pattern, error) {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		return &ir.WildcardPattern{}, nil
	case *ast.BindingPattern:
		_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name, Type: scrutT, Origin: l.pos(p)}, l.handler)
		return &ir.BindingPattern{Name: p.Name, Typ: ir.OwnedType(scrutT)}, nil
	case *ast.LiteralPattern:
		v, err := l.lowerExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &ir.LiteralPattern{Value: v}, nil
	case *ast.VariantPattern:
		payload := variantPayload(scrutT, p.Variant)
		elems := make([]ir.Pattern, len(p.Payload))
		for i, sub := range p.Payload {
			var elemT checktypes.Type = checktypes.Unit
			if i < len(payload) {
				elemT = payload[i]
			}
			lowered, err := l.lowerPattern(sub, elemT)
			if err != nil {
				return nil, err
			}
			elems[i] = lowered
		}
		return &ir.VariantPattern{Variant: p.Variant, Payload: elems}, nil
	case *ast.TuplePattern:
		tup, _ := scrutT.(*checktypes.Tuple)
		elems := make([]ir.Pattern, len(p.Elems))
		for i, sub := range p.Elems {
			var elemT checktypes.Type = checktypes.Unit
			if tup != nil && i < len(tup.Elems) {
				elemT = tup.Elems[i]
			}
			lowered, err := l.lowerPattern(sub, elemT)
			if err != nil {
				return nil, err
			}
			elems[i] = lowered
		}
		return &ir.TuplePattern{Elems: elems}, nil
	default:
		return &ir.WildcardPattern{}, nil
	}
}

func variantPayload(t checktypes.Type, variant string) []checktypes.Type {
	switch t := t.(type) {
	case *checktypes.Option:
		if variant == "Some" {
			return []checktypes.Type{t.Elem}
		}
		return nil
	case *checktypes.Result:
		if variant == "Ok" {
			return []checktypes.Type{t.Ok}
		}
		if variant == "Err" {
			return []checktypes.Type{t.Err}
		}
		return nil
	case *checktypes.Enum:
		for _, v := range t.Variants {
			if v.Name == variant {
				return v.Payload
			}
		}
	}
	return nil
}
