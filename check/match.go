package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

func (c *checker) checkMatchStmt(s *ast.MatchStmt) error {
	scrutT, err := c.checkExprErr(s.Scrutinee)
	if err != nil {
		return err
	}
	for _, arm := range s.Arms {
		if err := c.checkArm(arm, scrutT); err != nil {
			return err
		}
	}
	return c.checkExhaustive(s.Arms, scrutT, c.pos(s))
}

func (c *checker) matchExprType(e *ast.MatchExpr) (checktypes.Type, error) {
	scrutT, err := c.checkExprErr(e.Scrutinee)
	if err != nil {
		return nil, err
	}
	var result checktypes.Type
	for _, arm := range e.Arms {
		if err := c.checkArm(arm, scrutT); err != nil {
			return nil, err
		}
		if arm.Expr != nil {
			t, err := c.checkExprErr(arm.Expr)
			if err != nil {
				return nil, err
			}
			if result == nil {
				result = t
			}
		}
	}
	if err := c.checkExhaustive(e.Arms, scrutT, c.pos(e)); err != nil {
		return nil, err
	}
	if result == nil {
		result = checktypes.Unit
	}
	return result, nil
}

func (c *checker) checkArm(arm *ast.MatchArm, scrutT checktypes.Type) error {
	c.table.Push()
	defer c.table.Pop()
	if err := c.declarePattern(arm.Pattern, scrutT); err != nil {
		return err
	}
	if arm.Guard != nil {
		if _, err := c.checkExprErr(arm.Guard); err != nil {
			return err
		}
	}
	for _, stmt := range arm.Body {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) declarePattern(p ast.Pattern, scrutT checktypes.Type) error {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		return nil
	case *ast.BindingPattern:
		return c.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name, Type: scrutT, Origin: c.pos(p)}, c.handler)
	case *ast.LiteralPattern:
		_, err := c.checkExprErr(p.Value)
		return err
	case *ast.VariantPattern:
		payload := variantPayload(scrutT, p.Variant)
		for i, sub := range p.Payload {
			var elemT checktypes.Type = checktypes.Unit
			if i < len(payload) {
				elemT = payload[i]
			}
			if err := c.declarePattern(sub, elemT); err != nil {
				return err
			}
		}
		return nil
	case *ast.TuplePattern:
		tup, _ := scrutT.(*checktypes.Tuple)
		for i, sub := range p.Elems {
			var elemT checktypes.Type = checktypes.Unit
			if tup != nil && i < len(tup.Elems) {
				elemT = tup.Elems[i]
			}
			if err := c.declarePattern(sub, elemT); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
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

// checkExhaustive implements spec's match-exhaustiveness rule for sum types:
// every variant of the scrutinee's type must be covered by some arm, unless
// a wildcard (or irrefutable binding) pattern is present. It also flags a
// later arm that can never match because an earlier wildcard/binding arm
// already subsumes every case.
func (c *checker) checkExhaustive(arms []*ast.MatchArm, scrutT checktypes.Type, pos ast.SourcePos) error {
	variantNames := sumVariantNames(scrutT)
	if variantNames == nil {
		return nil // not a sum type; exhaustiveness is not required
	}

	covered := make(map[string]bool, len(variantNames))
	seenCatchAll := false
	for _, arm := range arms {
		if seenCatchAll {
			if err := c.handler.HandleDiagnostic(reporter.Type, c.pos(arm), unreachableArmError{}, nil); err != nil {
				return err
			}
			continue
		}
		switch p := arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.BindingPattern:
			seenCatchAll = true
		case *ast.VariantPattern:
			covered[p.Variant] = true
		}
	}
	if seenCatchAll {
		return nil
	}

	var missing []string
	for _, name := range variantNames {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return c.handler.HandleDiagnostic(reporter.Type, pos, nonExhaustiveMatchError{missing: missing}, nil,
			"add a `case _:` arm or cover the remaining variants explicitly")
	}
	return nil
}

func sumVariantNames(t checktypes.Type) []string {
	switch t := t.(type) {
	case *checktypes.Option:
		return []string{"Some", "None"}
	case *checktypes.Result:
		return []string{"Ok", "Err"}
	case *checktypes.Enum:
		names := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			names[i] = v.Name
		}
		return names
	default:
		return nil
	}
}
