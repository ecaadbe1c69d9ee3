package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

func (c *checker) checkBlock(body []ast.Stmt) error {
	c.table.Push()
	defer c.table.Pop()
	for _, s := range body {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.BindingStmt:
		return c.checkBindingStmt(s)
	case *ast.ReturnStmt:
		return c.checkReturnStmt(s)
	case *ast.IfStmt:
		return c.checkIfStmt(s)
	case *ast.WhileStmt:
		if _, err := c.checkExprErr(s.Cond); err != nil {
			return err
		}
		return c.checkBlock(s.Body)
	case *ast.ForStmt:
		return c.checkForStmt(s)
	case *ast.MatchStmt:
		return c.checkMatchStmt(s)
	case *ast.ExprStmt:
		_, err := c.checkExprErr(s.Value)
		return err
	case *ast.PassStmt:
		return nil
	case *ast.YieldStmt:
		if s.Value != nil {
			_, err := c.checkExprErr(s.Value)
			return err
		}
		return nil
	default:
		return nil
	}
}

func (c *checker) checkBindingStmt(s *ast.BindingStmt) error {
	valType, err := c.checkExprErr(s.Value)
	if err != nil {
		return err
	}
	declared := valType
	if s.TypeAnn != nil {
		declared = resolveType(c.file, s.TypeAnn, c.table, c.handler)
		if valType != nil && !checktypes.Equal(declared, valType) && !(checktypes.IsNumeric(declared) && checktypes.IsNumeric(valType)) {
			if err := c.handler.HandleDiagnostic(reporter.Type, c.pos(s.Value),
				typeMismatchError{context: "binding " + s.Name.Name, expected: declared.String(), got: valType.String()}, nil); err != nil {
				return err
			}
		}
	}

	switch s.Kind {
	case ast.BindLet, ast.BindMut:
		return c.table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: s.Name.Name, Type: declared,
			Mutable: s.Kind == ast.BindMut, Origin: c.pos(s.Name),
		}, c.handler)
	default: // BindInferred
		if existing, ok := c.table.Lookup(s.Name.Name); ok && existing.Kind == symbols.Value {
			if !existing.Mutable {
				return c.handler.HandleDiagnostic(reporter.Type, c.pos(s.Name),
					immutableMutationError{name: s.Name.Name}, nil,
					"declare it with `mut` if it needs to be reassigned")
			}
			if !checktypes.Equal(existing.Type, declared) && !(checktypes.IsNumeric(existing.Type) && checktypes.IsNumeric(declared)) {
				return c.handler.HandleDiagnostic(reporter.Type, c.pos(s.Value),
					typeMismatchError{context: "reassignment of " + s.Name.Name, expected: existing.Type.String(), got: declared.String()}, nil)
			}
			return nil
		}
		return c.table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: s.Name.Name, Type: declared, Origin: c.pos(s.Name),
		}, c.handler)
	}
}

func (c *checker) checkReturnStmt(s *ast.ReturnStmt) error {
	if s.Value == nil {
		if c.funcResult != nil && !checktypes.Equal(c.funcResult, checktypes.Unit) {
			return c.handler.HandleDiagnostic(reporter.Type, c.pos(s),
				typeMismatchError{context: "return", expected: c.funcResult.String(), got: "unit"}, nil)
		}
		return nil
	}
	if c.funcResult != nil {
		if handled, err := c.checkSumConstructor(s.Value, c.funcResult); handled {
			return err
		}
	}
	got, err := c.checkExprErr(s.Value)
	if err != nil {
		return err
	}
	if got != nil && c.funcResult != nil && !checktypes.Equal(c.funcResult, got) && !(checktypes.IsNumeric(c.funcResult) && checktypes.IsNumeric(got)) {
		return c.handler.HandleDiagnostic(reporter.Type, c.pos(s.Value),
			typeMismatchError{context: "return", expected: c.funcResult.String(), got: got.String()}, nil)
	}
	return nil
}

// checkSumConstructor recognizes a return value of exactly `Ok(x)`, `Err(x)`,
// or `Some(x)` against the enclosing function's declared Result/Option
// return type. lower/expr.go already matches these three builtin
// constructor spellings directly rather than through a symbol-table entry
// (see DESIGN.md); the checker needs the same workaround, since neither
// `Ok` nor `Err` alone carries its sum type's other arm, and only the
// function's declared return type supplies it. Reports handled=false for
// anything else, leaving the caller to fall back to ordinary call checking.
func (c *checker) checkSumConstructor(e ast.Expr, want checktypes.Type) (handled bool, err error) {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false, nil
	}
	ident, ok := call.Func.(*ast.IdentNode)
	if !ok || len(call.Args) != 1 {
		return false, nil
	}
	var argWant checktypes.Type
	switch ident.Name {
	case "Ok":
		res, ok := want.(*checktypes.Result)
		if !ok {
			return false, nil
		}
		argWant = res.Ok
	case "Err":
		res, ok := want.(*checktypes.Result)
		if !ok {
			return false, nil
		}
		argWant = res.Err
	case "Some":
		opt, ok := want.(*checktypes.Option)
		if !ok {
			return false, nil
		}
		argWant = opt.Elem
	default:
		return false, nil
	}
	got, err := c.checkExprErr(call.Args[0])
	if err != nil {
		return true, err
	}
	if got != nil && !checktypes.Equal(argWant, got) && !(checktypes.IsNumeric(argWant) && checktypes.IsNumeric(got)) {
		return true, c.handler.HandleDiagnostic(reporter.Type, c.pos(call.Args[0]),
			typeMismatchError{context: ident.Name, expected: argWant.String(), got: got.String()}, nil)
	}
	if c.info != nil {
		c.info.Types[e] = want
	}
	return true, nil
}

func (c *checker) checkIfStmt(s *ast.IfStmt) error {
	if _, err := c.checkExprErr(s.Cond); err != nil {
		return err
	}
	if err := c.checkBlock(s.Body); err != nil {
		return err
	}
	if s.Elif != nil {
		return c.checkIfStmt(s.Elif)
	}
	if s.Else != nil {
		return c.checkBlock(s.Else)
	}
	return nil
}

func (c *checker) checkForStmt(s *ast.ForStmt) error {
	iterType, err := c.checkExprErr(s.Iter)
	if err != nil {
		return err
	}
	c.table.Push()
	defer c.table.Pop()
	elemType := elementTypeOf(iterType)
	if err := c.table.Declare(symbols.Entry{
		Kind: symbols.Value, Name: s.Var.Name, Type: elemType, Origin: c.pos(s.Var),
	}, c.handler); err != nil {
		return err
	}
	for _, stmt := range s.Body {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
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

func (c *checker) pos(n ast.Node) ast.SourcePos {
	if c.file == nil {
		return ast.UnknownPos("")
	}
	return c.file.Info.NodeInfo(n).Start()
}
