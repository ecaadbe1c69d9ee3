package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/internal/toposort"
	"github.com/dannys-code-corner/incan/reporter"
)

// checkConstCycles detects a dependency cycle among a module's own const
// declarations (spec's "cycle in consts" error) before the checking pass
// evaluates any of their initializers, using the same toposort.Sort the
// module resolver uses for import cycles.
func checkConstCycles(file *ast.File, handler *reporter.Handler) error {
	var consts []*ast.ConstDecl
	byName := make(map[string]*ast.ConstDecl)
	for _, d := range file.Decls {
		if c, ok := d.(*ast.ConstDecl); ok {
			consts = append(consts, c)
			byName[c.Name.Name] = c
		}
	}
	if len(consts) < 2 {
		return nil
	}

	_, err := toposort.Sort(consts,
		func(c *ast.ConstDecl) string { return c.Name.Name },
		func(c *ast.ConstDecl) []string { return constRefs(c.Value, byName) },
	)
	if err == nil {
		return nil
	}
	cycleErr, ok := err.(*toposort.CycleError[string])
	if !ok {
		return err
	}
	pos := posOf(file, byName[cycleErr.Cycle[0]])
	return handler.HandleDiagnostic(reporter.Type, pos, constCycleError{names: cycleErr.Cycle}, nil,
		"break the cycle by removing or reordering one of these const references")
}

// constRefs collects the names of other module-level consts referenced,
// directly or through nested literals, by e.
func constRefs(e ast.Expr, byName map[string]*ast.ConstDecl) []string {
	var names []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.IdentNode:
			if _, ok := byName[e.Name]; ok {
				names = append(names, e.Name)
			}
		case *ast.UnaryExpr:
			walk(e.Operand)
		case *ast.BinaryExpr:
			walk(e.Left)
			walk(e.Right)
		case *ast.TupleExpr:
			for _, el := range e.Elems {
				walk(el)
			}
		case *ast.ListExpr:
			for _, el := range e.Elems {
				walk(el)
			}
		case *ast.SetExpr:
			for _, el := range e.Elems {
				walk(el)
			}
		case *ast.DictExpr:
			for _, entry := range e.Entries {
				walk(entry.Key)
				walk(entry.Value)
			}
		}
	}
	walk(e)
	return names
}
