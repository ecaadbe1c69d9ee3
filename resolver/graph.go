package resolver

import (
	"strings"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/internal/toposort"
	"github.com/dannys-code-corner/incan/reporter"
)

// Module is one parsed, resolved source file plus the dotted import path it
// is known by. Graph builds and orders a set of these.
type Module struct {
	Path string
	File *ast.File
}

// importPaths returns the dotted path named by every import declaration at
// the top of a module, in source order.
func importPaths(f *ast.File) []string {
	var out []string
	for _, d := range f.Decls {
		var path []*ast.IdentNode
		switch imp := d.(type) {
		case *ast.ImportDecl:
			path = imp.Path
		case *ast.ImportFromDecl:
			path = imp.Path
		default:
			continue
		}
		segs := make([]string, len(path))
		for i, id := range path {
			segs[i] = id.Name
		}
		out = append(out, strings.Join(segs, "."))
	}
	return out
}

// Order topologically sorts modules so that every module appears before any
// module that imports it. An import cycle is reported through handler as a
// Resolve diagnostic (on the position of the first module in the cycle) and
// Order returns a nil slice; it never panics on a cycle.
func Order(modules []Module, handler *reporter.Handler) ([]Module, error) {
	sorted, err := toposort.Sort(modules,
		func(m Module) string { return m.Path },
		func(m Module) []string { return importPaths(m.File) },
	)
	if err == nil {
		return sorted, nil
	}

	cycleErr, ok := err.(*toposort.CycleError[string])
	if !ok {
		return nil, err
	}

	pos := ast.UnknownPos(cycleErr.Cycle[0])
	for _, m := range modules {
		if m.Path == cycleErr.Cycle[0] {
			pos = m.File.Info.SourcePos(0)
			break
		}
	}
	return nil, handler.HandleDiagnostic(reporter.Resolve, pos, cycleErr, nil,
		"break the cycle by removing or restructuring one of these imports")
}
