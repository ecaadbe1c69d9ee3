// Package lower turns a checked ast.File, together with the check.Info side
// table the checking pass produced, into an ir.Program: the ownership,
// dispatch, and conversion decisions the checker deliberately left for this
// pass (spec §4.4) happen here, walking the already-typed AST once more with
// a fresh symbol table rebuilt in lock-step with the checker's own scope
// discipline.
package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/check"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

// lowerer threads the state lowering one module needs.
type lowerer struct {
	path    string
	file    *ast.File
	info    *check.Info
	prog    *check.Program
	table   *symbols.Table
	handler *reporter.Handler
	traits  map[string]*ast.TraitDecl
	classes map[string]*ast.ClassDecl
	externs map[string]bool

	classCache map[string]*classLowering

	// funcResult is the declared result type of the function currently
	// being lowered, consulted by a return statement to decide its
	// Conversion the same way check.checker.funcResult does.
	funcResult checktypes.Type
}

// Lower runs lowering over every module of prog, in the same order Check
// already validated them, producing one ir.File per module.
func Lower(prog *check.Program, info *check.Info, handler *reporter.Handler) (*ir.Program, error) {
	out := &ir.Program{}
	for _, m := range prog.Modules {
		f, err := lowerModule(m.Path, m.File, prog, info, handler)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, f)
	}
	return out, nil
}

func lowerModule(path string, file *ast.File, prog *check.Program, info *check.Info, handler *reporter.Handler) (*ir.File, error) {
	l := &lowerer{
		path:       path,
		file:       file,
		info:       info,
		prog:       prog,
		table:      prog.Tables[path],
		handler:    handler,
		traits:     make(map[string]*ast.TraitDecl),
		classes:    make(map[string]*ast.ClassDecl),
		externs:    make(map[string]bool),
		classCache: make(map[string]*classLowering),
	}
	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.TraitDecl:
			l.traits[d.Name.Name] = d
		case *ast.ClassDecl:
			l.classes[d.Name.Name] = d
		}
	}

	out := &ir.File{Path: path}
	for _, d := range file.Decls {
		lowered, err := l.lowerDecl(d)
		if err != nil {
			return nil, err
		}
		if lowered != nil {
			out.Decls = append(out.Decls, lowered...)
		}
	}
	for name := range l.externs {
		out.Externs = append(out.Externs, name)
	}
	return out, nil
}

func (l *lowerer) pos(n ast.Node) ast.SourcePos {
	if l.file == nil {
		return ast.UnknownPos("")
	}
	return l.file.Info.NodeInfo(n).Start()
}
