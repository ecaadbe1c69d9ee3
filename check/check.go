package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
	"github.com/dannys-code-corner/incan/symbols"
)

// Info is the typed-AST output of the checking pass (spec §4.3.3): the
// resolved type of every expression, and the resolved symbol behind every
// identifier, keyed by node identity. Lowering reads this alongside the
// plain ast.File to build the IR.
type Info struct {
	Types  map[ast.Expr]checktypes.Type
	Idents map[*ast.IdentNode]symbols.Entry
}

func newInfo() *Info {
	return &Info{Types: make(map[ast.Expr]checktypes.Type), Idents: make(map[*ast.IdentNode]symbols.Entry)}
}

// Check runs the checking pass (spec §4.3.2) over every function and method
// body in every module of prog, which must already have been through
// Collect. It returns a shared Info for the whole program.
func Check(prog *Program, handler *reporter.Handler) (*Info, error) {
	info := newInfo()
	for _, m := range prog.Modules {
		if err := checkModule(m, prog, info, handler); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func checkModule(m resolver.Module, prog *Program, info *Info, handler *reporter.Handler) error {
	if err := checkConstCycles(m.File, handler); err != nil {
		return err
	}
	table := prog.Tables[m.Path]
	for _, d := range m.File.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			if err := checkFuncDecl(d, m.File, table, prog, info, handler); err != nil {
				return err
			}
		case *ast.ClassDecl:
			for _, method := range d.Methods {
				if err := checkFuncDecl(method, m.File, table, prog, info, handler); err != nil {
					return err
				}
			}
		case *ast.ConstDecl:
			if err := checkConstDecl(d, m.File, table, handler); err != nil {
				return err
			}
		}
	}
	return nil
}

// checker threads the state a single function body's checking needs.
type checker struct {
	file       *ast.File
	table      *symbols.Table
	prog       *Program
	info       *Info
	handler    *reporter.Handler
	funcResult checktypes.Type // declared return type of the enclosing function
	inAsync    bool
}

func checkFuncDecl(d *ast.FuncDecl, file *ast.File, table *symbols.Table, prog *Program, info *Info, handler *reporter.Handler) error {
	table.Push()
	defer table.Pop()

	if d.Receiver != nil {
		if err := table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: "self", Mutable: d.Receiver.Mutable,
			Origin: file.Info.NodeInfo(d.Receiver.Name).Start(),
		}, handler); err != nil {
			return err
		}
	}
	for _, p := range d.Params {
		if err := table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: p.Name.Name,
			Type: resolveType(file, p.Type, table, handler), Origin: file.Info.NodeInfo(p.Name).Start(),
		}, handler); err != nil {
			return err
		}
	}

	result := checktypes.Type(checktypes.Unit)
	if d.Result != nil {
		result = resolveType(file, d.Result, table, handler)
	}
	c := &checker{file: file, table: table, prog: prog, info: info, handler: handler, funcResult: result, inAsync: d.Async}
	return c.checkBlock(d.Body)
}

func checkConstDecl(d *ast.ConstDecl, file *ast.File, table *symbols.Table, handler *reporter.Handler) error {
	declared := resolveType(file, d.Type, table, handler)
	if err := checkConstExpr(d.Value, file, handler); err != nil {
		return err
	}
	c := &checker{file: file, table: table, handler: handler, info: newInfo()}
	got := c.typeOfExpr(d.Value)
	if got != nil && !checktypes.Equal(declared, got) && !(checktypes.IsNumeric(declared) && checktypes.IsNumeric(got)) {
		return handler.HandleDiagnostic(reporter.Type, posOf(file, d.Value),
			typeMismatchError{context: "const " + d.Name.Name, expected: declared.String(), got: got.String()}, nil)
	}
	return nil
}

// checkConstExpr enforces spec's restricted const evaluator grammar:
// literals, arithmetic/boolean ops, string concatenation, const container
// literals, and references to other consts; calls, comprehensions, ranges,
// and f-strings are rejected.
func checkConstExpr(e ast.Expr, file *ast.File, handler *reporter.Handler) error {
	switch e := e.(type) {
	case *ast.IntLiteralNode, *ast.FloatLiteralNode, *ast.StringLiteralNode,
		*ast.BoolLiteralNode, *ast.BytesLiteralNode, *ast.IdentNode:
		return nil
	case *ast.UnaryExpr:
		return checkConstExpr(e.Operand, file, handler)
	case *ast.BinaryExpr:
		if err := checkConstExpr(e.Left, file, handler); err != nil {
			return err
		}
		return checkConstExpr(e.Right, file, handler)
	case *ast.TupleExpr:
		for _, el := range e.Elems {
			if err := checkConstExpr(el, file, handler); err != nil {
				return err
			}
		}
		return nil
	case *ast.ListExpr:
		for _, el := range e.Elems {
			if err := checkConstExpr(el, file, handler); err != nil {
				return err
			}
		}
		return nil
	case *ast.SetExpr:
		for _, el := range e.Elems {
			if err := checkConstExpr(el, file, handler); err != nil {
				return err
			}
		}
		return nil
	case *ast.DictExpr:
		for _, entry := range e.Entries {
			if err := checkConstExpr(entry.Key, file, handler); err != nil {
				return err
			}
			if err := checkConstExpr(entry.Value, file, handler); err != nil {
				return err
			}
		}
		return nil
	default:
		return handler.HandleDiagnostic(reporter.Type, posOf(file, e),
			constNotConstantError{reason: "only literals, const references, and const-literal containers are allowed"}, nil)
	}
}
