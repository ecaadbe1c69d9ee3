package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/check"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/lower"
	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
)

func lowerSource(t *testing.T, src string) *ir.Program {
	t.Helper()
	f, err := parser.Parse("main.incn", []byte(src), reporter.NewHandler(nil))
	require.NoError(t, err)

	handler := reporter.NewHandler(nil)
	modules := []resolver.Module{{Path: "main", File: f}}
	prog, err := check.Collect(modules, handler)
	require.NoError(t, err)

	info, err := check.Check(prog, handler)
	require.NoError(t, err)
	require.NoError(t, handler.Error())

	irProg, err := lower.Lower(prog, info, handler)
	require.NoError(t, err)
	return irProg
}

func TestLowerSimpleFunction(t *testing.T) {
	prog := lowerSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	require.Len(t, prog.Files, 1)
	require.Len(t, prog.Files[0].Decls, 1)

	fn, ok := prog.Files[0].Decls[0].(*ir.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
}

func TestLowerModel(t *testing.T) {
	prog := lowerSource(t, "model Point:\n    x: int\n    y: int\n")
	require.Len(t, prog.Files[0].Decls, 1)
	model, ok := prog.Files[0].Decls[0].(*ir.ModelDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", model.Name)
	assert.Len(t, model.Fields, 2)
}

func TestLowerBuiltinCallTagged(t *testing.T) {
	prog := lowerSource(t, "def main() -> None:\n    println(\"hi\")\n")
	fn := prog.Files[0].Decls[0].(*ir.FuncDecl)
	require.Len(t, fn.Body, 1)
	exprStmt, ok := fn.Body[0].(*ir.ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.Value.(*ir.CallExpr)
	require.True(t, ok)
	assert.Equal(t, ir.CallBuiltin, call.Kind)
}

func TestLowerFromImportRendersUseOfBoundName(t *testing.T) {
	lib, err := parser.Parse("lib.incn", []byte("def helper() -> int:\n    return 7\n"), reporter.NewHandler(nil))
	require.NoError(t, err)
	main, err := parser.Parse("main.incn", []byte("from lib import helper as h\n\ndef f() -> int:\n    return h()\n"), reporter.NewHandler(nil))
	require.NoError(t, err)

	handler := reporter.NewHandler(nil)
	modules := []resolver.Module{{Path: "lib", File: lib}, {Path: "main", File: main}}
	prog, err := check.Collect(modules, handler)
	require.NoError(t, err)

	info, err := check.Check(prog, handler)
	require.NoError(t, err)
	require.NoError(t, handler.Error())

	irProg, err := lower.Lower(prog, info, handler)
	require.NoError(t, err)

	var mainFile *ir.File
	for _, f := range irProg.Files {
		if f.Path == "main" {
			mainFile = f
		}
	}
	require.NotNil(t, mainFile)

	var imp *ir.Import
	for _, d := range mainFile.Decls {
		if i, ok := d.(*ir.Import); ok {
			imp = i
		}
	}
	require.NotNil(t, imp)
	assert.Equal(t, "lib.helper", imp.Path)
	assert.Equal(t, "h", imp.Alias)
	assert.False(t, imp.External)
}

func TestLowerClassWithTraitDefault(t *testing.T) {
	prog := lowerSource(t, "trait Greeter:\n    def greet(self) -> str:\n        return \"hi\"\n\nclass Person(Greeter):\n    name: str\n")
	var class *ir.ClassDecl
	for _, d := range prog.Files[0].Decls {
		if c, ok := d.(*ir.ClassDecl); ok {
			class = c
		}
	}
	require.NotNil(t, class)
	var hasGreet bool
	for _, m := range class.Methods {
		if m.Name == "greet" {
			hasGreet = true
		}
	}
	assert.True(t, hasGreet)
}
