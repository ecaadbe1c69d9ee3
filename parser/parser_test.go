package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/reporter"
)

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.Parse("test.incn", []byte(src), reporter.NewHandler(nil))
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

func TestParseFuncDecl(t *testing.T) {
	f := parseOK(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	require.Len(t, f.Decls, 1)
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Name)
	assert.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
}

func TestParseModelDecl(t *testing.T) {
	f := parseOK(t, "model Point:\n    x: int\n    y: int\n")
	require.Len(t, f.Decls, 1)
	m, ok := f.Decls[0].(*ast.ModelDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", m.Name.Name)
	assert.Len(t, m.Fields, 2)
}

func TestParseClassDecl(t *testing.T) {
	f := parseOK(t, "class Counter:\n    count: int\n\n    def bump(self) -> None:\n        pass\n")
	require.Len(t, f.Decls, 1)
	c, ok := f.Decls[0].(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "Counter", c.Name.Name)
	assert.Len(t, c.Methods, 1)
}

func TestParseEnumDecl(t *testing.T) {
	f := parseOK(t, "enum Shape:\n    Circle(float)\n    Square(float)\n")
	require.Len(t, f.Decls, 1)
	e, ok := f.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Len(t, e.Variants, 2)
}

func TestParseNewtypeDecl(t *testing.T) {
	f := parseOK(t, "newtype UserID = int\n")
	require.Len(t, f.Decls, 1)
	_, ok := f.Decls[0].(*ast.NewtypeDecl)
	assert.True(t, ok)
}

func TestParseConstDecl(t *testing.T) {
	f := parseOK(t, "const MAX: int = 100\n")
	require.Len(t, f.Decls, 1)
	c, ok := f.Decls[0].(*ast.ConstDecl)
	require.True(t, ok)
	assert.Equal(t, "MAX", c.Name.Name)
}

func TestParseImportDecl(t *testing.T) {
	f := parseOK(t, "import a.b.c as abc\n")
	require.Len(t, f.Decls, 1)
	imp, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "abc", imp.Alias.Name)
	assert.Len(t, imp.Path, 3)
}

func TestParseImportPathWithColonSeparators(t *testing.T) {
	f := parseOK(t, "import a::b::c as abc\n")
	require.Len(t, f.Decls, 1)
	imp, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "abc", imp.Alias.Name)
	require.Len(t, imp.Path, 3)
	assert.Equal(t, "c", imp.Path[2].Name)
}

func TestParseImportCratePath(t *testing.T) {
	f := parseOK(t, "import crate::a::b\n")
	imp, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	require.Len(t, imp.Path, 3)
	assert.Equal(t, "crate", imp.Path[0].Name)
}

func TestParseImportSuperWalkUp(t *testing.T) {
	f := parseOK(t, "import super::sibling\n")
	imp, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	require.Len(t, imp.Path, 2)
	assert.Equal(t, "super", imp.Path[0].Name)
	assert.Equal(t, "sibling", imp.Path[1].Name)
}

func TestParseImportDotDotWalkUp(t *testing.T) {
	f := parseOK(t, "import ..sibling\n")
	imp, ok := f.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	require.Len(t, imp.Path, 2)
	assert.Equal(t, "super", imp.Path[0].Name)
	assert.Equal(t, "sibling", imp.Path[1].Name)
}

func TestParseFromImport(t *testing.T) {
	f := parseOK(t, "from a.b import c, d as dd\n")
	require.Len(t, f.Decls, 1)
	imp, ok := f.Decls[0].(*ast.ImportFromDecl)
	require.True(t, ok)
	require.Len(t, imp.Path, 2)
	require.Len(t, imp.Names, 2)
	assert.Equal(t, "c", imp.Names[0].Name.Name)
	assert.Nil(t, imp.Names[0].Alias)
	assert.Equal(t, "d", imp.Names[1].Name.Name)
	require.NotNil(t, imp.Names[1].Alias)
	assert.Equal(t, "dd", imp.Names[1].Alias.Name)
}

func TestParseIfElifElse(t *testing.T) {
	f := parseOK(t, "def f() -> None:\n    if a:\n        pass\n    elif b:\n        pass\n    else:\n        pass\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body, 1)
	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Elif)
	assert.NotNil(t, ifStmt.Elif.Else)
}

func TestParseMatchStmt(t *testing.T) {
	f := parseOK(t, "def f(x: int) -> int:\n    match x:\n        case 0:\n            return 1\n        case _:\n            return 2\n")
	require.Len(t, f.Decls, 1)
}

func TestParseMatchStmtInlineArmBody(t *testing.T) {
	f := parseOK(t, "def f(x: int) -> None:\n    match x:\n        case 0: println(\"zero\")\n        case _: println(\"other\")\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	match, ok := fn.Body[0].(*ast.MatchStmt)
	require.True(t, ok)
	require.Len(t, match.Arms, 2)
	require.Len(t, match.Arms[0].Body, 1)
	_, ok = match.Arms[0].Body[0].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseBinaryPrecedence(t *testing.T) {
	f := parseOK(t, "def f() -> int:\n    return 1 + 2 * 3\n")
	fn := f.Decls[0].(*ast.FuncDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseFString(t *testing.T) {
	f := parseOK(t, "def f(name: str) -> None:\n    println(f\"hello {name}\")\n")
	require.Len(t, f.Decls, 1)
}
