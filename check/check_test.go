package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/check"
	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
)

func mustParse(t *testing.T, path, src string) resolver.Module {
	t.Helper()
	f, err := parser.Parse(path+".incn", []byte(src), reporter.NewHandler(nil))
	require.NoError(t, err)
	return resolver.Module{Path: path, File: f}
}

func TestCollectAndCheckSimpleFunction(t *testing.T) {
	m := mustParse(t, "main", "def add(a: int, b: int) -> int:\n    return a + b\n")
	handler := reporter.NewHandler(nil)

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)
	require.NotNil(t, prog)

	info, err := check.Check(prog, handler)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.NoError(t, handler.Error())
}

func TestCheckBuiltinCall(t *testing.T) {
	m := mustParse(t, "main", "def main() -> None:\n    println(\"hi\")\n")
	handler := reporter.NewHandler(nil)

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	assert.NoError(t, handler.Error())
}

func TestCheckReportsUnknownSymbol(t *testing.T) {
	m := mustParse(t, "main", "def main() -> int:\n    return undefined_name\n")

	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	assert.NotEmpty(t, reported)
	assert.ErrorIs(t, handler.Error(), reporter.ErrInvalidSource)
}

func TestCollectModelDecl(t *testing.T) {
	m := mustParse(t, "main", "model Point:\n    x: int\n    y: int\n")
	handler := reporter.NewHandler(nil)

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)
	require.NotNil(t, prog)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	require.NoError(t, handler.Error())
}

func TestFromImportBindsNameDirectly(t *testing.T) {
	lib := mustParse(t, "lib", "def helper() -> int:\n    return 7\n")
	main := mustParse(t, "main", "from lib import helper as h\n\ndef f() -> int:\n    return h()\n")
	handler := reporter.NewHandler(nil)

	prog, err := check.Collect([]resolver.Module{lib, main}, handler)
	require.NoError(t, err)
	require.NotNil(t, prog)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	require.NoError(t, handler.Error())
}

func TestFromImportUnknownMemberReportsDiagnostic(t *testing.T) {
	lib := mustParse(t, "lib", "def helper() -> int:\n    return 7\n")
	main := mustParse(t, "main", "from lib import nonexistent\n")

	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	_, err := check.Collect([]resolver.Module{lib, main}, handler)
	require.NoError(t, err)
	assert.NotEmpty(t, reported)
	assert.ErrorIs(t, handler.Error(), reporter.ErrInvalidSource)
}

func TestTraitRequiresFieldSatisfied(t *testing.T) {
	src := "trait Named:\n" +
		"    @requires(name: str)\n" +
		"    def greet(self) -> None:\n" +
		"        pass\n" +
		"\n" +
		"class Dog(Named):\n" +
		"    name: str\n"
	m := mustParse(t, "main", src)
	handler := reporter.NewHandler(nil)

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	assert.NoError(t, handler.Error())
}

func TestTraitRequiresFieldMissing(t *testing.T) {
	src := "trait Named:\n" +
		"    @requires(name: str)\n" +
		"    def greet(self) -> None:\n" +
		"        pass\n" +
		"\n" +
		"class Dog(Named):\n" +
		"    age: int\n"
	m := mustParse(t, "main", src)

	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	assert.NotEmpty(t, reported)
	assert.ErrorIs(t, handler.Error(), reporter.ErrInvalidSource)
}

func TestTraitRequiresFieldWrongType(t *testing.T) {
	src := "trait Named:\n" +
		"    @requires(name: str)\n" +
		"    def greet(self) -> None:\n" +
		"        pass\n" +
		"\n" +
		"class Dog(Named):\n" +
		"    name: int\n"
	m := mustParse(t, "main", src)

	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	prog, err := check.Collect([]resolver.Module{m}, handler)
	require.NoError(t, err)

	_, err = check.Check(prog, handler)
	require.NoError(t, err)
	assert.NotEmpty(t, reported)
	assert.ErrorIs(t, handler.Error(), reporter.ErrInvalidSource)
}
