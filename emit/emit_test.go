package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/check"
	"github.com/dannys-code-corner/incan/emit"
	"github.com/dannys-code-corner/incan/lower"
	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
)

func emitSource(t *testing.T, src string) *emit.Result {
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

	result, err := emit.Emit(irProg)
	require.NoError(t, err)
	return result
}

func TestEmitFunctionRendersRustSyntax(t *testing.T) {
	result := emitSource(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	require.NotEmpty(t, result.Files)

	var mainSrc string
	for _, f := range result.Files {
		if f.Path == "main.rs" {
			mainSrc = f.Text
		}
	}
	require.NotEmpty(t, mainSrc)
	assert.Contains(t, mainSrc, "fn add")
	assert.Contains(t, mainSrc, "-> i64")
}

func TestEmitIncludesSupportModule(t *testing.T) {
	result := emitSource(t, "def main() -> None:\n    println(\"hi\")\n")
	var found bool
	for _, f := range result.Files {
		if f.Path == "support.rs" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEmitModelRendersStruct(t *testing.T) {
	result := emitSource(t, "model Point:\n    x: int\n    y: int\n")
	var mainSrc string
	for _, f := range result.Files {
		if f.Path == "main.rs" {
			mainSrc = f.Text
		}
	}
	assert.Contains(t, mainSrc, "struct Point")
}

func TestEmitExternsAreSorted(t *testing.T) {
	result := emitSource(t, "import rust.serde_json\nimport rust.anyhow\n\ndef main() -> None:\n    pass\n")
	assert.Equal(t, []string{"anyhow", "serde_json"}, result.Externs)
}

func TestEmitQualifiedExternCallUsesRustPath(t *testing.T) {
	result := emitSource(t, "import rust.serde_json\n\ndef main() -> None:\n    serde_json.to_string(1)\n")

	var mainSrc string
	for _, f := range result.Files {
		if f.Path == "main.rs" {
			mainSrc = f.Text
		}
	}
	require.NotEmpty(t, mainSrc)
	assert.Contains(t, mainSrc, "use serde_json;")
	assert.Contains(t, mainSrc, "serde_json::to_string(")
	assert.NotContains(t, mainSrc, "rust::")
	assert.NotContains(t, mainSrc, "rust.")
}
