package incan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, contents string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestCompileSingleModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.incn", "def main() -> None:\n    println(\"Hello, Incan!\")\n")

	out := t.TempDir()
	comp := Compiler{Root: root}
	comp.ConfigPath = filepath.Join(root, "incan.yaml")

	// No incan.yaml present; redirect the default output directory into a
	// scratch dir by writing one that only overrides out_dir.
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(out)+"\n")

	result, err := comp.Compile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Emitted.Files)
	manifest, err := os.ReadFile(filepath.Join(out, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "[package]")

	generated, err := os.ReadFile(filepath.Join(out, "src", "main.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(generated), "fn main")
	assert.Contains(t, string(generated), "println!")
}

func TestCompileImportCycleReportsDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.incn", "import b\n\ndef from_a() -> None:\n    pass\n")
	writeFile(t, root, "b.incn", "import a\n\ndef from_b() -> None:\n    pass\n")
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(t.TempDir())+"\n")

	comp := Compiler{Root: root}
	_, err := comp.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestCompileNoFiles(t *testing.T) {
	root := t.TempDir()
	comp := Compiler{Root: root}
	result, err := comp.Compile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

// compileOne is the single-module variant of the writeFile/Compile/inspect
// idiom TestCompileSingleModule establishes, shared by the scenario tests
// below so each one only states its source and its expectations.
func compileOne(t *testing.T, source string) (*Result, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "main.incn", source)
	out := t.TempDir()
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(out)+"\n")

	comp := Compiler{Root: root}
	result, err := comp.Compile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	generated, err := os.ReadFile(filepath.Join(out, "src", "main.rs"))
	require.NoError(t, err)
	return result, string(generated)
}

// TestScenarioHelloWorld covers spec's literal "hello world" example: a
// single println call compiles to a runnable main.
func TestScenarioHelloWorld(t *testing.T) {
	_, generated := compileOne(t, "def main() -> None:\n    println(\"Hello, Incan!\")\n")
	assert.Contains(t, generated, "fn main")
	assert.Contains(t, generated, "println!")
	assert.Contains(t, generated, `"Hello, Incan!"`)
}

// TestScenarioResultPropagation covers spec's result-propagation example: a
// Result-returning function matched exhaustively on Ok/Err at the call site.
func TestScenarioResultPropagation(t *testing.T) {
	source := "def parse_port(s: str) -> Result[int, str]:\n" +
		"    return Ok(int(s))\n" +
		"\n" +
		"def main() -> None:\n" +
		"    match parse_port(\"8080\"):\n" +
		"        case Ok(p): println(f\"port={p}\")\n" +
		"        case Err(e): println(f\"error: {e}\")\n"
	_, generated := compileOne(t, source)
	assert.Contains(t, generated, "fn parse_port")
	assert.Contains(t, generated, "Ok(")
	assert.Contains(t, generated, "match parse_port")
}

// TestScenarioMutationGate covers spec's illegal-mutation example: a plain
// `let` binding reassigned inside a nested block must fail to compile with
// spec's exact diagnostic wording.
func TestScenarioMutationGate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.incn",
		"def f() -> int:\n    let x = 1\n    if true:\n        x = 2\n    return x\n")
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(t.TempDir())+"\n")

	comp := Compiler{Root: root}
	_, err := comp.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reassign immutable variable")
	assert.Contains(t, err.Error(), `"x"`)
}

// TestScenarioConstNotEvaluable covers spec's const-evaluability example: a
// const initializer that calls a runtime function must fail to compile.
func TestScenarioConstNotEvaluable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.incn", "const N: int = len(\"abc\")\n")
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(t.TempDir())+"\n")

	comp := Compiler{Root: root}
	_, err := comp.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "const initializer is not const-evaluable")
}

// TestScenarioNegativeSlice covers spec's negative-step slicing example:
// `s[::-1]` reverses a string by Unicode scalar, not by byte.
func TestScenarioNegativeSlice(t *testing.T) {
	source := "def main() -> None:\n    s = \"héllo\"\n    println(s[::-1])\n"
	_, generated := compileOne(t, source)
	assert.Contains(t, generated, "fn main")
	assert.Contains(t, generated, "checked_slice_str")
	assert.Contains(t, generated, "-1")
}

// TestScenarioIndexOutOfRange covers spec's out-of-bounds index example: the
// generated code must carry the exact IndexError panic wording, since there
// is no compile-time way to reject a literal index against a runtime list.
func TestScenarioIndexOutOfRange(t *testing.T) {
	source := "def main() -> None:\n    xs: List[int] = [1, 2, 3]\n    println(xs[99])\n"
	root := t.TempDir()
	writeFile(t, root, "main.incn", source)
	out := t.TempDir()
	writeFile(t, root, "incan.yaml", "out_dir: "+filepath.ToSlash(out)+"\n")

	comp := Compiler{Root: root}
	result, err := comp.Compile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	mainRs, err := os.ReadFile(filepath.Join(out, "src", "main.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(mainRs), "fn main")
	assert.Contains(t, string(mainRs), "checked_index")

	support, err := os.ReadFile(filepath.Join(out, "src", "support.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(support), "IndexError: index {} out of range for list of length {}")
}
