package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
)

func mustModule(t *testing.T, path, src string) resolver.Module {
	t.Helper()
	f, err := parser.Parse(path+".incn", []byte(src), reporter.NewHandler(nil))
	require.NoError(t, err)
	return resolver.Module{Path: path, File: f}
}

func TestOrderPutsDependenciesFirst(t *testing.T) {
	a := mustModule(t, "a", "def from_a() -> None:\n    pass\n")
	b := mustModule(t, "b", "import a\n\ndef from_b() -> None:\n    pass\n")
	c := mustModule(t, "c", "import a\nimport b\n\ndef from_c() -> None:\n    pass\n")

	ordered, err := resolver.Order([]resolver.Module{c, b, a}, reporter.NewHandler(nil))
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	index := make(map[string]int, 3)
	for i, m := range ordered {
		index[m.Path] = i
	}
	assert.Less(t, index["a"], index["b"])
	assert.Less(t, index["b"], index["c"])
}

func TestOrderReportsCycleAsDiagnostic(t *testing.T) {
	a := mustModule(t, "a", "import b\n\ndef from_a() -> None:\n    pass\n")
	b := mustModule(t, "b", "import a\n\ndef from_b() -> None:\n    pass\n")

	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	_, err := resolver.Order([]resolver.Module{a, b}, handler)
	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.Contains(t, reported[0].Error(), "cycle")
}
