package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

func TestTableDeclareAndLookup(t *testing.T) {
	tbl := symbols.NewTable()
	handler := reporter.NewHandler(nil)

	err := tbl.Declare(symbols.Entry{Kind: symbols.Value, Name: "x", Type: checktypes.Int}, handler)
	require.NoError(t, err)

	entry, ok := tbl.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, checktypes.Int, entry.Type)
}

func TestTableLookupMissing(t *testing.T) {
	tbl := symbols.NewTable()
	_, ok := tbl.Lookup("nope")
	assert.False(t, ok)
}

func TestTableNestedScopeShadowing(t *testing.T) {
	tbl := symbols.NewTable()
	handler := reporter.NewHandler(nil)
	require.NoError(t, tbl.Declare(symbols.Entry{Kind: symbols.Value, Name: "x", Type: checktypes.Int}, handler))

	tbl.Push()
	require.NoError(t, tbl.Declare(symbols.Entry{Kind: symbols.Value, Name: "x", Type: checktypes.Str}, handler))
	inner, ok := tbl.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, checktypes.Str, inner.Type)
	tbl.Pop()

	outer, ok := tbl.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, checktypes.Int, outer.Type)
}

func TestTablePopPanicsAtModuleScope(t *testing.T) {
	tbl := symbols.NewTable()
	assert.Panics(t, func() { tbl.Pop() })
}

func TestScopeDeclareDuplicateReportsDiagnostic(t *testing.T) {
	var reported []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		reported = append(reported, err)
		return nil
	}, nil))

	tbl := symbols.NewTable()
	require.NoError(t, tbl.Declare(symbols.Entry{Kind: symbols.Value, Name: "x"}, handler))
	err := tbl.Declare(symbols.Entry{Kind: symbols.Value, Name: "x"}, handler)
	require.NoError(t, err)
	assert.Len(t, reported, 1)

	_, ok := tbl.Module().Lookup("x")
	assert.True(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "value", symbols.Value.String())
	assert.Equal(t, "function", symbols.Function.String())
	assert.Equal(t, "type", symbols.TypeName.String())
	assert.Equal(t, "enum variant", symbols.Variant.String())
	assert.Equal(t, "module", symbols.ModuleAlias.String())
}
