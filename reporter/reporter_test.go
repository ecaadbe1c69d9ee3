package reporter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/reporter"
)

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "lex", reporter.Lex.String())
	assert.Equal(t, "parse", reporter.Parse.String())
	assert.Equal(t, "resolve", reporter.Resolve.String())
	assert.Equal(t, "type", reporter.Type.String())
	assert.Equal(t, "lowering", reporter.Lowering.String())
	assert.Equal(t, "emission", reporter.Emission.String())
	assert.Equal(t, "build", reporter.Build.String())
	assert.Equal(t, "error", reporter.Uncategorized.String())
}

func TestDiagnosticCarriesSecondaryAndHints(t *testing.T) {
	pos := ast.SourcePos{Filename: "main.incn", Line: 3, Col: 5}
	rel := reporter.Related{Pos: ast.SourcePos{Filename: "main.incn", Line: 1, Col: 1}, Message: "declared here"}
	underlying := errors.New("mismatched types")
	err := reporter.Diagnostic(reporter.Type, pos, underlying, []reporter.Related{rel}, "did you mean str?")

	assert.Equal(t, pos, err.GetPosition())
	assert.Equal(t, reporter.Type, err.GetCategory())
	require.Len(t, err.GetSecondary(), 1)
	assert.Equal(t, "declared here", err.GetSecondary()[0].Message)
	require.Len(t, err.GetHints(), 1)
	assert.Equal(t, "did you mean str?", err.GetHints()[0])
	assert.ErrorIs(t, err.Unwrap(), underlying)
}

func TestHandlerDefaultAbortsOnFirstError(t *testing.T) {
	handler := reporter.NewHandler(nil)
	pos := ast.SourcePos{Filename: "main.incn", Line: 1, Col: 1}

	err := handler.HandleDiagnostic(reporter.Type, pos, errors.New("boom"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, handler.Error(), err)
}

func TestHandlerCustomReporterCollectsMultiple(t *testing.T) {
	var collected []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		collected = append(collected, err)
		return nil
	}, nil))
	pos := ast.SourcePos{Filename: "main.incn", Line: 1, Col: 1}

	require.NoError(t, handler.HandleDiagnostic(reporter.Type, pos, errors.New("first"), nil))
	require.NoError(t, handler.HandleDiagnostic(reporter.Type, pos, errors.New("second"), nil))
	assert.Len(t, collected, 2)
}

func TestRenderIncludesHeadlineAndCaret(t *testing.T) {
	pos := ast.SourcePos{Filename: "main.incn", Line: 1, Col: 5}
	err := reporter.Diagnostic(reporter.Type, pos, errors.New("mismatched types"), nil)

	out := reporter.Render(err, []byte("def add():\n    pass\n"))
	assert.Contains(t, out, "type error:")
	assert.Contains(t, out, "mismatched types")
	assert.Contains(t, out, "def add():")
	assert.Contains(t, out, "^")
}

func TestRenderWithoutSourceOmitsSnippet(t *testing.T) {
	pos := ast.SourcePos{Filename: "main.incn", Line: 1, Col: 5}
	err := reporter.Error(pos, errors.New("boom"))

	out := reporter.Render(err, nil)
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "^")
}

func TestRenderIncludesHints(t *testing.T) {
	pos := ast.SourcePos{Filename: "main.incn", Line: 1, Col: 1}
	err := reporter.Diagnostic(reporter.Resolve, pos, errors.New("unknown module"), nil, "check the import path")

	out := reporter.Render(err, nil)
	assert.Contains(t, out, "hint: check the import path")
}
