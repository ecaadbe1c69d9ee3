package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
)

// typeOf recovers the type checking recorded for e, falling back to Unit for
// a node checking never annotated (a pattern sub-expression, or a statement
// with no expression result).
func (l *lowerer) typeOf(e ast.Expr) checktypes.Type {
	if t, ok := l.info.Types[e]; ok && t != nil {
		return t
	}
	return checktypes.Unit
}

// convertFor decides the Conversion a binding, reassignment, or return
// boundary needs: a numeric width/kind change takes priority (spec's
// explicit, narrow int<->float promotion), otherwise a borrowed source
// feeding an owned target needs a clone so the target does not outlive a
// reference it does not own.
func convertFor(value ir.Expr, declared checktypes.Type) ir.Conversion {
	got := value.Type().Base
	if got != nil && declared != nil && checktypes.IsNumeric(declared) && checktypes.IsNumeric(got) && !checktypes.Equal(declared, got) {
		return ir.ConvertNumeric
	}
	if value.Type().Ownership == ir.Borrowed {
		return ir.ConvertClone
	}
	return ir.ConvertNone
}

// widthFor picks the target numeric width for a ground int/float type.
// Lowering has no per-declaration width annotations in the source language
// (spec gives the target emitter a single default width per ground type), so
// this always resolves to ir.WidthDefault; the hook exists so a future
// `@width(...)` decorator or target-specific override has one place to
// change this decision.
func widthFor(t checktypes.Type) ir.Width {
	return ir.WidthDefault
}
