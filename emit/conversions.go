package emit

import "github.com/dannys-code-corner/incan/ir"

// applyConversion wraps rendered, the already-emitted text of a value
// expression, according to conv, the Conversion decision lowering attached
// to the binding/return/assignment it is the source of. This is the central
// conversions module spec §4.5 requires: every borrow/clone/cast decision
// the emitter makes about a value crossing an ownership or width boundary
// goes through this one function, never inline at each call site.
func applyConversion(rendered string, conv ir.Conversion, target ir.Type) string {
	switch conv {
	case ir.ConvertClone:
		return rendered + ".clone()"
	case ir.ConvertNumeric:
		return rendered + " as " + baseTypeName(target)
	case ir.ConvertMove, ir.ConvertNone:
		return rendered
	default:
		return rendered
	}
}

// borrowSigil returns the reference prefix to apply when passing an
// already-rendered expression at a Borrowed-ownership use site: a plain
// value expression needs `&` in front; an expression that already denotes a
// reference (the emitter never synthesizes these today, since lowering
// resolves borrow-vs-own per use site rather than per variable) would not.
func borrowSigil(t ir.Type) string {
	if t.Ownership == ir.Borrowed {
		return "&"
	}
	return ""
}
