package emit

import "github.com/dannys-code-corner/incan/ir"

// emitPattern renders one match-arm pattern. VariantPattern carries only the
// bare variant name, not its enum's type name (lowering never threaded that
// through), so a user-enum pattern relies on the variant being in scope
// unqualified; Option/Result patterns (Some/None/Ok/Err) are unaffected
// since those names are already in the target prelude. Documented as a
// known simplification rather than worked around by guessing the enum name
// from the scrutinee's type.
func emitPattern(b *Builder, p ir.Pattern) {
	switch p := p.(type) {
	case *ir.WildcardPattern:
		b.Text("_")
	case *ir.BindingPattern:
		b.Text(p.Name)
	case *ir.LiteralPattern:
		emitExpr(b, p.Value)
	case *ir.VariantPattern:
		b.Text(p.Variant)
		if len(p.Payload) > 0 {
			b.Text("(")
			Join(b, p.Payload, ", ", emitPattern)
			b.Text(")")
		}
	case *ir.TuplePattern:
		b.Text("(")
		Join(b, p.Elems, ", ", emitPattern)
		b.Text(")")
	default:
		b.Text("_")
	}
}
