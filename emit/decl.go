package emit

import (
	"golang.org/x/exp/slices"

	"github.com/dannys-code-corner/incan/ir"
)

// emitDecl appends one top-level declaration's rendering to b, in source
// order. Import is handled by the caller (Emit renders every import first,
// as a `use` block at the top of the file), so it is a no-op here.
func emitDecl(b *Builder, d ir.Decl) {
	switch d := d.(type) {
	case *ir.FuncDecl:
		emitFunc(b, d)
	case *ir.ModelDecl:
		emitModel(b, d)
	case *ir.ClassDecl:
		emitClass(b, d)
	case *ir.TraitImplDecl:
		emitTraitImpl(b, d)
	case *ir.EnumDecl:
		emitEnum(b, d)
	case *ir.NewtypeDecl:
		emitNewtype(b, d)
	case *ir.ConstDecl:
		emitConst(b, d)
	case *ir.Import:
		// rendered separately, grouped at the top of the file
	}
}

// rustDerives expands a source-level derive set (already closed under
// token.DeriveImplies by lowering) into its target spelling: Eq implies
// PartialEq; Ord implies Eq/PartialEq/PartialOrd. Display has no derive
// macro on the target side at all — emitModel/emitClass/emitEnum instead
// emit a manual impl for it and drop it from the derive attribute list.
func rustDerives(derives []string) []string {
	seen := make(map[string]bool, len(derives))
	var out []string
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, d := range derives {
		switch d {
		case "Display":
			continue
		case "Ord":
			add("PartialEq")
			add("Eq")
			add("PartialOrd")
			add("Ord")
		case "Eq":
			add("PartialEq")
			add("Eq")
		default:
			add(d)
		}
	}
	return out
}

func hasDerive(derives []string, name string) bool {
	return slices.Contains(derives, name)
}

func emitDeriveAttr(b *Builder, derives []string) {
	target := rustDerives(derives)
	if len(target) == 0 {
		return
	}
	b.Text("#[derive(")
	Join(b, target, ", ", func(b *Builder, name string) { b.Text(name) })
	b.Text(")]").Newline()
}

func visPrefix(pub bool) string {
	if pub {
		return "pub "
	}
	return ""
}

func emitFunc(b *Builder, d *ir.FuncDecl) {
	if d.Async {
		b.Text("pub async fn ")
	} else {
		b.Text("pub fn ")
	}
	b.Text(d.Name).Text("(")
	first := true
	if d.Receiver != nil {
		b.Text("&self")
		first = false
	}
	for _, p := range d.Params {
		if !first {
			b.Text(", ")
		}
		first = false
		b.Text(p.Name).Text(": ").Text(typeName(p.Typ))
	}
	b.Text(")")
	if typeName(d.Result) != "()" {
		b.Text(" -> ").Text(typeName(d.Result))
	}
	b.Space()
	b.Block(func(body *Builder) {
		emitBlock(body, d.Body)
	})
	b.Newline()
}

func emitModel(b *Builder, d *ir.ModelDecl) {
	emitDeriveAttr(b, d.Derives)
	b.Text(visPrefix(d.Pub)).Text("struct ").Text(d.Name).Space()
	b.Block(func(fb *Builder) {
		for i, f := range d.Fields {
			if d.Pub {
				fb.Text("pub ")
			}
			fb.Text(f.Name).Text(": ").Text(typeName(f.Typ)).Text(",")
			if i < len(d.Fields)-1 {
				fb.Newline()
			}
		}
		if len(d.Fields) > 0 {
			fb.Newline()
		}
	})
	b.Newline()
	if hasDerive(d.Derives, "Display") {
		emitDisplayStub(b, d.Name)
	}
}

func emitClass(b *Builder, d *ir.ClassDecl) {
	emitDeriveAttr(b, d.Derives)
	b.Text(visPrefix(d.Pub)).Text("struct ").Text(d.Name).Space()
	b.Block(func(fb *Builder) {
		for i, f := range d.Fields {
			if d.Pub {
				fb.Text("pub ")
			}
			fb.Text(f.Name).Text(": ").Text(typeName(f.Typ)).Text(",")
			if i < len(d.Fields)-1 {
				fb.Newline()
			}
		}
		if len(d.Fields) > 0 {
			fb.Newline()
		}
	})
	b.Newline()
	if len(d.Methods) > 0 {
		b.Text("impl ").Text(d.Name).Space()
		b.Block(func(ib *Builder) {
			for i, m := range d.Methods {
				emitFunc(ib, m)
				if i < len(d.Methods)-1 {
					ib.Newline()
				}
			}
		})
		b.Newline()
	}
	if hasDerive(d.Derives, "Display") {
		emitDisplayStub(b, d.Name)
	}
}

// emitDisplayStub writes a manual `impl fmt::Display` whose body defers to
// the derived Debug representation: Incan's `@derive(Display)` only asks
// for *some* string conversion to exist. No pass rejects a type that also
// hand-writes `__str__` (ir.ValidateDeriveConflicts detects that case but
// is not called by lowering), and the stub never calls such a method.
func emitDisplayStub(b *Builder, typeName string) {
	b.Text("impl std::fmt::Display for ").Text(typeName).Space()
	b.Block(func(ib *Builder) {
		ib.Text("fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result ")
		ib.Block(func(fb *Builder) {
			fb.Text("write!(f, \"{:?}\", self)")
		})
	})
	b.Newline()
}

func emitTraitImpl(b *Builder, d *ir.TraitImplDecl) {
	b.Text("// ").Text(d.ClassName).Text(" adopts ").Text(d.TraitName).
		Text(" via: ")
	Join(b, d.Methods, ", ", func(b *Builder, m string) { b.Text(m) })
	b.Newline()
}

func emitEnum(b *Builder, d *ir.EnumDecl) {
	emitDeriveAttr(b, d.Derives)
	b.Text(visPrefix(d.Pub)).Text("enum ").Text(d.Name).Space()
	b.Block(func(vb *Builder) {
		for i, v := range d.Variants {
			vb.Text(v.Name)
			if len(v.Payload) > 0 {
				vb.Text("(")
				Join(vb, v.Payload, ", ", func(b *Builder, t ir.Type) { b.Text(typeName(t)) })
				vb.Text(")")
			}
			vb.Text(",")
			if i < len(d.Variants)-1 {
				vb.Newline()
			}
		}
		if len(d.Variants) > 0 {
			vb.Newline()
		}
	})
	b.Newline()
	if hasDerive(d.Derives, "Display") {
		emitDisplayStub(b, d.Name)
	}
}

func emitNewtype(b *Builder, d *ir.NewtypeDecl) {
	emitDeriveAttr(b, d.Derives)
	b.Text(visPrefix(d.Pub)).Text("struct ").Text(d.Name).Text("(")
	if d.Pub {
		b.Text("pub ")
	}
	b.Text(typeName(d.Underlying)).Text(");").Newline().Newline()
}

func emitConst(b *Builder, d *ir.ConstDecl) {
	if d.Backing != nil {
		emitFrozenConst(b, d)
		return
	}
	b.Text(visPrefix(d.Pub)).Text("const ").Text(d.Name).Text(": ").Text(typeName(d.Typ)).Text(" = ")
	emitExpr(b, d.Value)
	b.Text(";").Newline()
}

// emitFrozenConst emits the static backing value lowering computed for a
// container/string-typed const (spec §4.4's "const frozen backing"), plus
// an accessor function wrapping it in the frozen type's target
// representation, matching spec §4.5's "static backing value plus a
// wrapper constructor invoked at use sites".
func emitFrozenConst(b *Builder, d *ir.ConstDecl) {
	backingName := "__" + d.Name + "_BACKING"
	b.Text(visPrefix(d.Pub)).Text("static ").Text(backingName).Text(": ").
		Text(baseTypeName(ir.OwnedType(d.Backing.Typ))).Text(" = ")
	emitExpr(b, d.Backing.Value)
	b.Text(";").Newline()
	b.Text(visPrefix(d.Pub)).Text("fn ").Text(d.Name).Text("() -> ").Text(typeName(d.Typ)).Space()
	b.Block(func(fb *Builder) {
		fb.Text(backingName).Text(".clone()")
	})
	b.Newline()
}
