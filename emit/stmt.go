package emit

import "github.com/dannys-code-corner/incan/ir"

// emitBlock renders a statement list, one per line, matching the source
// order lowering preserved.
func emitBlock(b *Builder, body []ir.Stmt) {
	for i, s := range body {
		emitStmt(b, s)
		if i < len(body)-1 {
			b.Newline()
		}
	}
}

func emitStmt(b *Builder, s ir.Stmt) {
	switch s := s.(type) {
	case *ir.LetStmt:
		b.Text("let ")
		if s.Mutable {
			b.Text("mut ")
		}
		b.Text(s.Name).Text(" = ")
		renderConverted(b, s.Value, s.Conversion, s.Typ)
		b.Text(";")
	case *ir.ReassignStmt:
		b.Text(s.Name).Text(" = ")
		renderConverted(b, s.Value, s.Conversion, s.Typ)
		b.Text(";")
	case *ir.ReturnStmt:
		b.Text("return")
		if s.Value != nil {
			b.Space()
			renderConverted(b, s.Value, s.Conversion, s.Typ)
		}
		b.Text(";")
	case *ir.IfStmt:
		emitIfStmt(b, s)
	case *ir.WhileStmt:
		b.Text("while ")
		emitExpr(b, s.Cond)
		b.Space()
		b.Block(func(bb *Builder) { emitBlock(bb, s.Body) })
	case *ir.ForStmt:
		b.Text("for ").Text(s.Var).Text(" in ")
		emitExpr(b, s.Iter)
		b.Space()
		b.Block(func(bb *Builder) { emitBlock(bb, s.Body) })
	case *ir.MatchStmt:
		b.Text("match ")
		emitExpr(b, s.Scrutinee)
		b.Space()
		b.Block(func(ab *Builder) {
			for i, arm := range s.Arms {
				emitPattern(ab, arm.Pattern)
				if arm.Guard != nil {
					ab.Text(" if ")
					emitExpr(ab, arm.Guard)
				}
				ab.Text(" => ")
				if arm.Result != nil {
					emitExpr(ab, arm.Result)
					ab.Text(",")
				} else {
					ab.Block(func(bb *Builder) { emitBlock(bb, arm.Body) })
				}
				if i < len(s.Arms)-1 {
					ab.Newline()
				}
			}
		})
	case *ir.ExprStmt:
		emitExpr(b, s.Value)
		b.Text(";")
	case *ir.PassStmt:
		// lowers to nothing
	case *ir.YieldStmt:
		if s.Value != nil {
			emitExpr(b, s.Value)
			b.Text(";")
		}
	}
}

func emitIfStmt(b *Builder, s *ir.IfStmt) {
	b.Text("if ")
	emitExpr(b, s.Cond)
	b.Space()
	b.Block(func(bb *Builder) { emitBlock(bb, s.Body) })
	if s.Elif != nil {
		b.Text(" else ")
		emitIfStmt(b, s.Elif)
		return
	}
	if s.Else != nil {
		b.Text(" else ")
		b.Block(func(bb *Builder) { emitBlock(bb, s.Else) })
	}
}

// renderConverted emits value with whatever conversion (clone/cast) the
// Conversion field requires, routing through the one conversions function
// every value-crossing-a-boundary goes through. target is the destination
// the value is converted into (the let binding's declared type, or the
// enclosing function's result type for a return) — the cast destination
// for ConvertNumeric, not value's own type.
func renderConverted(b *Builder, value ir.Expr, conv ir.Conversion, target ir.Type) {
	scratch := NewBuilder()
	emitExpr(scratch, value)
	b.Text(applyConversion(scratch.Render(), conv, target))
}
