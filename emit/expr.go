package emit

import (
	"fmt"
	"strconv"

	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
)

// emitExpr renders one lowered expression. Borrow/clone/cast choices are
// made by applyConversion/borrowSigil (spec §4.5's "central conversions
// module"); the one ownership choice made here directly is the
// `.to_string()` suffix on a string literal whose type is Owned.
func emitExpr(b *Builder, e ir.Expr) {
	switch e := e.(type) {
	case *ir.IntLit:
		b.Text(strconv.FormatInt(e.Value, 10))
	case *ir.FloatLit:
		b.Text(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ir.BoolLit:
		b.Text(strconv.FormatBool(e.Value))
	case *ir.StrLit:
		b.Text(rustStringLit(e.Value))
		if e.Typ.Ownership == ir.Owned {
			b.Text(".to_string()")
		}
	case *ir.BytesLit:
		b.Text("vec!").Text(rustByteSliceLit(e.Value))
	case *ir.BinaryExpr:
		emitBinary(b, e)
	case *ir.UnaryExpr:
		b.Text(rustUnaryOp(e.Op))
		emitExpr(b, e.Operand)
	case *ir.VarRef:
		b.Text(borrowSigil(e.Typ)).Text(e.Name)
	case *ir.ListExpr:
		b.Text("vec![")
		Join(b, e.Elems, ", ", emitExpr)
		b.Text("]")
	case *ir.SetExpr:
		b.Text("std::collections::HashSet::from([")
		Join(b, e.Elems, ", ", emitExpr)
		b.Text("])")
	case *ir.DictExpr:
		b.Text("std::collections::HashMap::from([")
		Join(b, e.Entries, ", ", func(b *Builder, ent ir.DictEntry) {
			b.Text("(")
			emitExpr(b, ent.Key)
			b.Text(", ")
			emitExpr(b, ent.Value)
			b.Text(")")
		})
		b.Text("])")
	case *ir.TupleExpr:
		b.Text("(")
		Join(b, e.Elems, ", ", emitExpr)
		if len(e.Elems) == 1 {
			b.Text(",")
		}
		b.Text(")")
	case *ir.CallExpr:
		emitCall(b, e)
	case *ir.MethodCallExpr:
		emitExpr(b, e.Receiver)
		b.Text(".").Text(e.Method).Text("(")
		Join(b, e.Args, ", ", emitExpr)
		b.Text(")")
	case *ir.ConstructExpr:
		emitConstruct(b, e)
	case *ir.FieldAccessExpr:
		emitExpr(b, e.Receiver)
		b.Text(".").Text(e.Field)
	case *ir.IndexExpr:
		fn := "crate::support::checked_index(&"
		if isStrType(e.Receiver.Type()) {
			fn = "crate::support::checked_index_str(&"
		}
		b.Text(fn)
		emitExpr(b, e.Receiver)
		b.Text(", (")
		emitExpr(b, e.Index)
		b.Text(") as i64)")
	case *ir.SliceExpr:
		emitSlice(b, e)
	case *ir.MatchExpr:
		emitMatchExpr(b, e)
	case *ir.IfExpr:
		b.Text("if ")
		emitExpr(b, e.Cond)
		b.Space()
		b.Block(func(tb *Builder) { emitExpr(tb, e.Then) })
		b.Text(" else ")
		b.Block(func(eb *Builder) { emitExpr(eb, e.Else) })
	case *ir.AwaitExpr:
		emitExpr(b, e.Operand)
		b.Text(".await")
	case *ir.PropagateErrorExpr:
		emitExpr(b, e.Operand)
		b.Text("?")
	case *ir.FormatExpr:
		emitFormat(b, e)
	case *ir.ClosureExpr:
		b.Text("|")
		Join(b, e.Params, ", ", func(b *Builder, p ir.ClosureParam) { b.Text(p.Name) })
		b.Text("| ")
		emitExpr(b, e.Body)
	case *ir.RangeExpr:
		emitExpr(b, e.Low)
		if e.Inclusive {
			b.Text("..=")
		} else {
			b.Text("..")
		}
		emitExpr(b, e.High)
	case *ir.ComprehensionExpr:
		emitComprehension(b, e)
	default:
		b.Text("/* unsupported expression */")
	}
}

func rustUnaryOp(op string) string {
	switch op {
	case "not":
		return "!"
	default:
		return op
	}
}

var rustBinOps = map[string]string{
	"and": "&&", "or": "||",
}

func emitBinary(b *Builder, e *ir.BinaryExpr) {
	if e.Op == "/" && isIntType(e.Typ) {
		b.Text("crate::support::checked_div_i64(")
		emitExpr(b, e.Left)
		b.Text(", ")
		emitExpr(b, e.Right)
		b.Text(")")
		return
	}
	if e.Op == "/" && isFloatType(e.Typ) {
		b.Text("crate::support::checked_div_f64(")
		emitExpr(b, e.Left)
		b.Text(", ")
		emitExpr(b, e.Right)
		b.Text(")")
		return
	}
	if e.Op == "%" && isIntType(e.Typ) {
		b.Text("crate::support::checked_mod_i64(")
		emitExpr(b, e.Left)
		b.Text(", ")
		emitExpr(b, e.Right)
		b.Text(")")
		return
	}
	if e.Op == "%" && isFloatType(e.Typ) {
		b.Text("crate::support::checked_mod_f64(")
		emitExpr(b, e.Left)
		b.Text(", ")
		emitExpr(b, e.Right)
		b.Text(")")
		return
	}
	op, ok := rustBinOps[e.Op]
	if !ok {
		op = e.Op
	}
	b.Text("(")
	emitExpr(b, e.Left)
	b.Space().Text(op).Space()
	emitExpr(b, e.Right)
	b.Text(")")
}

func isIntType(t ir.Type) bool {
	g, ok := t.Base.(interface{ String() string })
	return ok && g.String() == "int"
}

func isFloatType(t ir.Type) bool {
	g, ok := t.Base.(interface{ String() string })
	return ok && g.String() == "float"
}

func isStrType(t ir.Type) bool {
	g, ok := t.Base.(interface{ String() string })
	return ok && g.String() == "str"
}

// isFloatArg reports whether t, or the element type of a List/Set t,
// grounds out at float — used to pick the float overload of a builtin
// (sum/min/max/abs) the same way emitBinary picks checked_div_f64 over
// checked_div_i64.
func isFloatArg(t ir.Type) bool {
	switch base := t.Base.(type) {
	case checktypes.Ground:
		return base == checktypes.Float
	case *checktypes.List:
		return isFloatArg(ir.OwnedType(base.Elem))
	case *checktypes.Set:
		return isFloatArg(ir.OwnedType(base.Elem))
	default:
		return false
	}
}

func emitCall(b *Builder, e *ir.CallExpr) {
	if e.Kind == ir.CallBuiltin {
		emitBuiltinCall(b, e)
		return
	}
	b.Text(e.Callee).Text("(")
	Join(b, e.Args, ", ", emitExpr)
	b.Text(")")
}

var builtinFnName = map[ir.BuiltinFn]string{
	ir.FnPrint: "println!", ir.FnLen: "crate::support::len", ir.FnRange: "crate::support::range",
	ir.FnSum: "crate::support::sum", ir.FnMin: "crate::support::min", ir.FnMax: "crate::support::max",
	ir.FnAbs: "crate::support::abs", ir.FnSorted: "crate::support::sorted",
	ir.FnReversed: "crate::support::reversed", ir.FnEnumerate: "crate::support::enumerate",
	ir.FnZip: "crate::support::zip", ir.FnMap: "crate::support::map_fn", ir.FnFilter: "crate::support::filter_fn",
	ir.FnJSONStringify: "serde_json::to_string", ir.FnJSONParse: "crate::support::json_parse",
	ir.FnReadFile: "std::fs::read_to_string", ir.FnWriteFile: "std::fs::write",
	ir.FnInt: "crate::support::parse_int", ir.FnFloat: "crate::support::parse_float",
	ir.FnStr: "crate::support::to_str", ir.FnBool: "crate::support::to_bool",
}

// floatOverloadBuiltins dispatch to a "_f64"-suffixed support function when
// their argument grounds out at float, the same way emitBinary dispatches
// "/" and "%" to their _f64 variant rather than the integer one.
var floatOverloadBuiltins = map[ir.BuiltinFn]bool{
	ir.FnSum: true, ir.FnMin: true, ir.FnMax: true, ir.FnAbs: true,
}

func emitBuiltinCall(b *Builder, e *ir.CallExpr) {
	name, ok := builtinFnName[e.Builtin]
	if !ok {
		name = "/* unknown builtin */"
	}
	if floatOverloadBuiltins[e.Builtin] && len(e.Args) > 0 && isFloatArg(e.Args[0].Type()) {
		name += "_f64"
	}
	if e.Builtin == ir.FnPrint {
		b.Text("println!(\"{}\", ")
		Join(b, e.Args, ", ", func(b *Builder, a ir.Expr) {
			b.Text("format!(\"{}\", ")
			emitExpr(b, a)
			b.Text(")")
		})
		b.Text(")")
		return
	}
	b.Text(name).Text("(")
	Join(b, e.Args, ", ", emitExpr)
	b.Text(")")
}

func emitConstruct(b *Builder, e *ir.ConstructExpr) {
	if e.Variant != "" {
		b.Text(e.TypeName).Text("::").Text(e.Variant)
		if len(e.Fields) > 0 {
			b.Text("(")
			Join(b, e.Fields, ", ", func(b *Builder, f ir.FieldInit) { emitExpr(b, f.Value) })
			b.Text(")")
		}
		return
	}
	b.Text(e.TypeName).Space()
	b.Block(func(fb *Builder) {
		for i, f := range e.Fields {
			fb.Text(f.Name).Text(": ")
			emitExpr(fb, f.Value)
			fb.Text(",")
			if i < len(e.Fields)-1 {
				fb.Newline()
			}
		}
	})
}

func emitSlice(b *Builder, e *ir.SliceExpr) {
	step := "1"
	if e.Step != nil {
		stepB := NewBuilder()
		emitExpr(stepB, e.Step)
		step = stepB.Render()
	}
	fn := "crate::support::checked_slice(&"
	if isStrType(e.Receiver.Type()) {
		fn = "crate::support::checked_slice_str(&"
	}
	b.Text(fn)
	emitExpr(b, e.Receiver)
	b.Text(", ")
	emitOptionalBound(b, e.Low)
	b.Text(", ")
	emitOptionalBound(b, e.High)
	b.Text(", ").Text(step).Text(")")
}

func emitOptionalBound(b *Builder, e ir.Expr) {
	if e == nil {
		b.Text("None")
		return
	}
	b.Text("Some(")
	emitExpr(b, e)
	b.Text(")")
}

func emitMatchExpr(b *Builder, e *ir.MatchExpr) {
	b.Text("match ")
	emitExpr(b, e.Scrutinee)
	b.Space()
	b.Block(func(ab *Builder) {
		for i, arm := range e.Arms {
			emitPattern(ab, arm.Pattern)
			if arm.Guard != nil {
				ab.Text(" if ")
				emitExpr(ab, arm.Guard)
			}
			ab.Text(" => ")
			if arm.Result != nil {
				emitExpr(ab, arm.Result)
			} else {
				ab.Block(func(bb *Builder) { emitExprArmBody(bb, arm.Body) })
			}
			ab.Text(",")
			if i < len(e.Arms)-1 {
				ab.Newline()
			}
		}
	})
}

// emitExprArmBody renders a block-form match arm used in expression
// position: every statement but the last emits normally, and a trailing
// ExprStmt drops its semicolon so the block's value is the arm's result,
// the same tail-expression convention the target uses for any block. A
// block whose last statement is not an ExprStmt (e.g. it ends in a `return`
// or `pass`) has no value to yield here — a source program structured that
// way relies on every arm diverging or assigning, which the checker already
// validated before lowering reached this arm.
func emitExprArmBody(b *Builder, body []ir.Stmt) {
	for i, s := range body {
		last := i == len(body)-1
		if last {
			if es, ok := s.(*ir.ExprStmt); ok {
				emitExpr(b, es.Value)
				continue
			}
		}
		emitStmt(b, s)
		if !last {
			b.Newline()
		}
	}
}

func emitFormat(b *Builder, e *ir.FormatExpr) {
	lit := ""
	var args []ir.FormatFragment
	for _, f := range e.Fragments {
		if !f.IsExpr {
			lit += escapeFormatLiteral(f.Literal)
			continue
		}
		if f.Debug {
			lit += "{:?}"
		} else {
			lit += "{}"
		}
		args = append(args, f)
	}
	b.Text("format!(").Text(rustStringLit(lit))
	for _, f := range args {
		b.Text(", ")
		emitExpr(b, f.Value)
	}
	b.Text(")")
}

func escapeFormatLiteral(s string) string {
	out := ""
	for _, r := range s {
		switch r {
		case '{':
			out += "{{"
		case '}':
			out += "}}"
		default:
			out += string(r)
		}
	}
	return out
}

func emitComprehension(b *Builder, e *ir.ComprehensionExpr) {
	switch e.Kind {
	case ir.ComprehensionDict:
		b.Text("std::collections::HashMap::from_iter(")
	case ir.ComprehensionSet:
		b.Text("std::collections::HashSet::from_iter(")
	default:
		b.Text("Vec::from_iter(")
	}
	emitExpr(b, e.Iter)
	b.Text(".into_iter()")
	if e.Cond != nil {
		b.Text(".filter(|").Text(e.Var).Text("| ")
		emitExpr(b, e.Cond)
		b.Text(")")
	}
	b.Text(".map(|").Text(e.Var).Text("| ")
	switch e.Kind {
	case ir.ComprehensionDict:
		b.Text("(")
		emitExpr(b, e.KeyElem)
		b.Text(", ")
		emitExpr(b, e.ValElem)
		b.Text(")")
	default:
		emitExpr(b, e.Elem)
	}
	b.Text("))")
}

func rustStringLit(s string) string {
	return fmt.Sprintf("%q", s)
}

func rustByteSliceLit(bs []byte) string {
	out := "["
	for i, by := range bs {
		if i > 0 {
			out += ", "
		}
		out += strconv.Itoa(int(by))
	}
	return out + "]"
}
