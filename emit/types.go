package emit

import (
	"strings"

	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
)

// groundName maps a checktypes.Ground to its target spelling. Int and Float
// read their concrete width off the surrounding ir.Type; groundName alone
// only covers the width-independent grounds.
func groundName(g checktypes.Ground) string {
	switch g {
	case checktypes.Bool:
		return "bool"
	case checktypes.Str:
		return "String"
	case checktypes.Bytes:
		return "Vec<u8>"
	case checktypes.Unit:
		return "()"
	default:
		return "<unknown ground>"
	}
}

// widthName spells out the concrete integer or float type for w, defaulting
// to the target's 64-bit types when lowering left the width unset.
func widthName(base checktypes.Ground, w ir.Width) string {
	isFloat := base == checktypes.Float
	switch w {
	case ir.Width8:
		if isFloat {
			return "f64" // no 8-bit float target type; widen
		}
		return "i8"
	case ir.Width16:
		if isFloat {
			return "f64"
		}
		return "i16"
	case ir.Width32:
		if isFloat {
			return "f32"
		}
		return "i32"
	case ir.WidthSize:
		return "usize"
	default:
		if isFloat {
			return "f64"
		}
		return "i64"
	}
}

// baseTypeName renders t's underlying checktypes.Type, ignoring ownership,
// matching the target's canonical sum-type spellings for Option/Result
// (spec §4.5 "map to the target's canonical sum types").
func baseTypeName(t ir.Type) string {
	switch base := t.Base.(type) {
	case checktypes.Ground:
		if base == checktypes.Int || base == checktypes.Float {
			return widthName(base, t.Width)
		}
		return groundName(base)
	case *checktypes.List:
		return "Vec<" + baseTypeName(ir.OwnedType(base.Elem)) + ">"
	case *checktypes.Dict:
		return "HashMap<" + baseTypeName(ir.OwnedType(base.Key)) + ", " + baseTypeName(ir.OwnedType(base.Value)) + ">"
	case *checktypes.Set:
		return "HashSet<" + baseTypeName(ir.OwnedType(base.Elem)) + ">"
	case *checktypes.Tuple:
		parts := make([]string, len(base.Elems))
		for i, e := range base.Elems {
			parts[i] = baseTypeName(ir.OwnedType(e))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *checktypes.Option:
		return "Option<" + baseTypeName(ir.OwnedType(base.Elem)) + ">"
	case *checktypes.Result:
		return "Result<" + baseTypeName(ir.OwnedType(base.Ok)) + ", " + baseTypeName(ir.OwnedType(base.Err)) + ">"
	case *checktypes.Enum:
		return base.Name
	case *checktypes.Record:
		return base.Name
	case *checktypes.Newtype:
		return base.Name
	case *checktypes.Func:
		parts := make([]string, len(base.Params))
		for i, p := range base.Params {
			parts[i] = baseTypeName(ir.OwnedType(p))
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + baseTypeName(ir.OwnedType(base.Result))
	case *checktypes.Frozen:
		return baseTypeName(ir.OwnedType(base.Elem))
	default:
		return "<unknown type>"
	}
}

// typeName renders t's full target spelling, including the reference sigil
// a Borrowed ownership requires. Static (frozen-const) ownership needs no
// sigil of its own: its 'static lifetime is implied by where it appears
// (a top-level const), not by the type annotation.
func typeName(t ir.Type) string {
	name := baseTypeName(t)
	if t.Ownership == ir.Borrowed {
		return "&" + name
	}
	return name
}
