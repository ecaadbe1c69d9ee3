package ir

import (
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/token"
)

// ReceiverClassOf classifies a checker type into the builtin receiver family
// ResolveMethodKind dispatches on, or token.ClassNone for a user record,
// enum, or newtype, which only ever carries user methods.
func ReceiverClassOf(t checktypes.Type) token.ReceiverClass {
	switch t.(type) {
	case checktypes.Ground:
		if t.(checktypes.Ground) == checktypes.Str {
			return token.ClassStr
		}
		return token.ClassNone
	case *checktypes.List:
		return token.ClassList
	case *checktypes.Dict:
		return token.ClassDict
	case *checktypes.Set:
		return token.ClassSet
	case *checktypes.Option:
		return token.ClassOption
	case *checktypes.Result:
		return token.ClassResult
	case *checktypes.Frozen:
		return token.ClassNone
	default:
		return token.ClassNone
	}
}
