package ir

import "github.com/dannys-code-corner/incan/token"

// MethodKind tags a lowered method call as either a known builtin method on
// one of the fixed receiver families, or an ordinary user-defined method
// dispatched through the receiver's own method table.
type MethodKind int

const (
	// MethodUser is dispatched through the receiver type's own method
	// table (possibly inherited or trait-provided); lowering does not
	// resolve it further, that is the emitter's job once inheritance has
	// been flattened.
	MethodUser MethodKind = iota
	MethodBuiltinStr
	MethodBuiltinList
	MethodBuiltinDict
	MethodBuiltinSet
	MethodBuiltinOption
	MethodBuiltinResult
)

// classKind maps a token.ReceiverClass to the MethodKind tag lowering
// attaches to a resolved builtin method call.
var classKind = map[token.ReceiverClass]MethodKind{
	token.ClassStr:    MethodBuiltinStr,
	token.ClassList:   MethodBuiltinList,
	token.ClassDict:   MethodBuiltinDict,
	token.ClassSet:    MethodBuiltinSet,
	token.ClassOption: MethodBuiltinOption,
	token.ClassResult: MethodBuiltinResult,
}

// ResolveMethodKind inspects class, the receiver family of a method call's
// receiver, and reports the MethodKind to tag the call with: a
// builtin dispatch tag if class is one of the fixed families and name
// is in its registry, otherwise MethodUser.
func ResolveMethodKind(class token.ReceiverClass, name string) MethodKind {
	if class == token.ClassNone {
		return MethodUser
	}
	if !token.IsSurfaceMethod(class, name) {
		return MethodUser
	}
	return classKind[class]
}
