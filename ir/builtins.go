package ir

import "github.com/dannys-code-corner/incan/token"

// BuiltinFn tags a lowered call as one of the fixed free functions in
// token's builtin registry, so the emitter can dispatch to a hand-written
// target-language implementation instead of emitting a call to a user
// symbol that does not exist on the target side.
type BuiltinFn int

const (
	NotBuiltin BuiltinFn = iota
	FnPrint
	FnLen
	FnRange
	FnSum
	FnMin
	FnMax
	FnAbs
	FnSorted
	FnReversed
	FnEnumerate
	FnZip
	FnMap
	FnFilter
	FnJSONStringify
	FnJSONParse
	FnReadFile
	FnWriteFile
	FnInt
	FnFloat
	FnStr
	FnBool
)

var builtinFnByName = map[string]BuiltinFn{
	"println": FnPrint, "len": FnLen, "range": FnRange, "sum": FnSum,
	"min": FnMin, "max": FnMax, "abs": FnAbs, "sorted": FnSorted,
	"reversed": FnReversed, "enumerate": FnEnumerate, "zip": FnZip,
	"map": FnMap, "filter": FnFilter,
	"json_stringify": FnJSONStringify, "json_parse": FnJSONParse,
	"read_file": FnReadFile, "write_file": FnWriteFile,
	"int": FnInt, "float": FnFloat, "str": FnStr, "bool": FnBool,
}

// LookupBuiltinFn resolves name against token's builtin-function registry
// and returns the matching BuiltinFn tag. It panics if name is not a known
// builtin, since the caller is expected to have already checked
// token.IsBuiltinFunction before calling a name-to-tag lookup.
func LookupBuiltinFn(name string) BuiltinFn {
	if !token.IsBuiltinFunction(name) {
		panic("ir: " + name + " is not a builtin function")
	}
	return builtinFnByName[name]
}
