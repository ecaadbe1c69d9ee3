package token

// Assoc is an operator's associativity.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
	ChainAssoc // comparison chains: a < b < c parses left-to-right but keeps all operands
)

// OperatorInfo describes one binary (or, for `not`, unary) operator.
type OperatorInfo struct {
	Symbol string
	Prec   int
	Assoc  Assoc
}

// Precedence levels, lowest to highest. `or` binds loosest; `**` tightest.
// Mirrors spec: logical and/or below comparisons, comparisons chain
// left-to-right, arithmetic follows the usual rules with ** right-assoc
// and binding tighter than unary minus.
const (
	precOr = iota + 1
	precAnd
	precNot
	precCompare
	precRange
	precAdd
	precMul
	precUnary
	precPow
)

// operators is the closed table of binary/comparison operators, keyed by
// surface symbol. `not`, unary `-`, and `?` are handled separately by the
// parser since they are prefix/postfix rather than infix.
var operators = map[string]OperatorInfo{
	"or":  {Symbol: "or", Prec: precOr, Assoc: LeftAssoc},
	"and": {Symbol: "and", Prec: precAnd, Assoc: LeftAssoc},

	"==": {Symbol: "==", Prec: precCompare, Assoc: ChainAssoc},
	"!=": {Symbol: "!=", Prec: precCompare, Assoc: ChainAssoc},
	"<":  {Symbol: "<", Prec: precCompare, Assoc: ChainAssoc},
	"<=": {Symbol: "<=", Prec: precCompare, Assoc: ChainAssoc},
	">":  {Symbol: ">", Prec: precCompare, Assoc: ChainAssoc},
	">=": {Symbol: ">=", Prec: precCompare, Assoc: ChainAssoc},
	"in": {Symbol: "in", Prec: precCompare, Assoc: ChainAssoc},

	"..":  {Symbol: "..", Prec: precRange, Assoc: LeftAssoc},
	"..=": {Symbol: "..=", Prec: precRange, Assoc: LeftAssoc},

	"+": {Symbol: "+", Prec: precAdd, Assoc: LeftAssoc},
	"-": {Symbol: "-", Prec: precAdd, Assoc: LeftAssoc},

	"*":  {Symbol: "*", Prec: precMul, Assoc: LeftAssoc},
	"/":  {Symbol: "/", Prec: precMul, Assoc: LeftAssoc},
	"//": {Symbol: "//", Prec: precMul, Assoc: LeftAssoc},
	"%":  {Symbol: "%", Prec: precMul, Assoc: LeftAssoc},

	"**": {Symbol: "**", Prec: precPow, Assoc: RightAssoc},
}

// LookupOperator reports the precedence/associativity of a binary operator
// symbol, and whether it is a recognized operator at all.
func LookupOperator(symbol string) (OperatorInfo, bool) {
	info, ok := operators[symbol]
	return info, ok
}

// keywords is the closed set of reserved words, each resolving to its
// canonical spelling (surface aliases like `True`/`False` normalize here).
var keywords = map[string]string{
	"def": "def", "async": "async", "await": "await", "return": "return",
	"let": "let", "mut": "mut",
	"if": "if", "elif": "elif", "else": "else",
	"while": "while", "for": "for", "in": "in",
	"match": "match", "case": "case",
	"model": "model", "class": "class", "trait": "trait", "enum": "enum",
	"newtype": "newtype", "const": "const", "type": "type", "import": "import",
	"from": "from",
	"as": "as", "pass": "pass", "yield": "yield",
	"self": "self", "pub": "pub",
	"not": "not", "and": "and", "or": "or",
	"true": "true", "True": "true",
	"false": "false", "False": "false",
	"None": "None",
}

// LookupKeyword reports whether ident is a reserved word, and if so its
// canonical spelling (collapsing alias spellings such as `True` → `true`).
func LookupKeyword(ident string) (canonical string, ok bool) {
	canonical, ok = keywords[ident]
	return canonical, ok
}

// builtinFunctions maps free-function call names to the BuiltinFn the
// lowering pass should tag a CallExpr with; anything absent from this table
// lowers as an ordinary user call.
var builtinFunctions = map[string]bool{
	"println": true, "len": true, "range": true, "sum": true, "min": true,
	"max": true, "abs": true, "sorted": true, "reversed": true,
	"enumerate": true, "zip": true, "map": true, "filter": true,
	"json_stringify": true, "json_parse": true,
	"read_file": true, "write_file": true,
	"int": true, "float": true, "str": true, "bool": true,
}

// IsBuiltinFunction reports whether name names a builtin function.
func IsBuiltinFunction(name string) bool { return builtinFunctions[name] }

// builtinTypes is the closed set of ground/container type names recognized
// in type-expression position without an import.
var builtinTypes = map[string]bool{
	"int": true, "float": true, "bool": true, "str": true, "bytes": true,
	"None": true,
	"List": true, "Dict": true, "Set": true, "Tuple": true,
	"Option": true, "Result": true,
	"FrozenStr": true, "FrozenBytes": true, "FrozenList": true,
	"FrozenDict": true, "FrozenSet": true,
}

// IsBuiltinType reports whether name names a builtin type.
func IsBuiltinType(name string) bool { return builtinTypes[name] }

// builtinExceptions is the closed set of exception/error type names that
// `Result`'s `Err` side may carry without a user declaration.
var builtinExceptions = map[string]bool{
	"ValueError": true, "TypeError": true, "KeyError": true,
	"IndexError": true, "ZeroDivisionError": true, "IOError": true,
	"RuntimeError": true,
}

// IsBuiltinException reports whether name names a builtin exception type.
func IsBuiltinException(name string) bool { return builtinExceptions[name] }

// derives is the closed set of names accepted inside `@derive(...)`.
var derives = map[string]bool{
	"Debug": true, "Clone": true, "Eq": true, "Ord": true,
	"Hash": true, "Display": true, "Default": true,
}

// IsDerive reports whether name is a recognized derive target.
func IsDerive(name string) bool { return derives[name] }

// DeriveImplies returns additional derives that `name` requires transitively
// (e.g. `Ord` implies `Eq`, `PartialEq`, `PartialOrd` on the target side).
func DeriveImplies(name string) []string {
	switch name {
	case "Ord":
		return []string{"Eq"}
	default:
		return nil
	}
}

// surfaceMathFuncs and surfaceMathConsts are the contents of the builtin
// `math` surface namespace.
var surfaceMathFuncs = map[string]bool{
	"sqrt": true, "floor": true, "ceil": true, "round": true,
	"sin": true, "cos": true, "tan": true, "log": true, "log2": true, "log10": true,
}

var surfaceMathConsts = map[string]bool{
	"pi": true, "e": true, "tau": true, "inf": true, "nan": true,
}

// IsSurfaceMathFunc reports whether name is a builtin math function.
func IsSurfaceMathFunc(name string) bool { return surfaceMathFuncs[name] }

// IsSurfaceMathConst reports whether name is a builtin math constant.
func IsSurfaceMathConst(name string) bool { return surfaceMathConsts[name] }

// ReceiverClass is the builtin type family a known surface method resolves
// against; lowering picks a BuiltinFn-style dispatch tag per (class, name)
// pair instead of emitting a call to a user method that has no declaration.
type ReceiverClass int

const (
	ClassNone ReceiverClass = iota
	ClassStr
	ClassList
	ClassDict
	ClassSet
	ClassOption
	ClassResult
)

// surfaceMethods is the closed registry of builtin methods per receiver
// family (spec §6.2's "surface methods on strings, lists, dicts, sets,
// Option... are drawn from a fixed registry").
var surfaceMethods = map[ReceiverClass]map[string]bool{
	ClassStr: {
		"upper": true, "lower": true, "strip": true, "split": true,
		"replace": true, "starts_with": true, "ends_with": true,
		"contains": true, "join": true, "find": true, "to_int": true,
		"to_float": true,
	},
	ClassList: {
		"append": true, "pop": true, "insert": true, "remove": true,
		"extend": true, "sort": true, "index_of": true, "contains": true,
		"clear": true,
	},
	ClassDict: {
		"get": true, "keys": true, "values": true, "items": true,
		"contains_key": true, "remove": true, "clear": true,
	},
	ClassSet: {
		"add": true, "remove": true, "contains": true, "union": true,
		"intersection": true, "difference": true,
	},
	ClassOption: {
		"is_some": true, "is_none": true, "unwrap": true, "unwrap_or": true,
		"map": true,
	},
	ClassResult: {
		"is_ok": true, "is_err": true, "unwrap": true, "unwrap_or": true,
		"map": true, "map_err": true,
	},
}

// IsSurfaceMethod reports whether name is a registered builtin method on the
// given receiver class.
func IsSurfaceMethod(class ReceiverClass, name string) bool {
	return surfaceMethods[class][name]
}
