package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dannys-code-corner/incan/token"
)

func TestLookupOperatorPrecedence(t *testing.T) {
	or, ok := token.LookupOperator("or")
	assert.True(t, ok)
	and, ok := token.LookupOperator("and")
	assert.True(t, ok)
	assert.Less(t, or.Prec, and.Prec)

	add, ok := token.LookupOperator("+")
	assert.True(t, ok)
	mul, ok := token.LookupOperator("*")
	assert.True(t, ok)
	pow, ok := token.LookupOperator("**")
	assert.True(t, ok)
	assert.Less(t, add.Prec, mul.Prec)
	assert.Less(t, mul.Prec, pow.Prec)
	assert.Equal(t, token.RightAssoc, pow.Assoc)
	assert.Equal(t, token.LeftAssoc, add.Assoc)
}

func TestLookupOperatorComparisonChains(t *testing.T) {
	for _, sym := range []string{"==", "!=", "<", "<=", ">", ">=", "in"} {
		info, ok := token.LookupOperator(sym)
		assert.True(t, ok, sym)
		assert.Equal(t, token.ChainAssoc, info.Assoc, sym)
	}
}

func TestLookupOperatorUnknown(t *testing.T) {
	_, ok := token.LookupOperator("~")
	assert.False(t, ok)
}

func TestLookupKeywordCanonicalizesAliases(t *testing.T) {
	canon, ok := token.LookupKeyword("True")
	assert.True(t, ok)
	assert.Equal(t, "true", canon)

	canon, ok = token.LookupKeyword("False")
	assert.True(t, ok)
	assert.Equal(t, "false", canon)

	_, ok = token.LookupKeyword("notakeyword")
	assert.False(t, ok)
}

func TestIsBuiltinFunction(t *testing.T) {
	assert.True(t, token.IsBuiltinFunction("println"))
	assert.True(t, token.IsBuiltinFunction("sorted"))
	assert.False(t, token.IsBuiltinFunction("print"))
	assert.False(t, token.IsBuiltinFunction("not_a_builtin"))
}

func TestIsBuiltinType(t *testing.T) {
	assert.True(t, token.IsBuiltinType("List"))
	assert.True(t, token.IsBuiltinType("Option"))
	assert.False(t, token.IsBuiltinType("MyModel"))
}

func TestIsBuiltinException(t *testing.T) {
	assert.True(t, token.IsBuiltinException("ValueError"))
	assert.False(t, token.IsBuiltinException("MyError"))
}

func TestDeriveImplies(t *testing.T) {
	assert.Equal(t, []string{"Eq"}, token.DeriveImplies("Ord"))
	assert.Nil(t, token.DeriveImplies("Clone"))
}

func TestIsDerive(t *testing.T) {
	assert.True(t, token.IsDerive("Debug"))
	assert.False(t, token.IsDerive("Copy"))
}

func TestSurfaceMath(t *testing.T) {
	assert.True(t, token.IsSurfaceMathFunc("sqrt"))
	assert.False(t, token.IsSurfaceMathFunc("cbrt"))
	assert.True(t, token.IsSurfaceMathConst("pi"))
	assert.False(t, token.IsSurfaceMathConst("golden_ratio"))
}

func TestIsSurfaceMethod(t *testing.T) {
	assert.True(t, token.IsSurfaceMethod(token.ClassStr, "upper"))
	assert.True(t, token.IsSurfaceMethod(token.ClassList, "append"))
	assert.False(t, token.IsSurfaceMethod(token.ClassList, "upper"))
	assert.False(t, token.IsSurfaceMethod(token.ClassNone, "anything"))
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EOF:     "EOF",
		token.IDENT:   "identifier",
		token.KEYWORD: "keyword",
		token.INT:     "int literal",
		token.Invalid: "invalid",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
