package checktypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dannys-code-corner/incan/checktypes"
)

func TestEqualGround(t *testing.T) {
	assert.True(t, checktypes.Equal(checktypes.Int, checktypes.Int))
	assert.False(t, checktypes.Equal(checktypes.Int, checktypes.Float))
}

func TestEqualContainers(t *testing.T) {
	a := &checktypes.List{Elem: checktypes.Int}
	b := &checktypes.List{Elem: checktypes.Int}
	c := &checktypes.List{Elem: checktypes.Str}
	assert.True(t, checktypes.Equal(a, b))
	assert.False(t, checktypes.Equal(a, c))

	d1 := &checktypes.Dict{Key: checktypes.Str, Value: checktypes.Int}
	d2 := &checktypes.Dict{Key: checktypes.Str, Value: checktypes.Int}
	d3 := &checktypes.Dict{Key: checktypes.Str, Value: checktypes.Bool}
	assert.True(t, checktypes.Equal(d1, d2))
	assert.False(t, checktypes.Equal(d1, d3))
}

func TestEqualTuple(t *testing.T) {
	a := &checktypes.Tuple{Elems: []checktypes.Type{checktypes.Int, checktypes.Str}}
	b := &checktypes.Tuple{Elems: []checktypes.Type{checktypes.Int, checktypes.Str}}
	c := &checktypes.Tuple{Elems: []checktypes.Type{checktypes.Int}}
	assert.True(t, checktypes.Equal(a, b))
	assert.False(t, checktypes.Equal(a, c))
}

func TestEqualRecordAndEnumByName(t *testing.T) {
	r1 := &checktypes.Record{Name: "User", Fields: []checktypes.Field{{Name: "id", Type: checktypes.Int}}}
	r2 := &checktypes.Record{Name: "User"}
	r3 := &checktypes.Record{Name: "Other"}
	assert.True(t, checktypes.Equal(r1, r2))
	assert.False(t, checktypes.Equal(r1, r3))

	e1 := &checktypes.Enum{Name: "Shape"}
	e2 := &checktypes.Enum{Name: "Shape"}
	assert.True(t, checktypes.Equal(e1, e2))
	assert.False(t, checktypes.Equal(e1, r1))
}

func TestEqualNewtype(t *testing.T) {
	n1 := &checktypes.Newtype{Name: "UserID", Underlying: checktypes.Int}
	n2 := &checktypes.Newtype{Name: "UserID", Underlying: checktypes.Int}
	assert.True(t, checktypes.Equal(n1, n2))
	assert.False(t, checktypes.Equal(n1, checktypes.Int))
}

func TestEqualFunc(t *testing.T) {
	f1 := &checktypes.Func{Params: []checktypes.Type{checktypes.Int}, Result: checktypes.Bool}
	f2 := &checktypes.Func{Params: []checktypes.Type{checktypes.Int}, Result: checktypes.Bool}
	f3 := &checktypes.Func{Params: []checktypes.Type{checktypes.Int}, Result: checktypes.Bool, Async: true}
	f4 := &checktypes.Func{Params: []checktypes.Type{checktypes.Str}, Result: checktypes.Bool}
	assert.True(t, checktypes.Equal(f1, f2))
	assert.False(t, checktypes.Equal(f1, f3))
	assert.False(t, checktypes.Equal(f1, f4))
}

func TestEqualNil(t *testing.T) {
	assert.True(t, checktypes.Equal(nil, nil))
	assert.False(t, checktypes.Equal(checktypes.Int, nil))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, checktypes.IsNumeric(checktypes.Int))
	assert.True(t, checktypes.IsNumeric(checktypes.Float))
	assert.False(t, checktypes.IsNumeric(checktypes.Str))
	assert.False(t, checktypes.IsNumeric(&checktypes.List{Elem: checktypes.Int}))
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "int", checktypes.Int.String())
	assert.Equal(t, "List[int]", (&checktypes.List{Elem: checktypes.Int}).String())
	assert.Equal(t, "Dict[str,int]", (&checktypes.Dict{Key: checktypes.Str, Value: checktypes.Int}).String())
	assert.Equal(t, "Option[int]", (&checktypes.Option{Elem: checktypes.Int}).String())
	assert.Equal(t, "Result[int,str]", (&checktypes.Result{Ok: checktypes.Int, Err: checktypes.Str}).String())
	assert.Equal(t, "Tuple[int,str]", (&checktypes.Tuple{Elems: []checktypes.Type{checktypes.Int, checktypes.Str}}).String())
	assert.Equal(t, "FrozenList[int]", (&checktypes.Frozen{Elem: &checktypes.List{Elem: checktypes.Int}}).String())
	assert.Equal(t, "(int) -> bool", (&checktypes.Func{Params: []checktypes.Type{checktypes.Int}, Result: checktypes.Bool}).String())
}
