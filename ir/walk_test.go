package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/ir"
)

func TestWalkExprVisitsChildren(t *testing.T) {
	left := &ir.IntLit{Value: 1}
	right := &ir.IntLit{Value: 2}
	bin := &ir.BinaryExpr{Left: left, Right: right, Op: "+"}

	var visited []ir.Expr
	err := ir.WalkExpr(bin, func(e ir.Expr) error {
		visited = append(visited, e)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []ir.Expr{bin, left, right}, visited)
}

func TestWalkExprStopsOnError(t *testing.T) {
	boom := assert.AnError
	call := &ir.CallExpr{Args: []ir.Expr{&ir.IntLit{Value: 1}}}

	count := 0
	err := ir.WalkExpr(call, func(e ir.Expr) error {
		count++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count)
}

func TestWalkExprNilIsNoop(t *testing.T) {
	err := ir.WalkExpr(nil, func(e ir.Expr) error {
		t.Fatal("should not be called")
		return nil
	})
	assert.NoError(t, err)
}

func TestWalkVisitsClassMethods(t *testing.T) {
	method := &ir.FuncDecl{Name: "bump"}
	class := &ir.ClassDecl{Name: "Counter", Methods: []*ir.FuncDecl{method}}
	file := &ir.File{Decls: []ir.Decl{class}}

	var entered []string
	err := ir.Walk(file, func(d ir.Decl) error {
		switch d := d.(type) {
		case *ir.ClassDecl:
			entered = append(entered, d.Name)
		case *ir.FuncDecl:
			entered = append(entered, d.Name)
		}
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Counter", "bump"}, entered)
}
