package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dannys-code-corner/incan/ir"
)

func TestExpandDerivesClosesOverImplied(t *testing.T) {
	assert.Equal(t, []string{"Ord", "Eq"}, ir.ExpandDerives([]string{"Ord"}))
}

func TestExpandDerivesDropsDuplicates(t *testing.T) {
	assert.Equal(t, []string{"Debug", "Clone"}, ir.ExpandDerives([]string{"Debug", "Clone", "Debug"}))
}

func TestExpandDerivesPreservesFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"Clone", "Ord", "Eq", "Hash"}, ir.ExpandDerives([]string{"Clone", "Ord", "Hash"}))
}

func TestValidateDeriveConflictsDetectsCollision(t *testing.T) {
	conflicts := ir.ValidateDeriveConflicts([]string{"Eq", "Display"}, map[string]bool{"__eq__": true})
	assert.Equal(t, []ir.DeriveConflict{{Derive: "Eq", Method: "__eq__"}}, conflicts)
}

func TestValidateDeriveConflictsNoneWhenDisjoint(t *testing.T) {
	conflicts := ir.ValidateDeriveConflicts([]string{"Debug", "Clone"}, map[string]bool{"__str__": true})
	assert.Empty(t, conflicts)
}
