package scheduling

import (
	"testing"

	"github.com/crillab/gophersat/bf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countSetBits(model map[string]bool, names []string) int {
	n := 0
	for _, name := range names {
		if model[name] {
			n++
		}
	}
	return n
}

func TestExactlyOneAdmitsExactlyOneTrue(t *testing.T) {
	names := []string{"a", "b", "c"}
	lits := make([]bf.Formula, len(names))
	for i, n := range names {
		lits[i] = bf.Var(n)
	}

	model, err := bf.Solve(exactlyOne(lits))
	require.NoError(t, err)
	assert.Equal(t, 1, countSetBits(model, names))
}

func TestAtMostOneRejectsTwoSimultaneousTrue(t *testing.T) {
	a, b := bf.Var("a"), bf.Var("b")
	formula := bf.And(atMostOne([]bf.Formula{a, b}), a, b)

	_, err := bf.Solve(formula)
	assert.Error(t, err)
}

func TestAtMostKBoundsCardinality(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	lits := make([]bf.Formula, len(names))
	for i, n := range names {
		lits[i] = bf.Var(n)
	}
	factory := &literalFactory{}

	formula := bf.And(atMostK(lits, 2, factory), bf.Or(lits...))
	model, err := bf.Solve(formula)
	require.NoError(t, err)
	assert.LessOrEqual(t, countSetBits(model, names), 2)
}

func TestAtMostKZeroForcesAllFalse(t *testing.T) {
	names := []string{"a", "b"}
	lits := []bf.Formula{bf.Var("a"), bf.Var("b")}
	factory := &literalFactory{}

	model, err := bf.Solve(atMostK(lits, 0, factory))
	require.NoError(t, err)
	assert.Equal(t, 0, countSetBits(model, names))
}

func TestAtMostKNoOpWhenBoundCoversAllLiterals(t *testing.T) {
	lits := []bf.Formula{bf.Var("a"), bf.Var("b")}
	factory := &literalFactory{}

	assert.Nil(t, atMostK(lits, 2, factory))
}

func TestExactlyKPinsCardinalityExactly(t *testing.T) {
	names := []string{"a", "b", "c"}
	lits := make([]bf.Formula, len(names))
	for i, n := range names {
		lits[i] = bf.Var(n)
	}
	factory := &literalFactory{}

	model, err := bf.Solve(exactlyK(lits, 2, factory))
	require.NoError(t, err)
	assert.Equal(t, 2, countSetBits(model, names))
}

func TestExactlyKZeroIsUnsatisfiableWithForcedTrue(t *testing.T) {
	a := bf.Var("a")
	factory := &literalFactory{}

	formula := bf.And(exactlyK([]bf.Formula{a}, 0, factory), a)
	_, err := bf.Solve(formula)
	assert.Error(t, err)
}

func TestExactlyKBeyondLiteralCountIsUnsatisfiable(t *testing.T) {
	lits := []bf.Formula{bf.Var("a"), bf.Var("b")}
	factory := &literalFactory{}

	_, err := bf.Solve(exactlyK(lits, 5, factory))
	assert.Error(t, err, "demanding more true literals than exist must be UNSAT, not silently satisfied by forcing all of them true")
}
