package scheduling

import (
	"fmt"
	"sync/atomic"

	"github.com/crillab/gophersat/bf"
)

// literalFactory mints uniquely named auxiliary boolean variables for the
// cardinality encodings below. gophersat's bf package identifies variables by
// name, so every auxiliary needs a name that can never collide with a model
// variable or another auxiliary.
type literalFactory struct{}

// auxCounter is shared by every literalFactory, so factories created
// separately for the constraints, the objective and the cost bound never mint
// the same name.
var auxCounter uint64

func (f *literalFactory) fresh(prefix string) bf.Formula {
	return bf.Var(f.nameOf(prefix))
}

// nameOf mints a fresh unique variable name without wrapping it in a Formula,
// for callers that need to read the variable back out of a solved model by
// name.
func (f *literalFactory) nameOf(prefix string) string {
	n := atomic.AddUint64(&auxCounter, 1)
	return fmt.Sprintf("_aux_%s_%d", prefix, n)
}

// exactlyOne encodes "exactly one of lits is true" via a direct pairwise
// at-most-one plus an at-least-one disjunction. Cheap and adequate for the
// small literal counts (subject counts per cell) this is used for.
func exactlyOne(lits []bf.Formula) bf.Formula {
	if len(lits) == 0 {
		return nil
	}
	parts := []bf.Formula{bf.Or(lits...)}
	parts = append(parts, pairwiseAtMostOne(lits)...)
	return bf.And(parts...)
}

// atMostOne encodes "at most one of lits is true" with pairwise exclusion.
func atMostOne(lits []bf.Formula) bf.Formula {
	parts := pairwiseAtMostOne(lits)
	if len(parts) == 0 {
		return nil
	}
	return bf.And(parts...)
}

func pairwiseAtMostOne(lits []bf.Formula) []bf.Formula {
	var parts []bf.Formula
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			parts = append(parts, bf.Not(bf.And(lits[i], lits[j])))
		}
	}
	return parts
}

// atMostK builds a sequential-counter (Sinz 2005) at-most-k encoding over
// lits, returning the conjunction of its defining implications, nil when the
// bound imposes no constraint (k >= len(lits)), or a forced contradiction
// when k < 0 ("at most a negative number of lits may be true" can never
// hold, regardless of how many lits there are).
func atMostK(lits []bf.Formula, k int, names *literalFactory) bf.Formula {
	n := len(lits)
	if k < 0 {
		return contradiction(names)
	}
	if k >= n {
		return nil
	}
	if k == 0 {
		parts := make([]bf.Formula, n)
		for i, l := range lits {
			parts[i] = bf.Not(l)
		}
		return bf.And(parts...)
	}

	// s[i][j], i = 0..n-2, j = 0..k-1: "at least j+1 of lits[0..i] are true".
	s := make([][]bf.Formula, n-1)
	for i := range s {
		s[i] = make([]bf.Formula, k)
		for j := range s[i] {
			s[i][j] = names.fresh("cnt")
		}
	}

	var clauses []bf.Formula
	clauses = append(clauses, bf.Implies(lits[0], s[0][0]))
	for j := 1; j < k; j++ {
		clauses = append(clauses, bf.Not(s[0][j]))
	}

	for i := 1; i < n-1; i++ {
		clauses = append(clauses, bf.Implies(lits[i], s[i][0]))
		clauses = append(clauses, bf.Implies(s[i-1][0], s[i][0]))
		for j := 1; j < k; j++ {
			clauses = append(clauses, bf.Implies(bf.And(lits[i], s[i-1][j-1]), s[i][j]))
			clauses = append(clauses, bf.Implies(s[i-1][j], s[i][j]))
		}
		clauses = append(clauses, bf.Not(bf.And(lits[i], s[i-1][k-1])))
	}
	clauses = append(clauses, bf.Not(bf.And(lits[n-1], s[n-2][k-1])))

	return bf.And(clauses...)
}

// contradiction returns a formula no model can satisfy, via a freshly named
// auxiliary variable asserted both true and false.
func contradiction(names *literalFactory) bf.Formula {
	lit := names.fresh("contradiction")
	return bf.And(lit, bf.Not(lit))
}

// exactlyK combines an at-most-k bound on lits with an at-most-(n-k) bound on
// their negations, which is equivalent to an at-least-k bound.
func exactlyK(lits []bf.Formula, k int, names *literalFactory) bf.Formula {
	atMost := atMostK(lits, k, names)

	negated := make([]bf.Formula, len(lits))
	for i, l := range lits {
		negated[i] = bf.Not(l)
	}
	atLeast := atMostK(negated, len(lits)-k, names)

	switch {
	case atMost == nil && atLeast == nil:
		return nil
	case atMost == nil:
		return atLeast
	case atLeast == nil:
		return atMost
	default:
		return bf.And(atMost, atLeast)
	}
}
