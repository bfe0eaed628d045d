package scheduling

import (
	"github.com/crillab/gophersat/bf"
)

// periodWeight is the cost of a lesson placed in 0-based period p: the first
// period is free and each later period costs one more, biasing placements
// toward earlier periods of the day.
func periodWeight(idx *Index, p int) int {
	return p
}

// CostLit is one unit of objective cost: an indicator literal paired with the
// variable name backing it, so a solved model (keyed by name) can be read
// back without round-tripping through bf.Formula's string form.
type CostLit struct {
	Formula bf.Formula
	Name    string
}

// Objective accumulates the cost literals the solver iteratively bounds to
// search for a lower-cost satisfying assignment. There is no native linear
// objective in the underlying boolean engine, so "minimize" is realized by
// re-solving with a tightening atMostK bound over Lits (see solver.go), the
// same sequential-counter machinery constraints.go uses for hard caps. Defs
// are the clauses that define each indicator in Lits; they must be ANDed
// into the base formula unconditionally, independent of whatever bound the
// solver is currently trying.
type Objective struct {
	// Lits is the flat list of cost-contributing indicators: one entry per
	// unit of cost. A teacher contributes one indicator per weekly period
	// beyond their maxHoursPerWeek (unary thermometer encoding), and every
	// scheduled cell contributes periodWeight replicated indicators.
	Lits []CostLit

	// Defs are the hard clauses tying each indicator in Lits to its meaning;
	// always included, regardless of the current cost bound.
	Defs []bf.Formula
}

// Formulas returns the plain bf.Formula list backing Lits, for use with the
// atMostK/atMostOne helpers.
func (o *Objective) Formulas() []bf.Formula {
	fs := make([]bf.Formula, len(o.Lits))
	for i, l := range o.Lits {
		fs[i] = l.Formula
	}
	return fs
}

// BuildObjective constructs the cost literal set for the overload and
// period-bias terms described by the weighted-minimize objective. Each weekly
// period a teacher carries beyond their EffectiveMaxHoursPerWeek costs one
// unit; overloadCap bounds how many such units are counted per teacher (a
// non-positive cap leaves the count unbounded).
func BuildObjective(idx *Index, v *Variables, overloadCap int) *Objective {
	obj := &Objective{}
	names := &literalFactory{}

	for t := 0; t < idx.NumTeachers(); t++ {
		var weekly []bf.Formula
		for c := 0; c < idx.NumClasses(); c++ {
			for d := 0; d < idx.NumDays(); d++ {
				for p := 0; p < idx.Periods; p++ {
					if y := v.Y(t, c, d, p); y != nil {
						weekly = append(weekly, y)
					}
				}
			}
		}
		lits, defs := overloadThermometer(weekly, idx.Teachers[t].EffectiveMaxHoursPerWeek(), names)
		if overloadCap > 0 && len(lits) > overloadCap {
			// Each indicator has exactly two defining clauses, in order.
			lits, defs = lits[:overloadCap], defs[:2*overloadCap]
		}
		obj.Lits = append(obj.Lits, lits...)
		obj.Defs = append(obj.Defs, defs...)
	}

	for c := 0; c < idx.NumClasses(); c++ {
		for d := 0; d < idx.NumDays(); d++ {
			for p := 0; p < idx.Periods; p++ {
				w := periodWeight(idx, p)
				if w == 0 {
					continue
				}
				var anySubject []bf.Formula
				for s := 0; s < idx.NumSubjects(); s++ {
					anySubject = append(anySubject, v.X(c, d, p, s))
				}
				scheduled := bf.Or(anySubject...)
				indicatorName := names.nameOf("period")
				indicator := bf.Var(indicatorName)
				obj.Defs = append(obj.Defs,
					bf.Implies(indicator, scheduled),
					bf.Implies(scheduled, indicator),
				)
				for i := 0; i < w; i++ {
					obj.Lits = append(obj.Lits, CostLit{Formula: indicator, Name: indicatorName})
				}
			}
		}
	}

	return obj
}

// overloadThermometer returns, for each unit beyond cap, an auxiliary
// indicator that is true only when at least that many of lits hold, plus the
// clauses defining it. Every returned indicator costs one unit, so a teacher
// k periods over the cap contributes exactly k cost literals.
func overloadThermometer(lits []bf.Formula, cap int, names *literalFactory) (indicators []CostLit, defs []bf.Formula) {
	n := len(lits)
	if cap < 0 {
		cap = 0
	}
	if n <= cap {
		return nil, nil
	}

	for extra := cap + 1; extra <= n; extra++ {
		name := names.nameOf("overload")
		indicator := bf.Var(name)
		// extra is always in [1, n], so k-1 = extra-1 is always < n and
		// atMostK never falls back to its "no constraint" nil case here.
		atLeast := bf.Not(atMostK(lits, extra-1, names))
		defs = append(defs, bf.Implies(indicator, atLeast), bf.Implies(atLeast, indicator))
		indicators = append(indicators, CostLit{Formula: indicator, Name: name})
	}
	return indicators, defs
}
