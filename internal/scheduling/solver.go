package scheduling

import (
	"context"
	"time"

	"github.com/crillab/gophersat/bf"

	"github.com/summit-sms/timetable-engine/internal/models"
)

// SolveConfig bounds the search: a wall-clock budget shared across a
// portfolio of concurrent attempts. gophersat's bf.Solve is effectively
// single-threaded per call and exposes no seed/polarity hook, so "workers"
// here means independent racing attempts over the same formula rather than a
// single solver's internal thread pool — the honest analogue available on
// top of a boolean engine. In practice the first attempt to return wins; the
// portfolio mainly buys resilience against one goroutine stalling.
type SolveConfig struct {
	TimeLimit   time.Duration
	Workers     int
	OverloadCap int
}

// Result is the outcome of one Solve call.
type Result struct {
	Outcome    models.Outcome
	Timetable  []models.ScheduleCell
	Statistics models.Statistics
}

// Solve builds the index, variable layer, constraints and objective for the
// given instance, then searches for a satisfying assignment within
// cfg.TimeLimit, tightening toward a lower-cost one while budget remains.
func Solve(classes []models.Class, teachers []models.Teacher, subjects []models.Subject, fixedSlots []models.FixedSlot, days []string, periods int, cfg SolveConfig) (*Result, error) {
	start := time.Now()

	idx, err := BuildIndex(classes, teachers, subjects, days, periods)
	if err != nil {
		return nil, err
	}
	v := NewVariables(idx)

	constraints, err := BuildConstraints(idx, v, fixedSlots)
	if err != nil {
		return nil, err
	}

	obj := BuildObjective(idx, v, cfg.OverloadCap)
	base := append(append([]bf.Formula{}, constraints...), obj.Defs...)

	ctx, cancel := context.WithTimeout(context.Background(), effectiveTimeLimit(cfg))
	defer cancel()

	assignment, feasible := portfolioSolve(ctx, base, effectiveWorkers(cfg))
	if !feasible {
		return &Result{
			Outcome: models.OutcomeInfeasible,
			Statistics: models.Statistics{
				TotalPossibleSlots: idx.NumClasses() * idx.NumDays() * idx.Periods,
				SolveTimeMs:        time.Since(start).Milliseconds(),
			},
		}, nil
	}

	outcome := models.OutcomeFeasible
	tightened, optimal := tightenCost(ctx, base, obj, assignment)
	assignment = tightened
	if optimal {
		outcome = models.OutcomeOptimal
	}

	cells := extract(idx, v, assignment)
	SortedDayPeriod(idx, cells)
	stats := computeStatistics(idx, cells)
	stats.SolveTimeMs = time.Since(start).Milliseconds()

	return &Result{Outcome: outcome, Timetable: cells, Statistics: stats}, nil
}

func effectiveTimeLimit(cfg SolveConfig) time.Duration {
	if cfg.TimeLimit <= 0 {
		return 30 * time.Second
	}
	return cfg.TimeLimit
}

func effectiveWorkers(cfg SolveConfig) int {
	if cfg.Workers <= 0 {
		return 8
	}
	return cfg.Workers
}

// portfolioSolve races independent bf.Solve attempts against the same
// formula and returns the first satisfying model found before ctx expires.
func portfolioSolve(ctx context.Context, clauses []bf.Formula, workers int) (map[string]bool, bool) {
	formula := bf.And(clauses...)

	type outcome struct {
		model map[string]bool
		ok    bool
	}
	results := make(chan outcome, workers)

	for w := 0; w < workers; w++ {
		go func() {
			select {
			case <-ctx.Done():
				return
			default:
			}
			model, err := bf.Solve(formula)
			select {
			case results <- outcome{model: model, ok: err == nil}:
			case <-ctx.Done():
			}
		}()
	}

	remaining := workers
	for remaining > 0 {
		select {
		case <-ctx.Done():
			return nil, false
		case res := <-results:
			remaining--
			if res.ok {
				return res.model, true
			}
		}
	}
	return nil, false
}

// tightenCost iteratively re-solves with a shrinking atMostK bound over the
// objective's cost literals, keeping the best (lowest-cost) assignment found
// before ctx expires. ok reports whether the returned assignment is proven
// cost-optimal (the bound was tightened until no further improvement was
// possible, or zero cost was reached) rather than merely the last one found
// before the budget ran out.
func tightenCost(ctx context.Context, base []bf.Formula, obj *Objective, feasible map[string]bool) (map[string]bool, bool) {
	lits := obj.Formulas()
	if len(lits) == 0 {
		return feasible, true
	}

	currentCost := countTrue(obj.Lits, feasible)
	if currentCost == 0 {
		return feasible, true
	}

	names := &literalFactory{}
	best := feasible
	bound := currentCost - 1

	for bound >= 0 {
		select {
		case <-ctx.Done():
			return best, false
		default:
		}

		attempt := append(append([]bf.Formula{}, base...), atMostK(lits, bound, names))
		model, err := bf.Solve(bf.And(attempt...))
		if err != nil {
			return best, true
		}
		best = model
		bound = countTrue(obj.Lits, model) - 1
	}

	return best, true
}

func countTrue(lits []CostLit, model map[string]bool) int {
	n := 0
	for _, l := range lits {
		if model[l.Name] {
			n++
		}
	}
	return n
}

func extract(idx *Index, v *Variables, model map[string]bool) []models.ScheduleCell {
	var cells []models.ScheduleCell
	for c := 0; c < idx.NumClasses(); c++ {
		for d := 0; d < idx.NumDays(); d++ {
			for p := 0; p < idx.Periods; p++ {
				for s := 0; s < idx.NumSubjects(); s++ {
					if !model[v.XName(c, d, p, s)] {
						continue
					}
					teacher := idx.TeacherOfCS[c][s]
					teacherID := ""
					if teacher >= 0 {
						teacherID = idx.TeacherID(teacher)
					}
					cells = append(cells, models.ScheduleCell{
						ClassID:   idx.ClassID(c),
						Day:       idx.DayName(d),
						Period:    p + 1,
						SubjectID: idx.SubjectID(s),
						TeacherID: teacherID,
					})
				}
			}
		}
	}
	return cells
}

func computeStatistics(idx *Index, cells []models.ScheduleCell) models.Statistics {
	stats := models.Statistics{
		TotalPossibleSlots:  idx.NumClasses() * idx.NumDays() * idx.Periods,
		ScheduledSlots:      len(cells),
		TeacherWorkload:     map[string]int{},
		ClassUtilization:    map[string]int{},
		SubjectDistribution: map[string]int{},
		RoomUsage:           map[string]int{},
	}
	for _, cell := range cells {
		if cell.TeacherID != "" {
			stats.TeacherWorkload[cell.TeacherID]++
		}
		stats.ClassUtilization[cell.ClassID]++
		stats.SubjectDistribution[cell.SubjectID]++
		if cell.RoomID != "" {
			stats.RoomUsage[cell.RoomID]++
		}
	}
	if stats.TotalPossibleSlots > 0 {
		stats.UtilizationRate = float64(stats.ScheduledSlots) / float64(stats.TotalPossibleSlots)
	}
	conflicts := DetectConflicts(cells)
	stats.ConflictCount = len(conflicts)
	stats.ConflictDetails = conflicts
	return stats
}
