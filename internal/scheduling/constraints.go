package scheduling

import (
	"fmt"

	"github.com/crillab/gophersat/bf"

	"github.com/summit-sms/timetable-engine/internal/models"
)

// BuildConstraints emits every feasibility constraint described by the
// variable-linking and scheduling rules, in the fixed order the model
// requires (later constraints may assume earlier ones hold). It returns the
// conjuncts to AND together into the final formula.
func BuildConstraints(idx *Index, v *Variables, fixedSlots []models.FixedSlot) ([]bf.Formula, error) {
	names := &literalFactory{}
	var clauses []bf.Formula

	clauses = append(clauses, singleAssignmentPerCell(idx, v)...)
	clauses = append(clauses, forbidUnmappedSubjects(idx, v)...)
	clauses = append(clauses, weeklyHoursExact(idx, v, names)...)

	fixed, err := fixedSlotConstraints(idx, v, fixedSlots)
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, fixed...)

	clauses = append(clauses, teacherLinkage(idx, v)...)
	clauses = append(clauses, teacherNoDoubleBooking(idx, v, names)...)
	clauses = append(clauses, teacherAvailability(idx, v)...)
	clauses = append(clauses, teacherDailyCap(idx, v, names)...)
	clauses = append(clauses, teacherNoBackToBack(idx, v)...)
	clauses = append(clauses, noConsecutiveSameSubject(idx, v)...)
	clauses = append(clauses, labPairing(idx, v)...)
	clauses = append(clauses, noTripleLab(idx, v, names)...)

	return clauses, nil
}

// 1. Every (c,d,p) cell holds exactly one subject.
func singleAssignmentPerCell(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for d := 0; d < idx.NumDays(); d++ {
			for p := 0; p < idx.Periods; p++ {
				lits := make([]bf.Formula, idx.NumSubjects())
				for s := range lits {
					lits[s] = v.X(c, d, p, s)
				}
				out = append(out, exactlyOne(lits))
			}
		}
	}
	return out
}

// 2. A class can never be assigned a subject it has no teacher mapping for.
func forbidUnmappedSubjects(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for s := 0; s < idx.NumSubjects(); s++ {
			if idx.TeacherOfCS[c][s] >= 0 {
				continue
			}
			for d := 0; d < idx.NumDays(); d++ {
				for p := 0; p < idx.Periods; p++ {
					out = append(out, bf.Not(v.X(c, d, p, s)))
				}
			}
		}
	}
	return out
}

// 3. Weekly hours for (c,s) match the class's plan exactly.
func weeklyHoursExact(idx *Index, v *Variables, names *literalFactory) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for s := 0; s < idx.NumSubjects(); s++ {
			if idx.TeacherOfCS[c][s] < 0 {
				continue
			}
			lits := make([]bf.Formula, 0, idx.NumDays()*idx.Periods)
			for d := 0; d < idx.NumDays(); d++ {
				for p := 0; p < idx.Periods; p++ {
					lits = append(lits, v.X(c, d, p, s))
				}
			}
			if f := exactlyK(lits, idx.HoursOfCS[c][s], names); f != nil {
				out = append(out, f)
			}
		}
	}
	return out
}

// 4. Fixed slots are pinned before the remaining constraints are considered.
func fixedSlotConstraints(idx *Index, v *Variables, fixedSlots []models.FixedSlot) ([]bf.Formula, error) {
	var out []bf.Formula
	for _, fs := range fixedSlots {
		c := idx.ClassIndex(fs.ClassID)
		if c < 0 {
			return nil, fmt.Errorf("fixed slot references unknown class %q", fs.ClassID)
		}
		d := idx.DayIndex(fs.Day)
		if d < 0 {
			return nil, fmt.Errorf("fixed slot references unknown day %q", fs.Day)
		}
		p := fs.Period - 1
		if p < 0 || p >= idx.Periods {
			return nil, fmt.Errorf("fixed slot period %d out of range for class %q", fs.Period, fs.ClassID)
		}

		switch {
		case fs.SubjectID != "":
			s := idx.SubjectIndex(fs.SubjectID)
			if s < 0 {
				return nil, fmt.Errorf("fixed slot references unknown subject %q", fs.SubjectID)
			}
			out = append(out, v.X(c, d, p, s))
		case fs.TeacherID != "":
			t := idx.TeacherIndex(fs.TeacherID)
			if t < 0 {
				return nil, fmt.Errorf("fixed slot references unknown teacher %q", fs.TeacherID)
			}
			y := v.Y(t, c, d, p)
			if y == nil {
				return nil, fmt.Errorf("fixed slot references teacher %q who is not assigned to class %q", fs.TeacherID, fs.ClassID)
			}
			out = append(out, y)
		default:
			return nil, fmt.Errorf("fixed slot for class %q day %q period %d has neither subjectId nor teacherId", fs.ClassID, fs.Day, fs.Period)
		}
	}
	return out, nil
}

// 5. y[t,c,d,p] is equivalent to the disjunction of x[c,d,p,s] over every
// subject s that class c's plan maps to teacher t; forced false otherwise.
func teacherLinkage(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for _, t := range v.TeachersOf(c) {
			for d := 0; d < idx.NumDays(); d++ {
				for p := 0; p < idx.Periods; p++ {
					y := v.Y(t, c, d, p)
					var lits []bf.Formula
					for s := 0; s < idx.NumSubjects(); s++ {
						if idx.TeacherOfCS[c][s] == t {
							lits = append(lits, v.X(c, d, p, s))
						}
					}
					out = append(out, bf.Implies(y, bf.Or(lits...)))
					for _, lit := range lits {
						out = append(out, bf.Implies(lit, y))
					}
				}
			}
		}
	}
	return out
}

// 6. No teacher is double-booked across classes at the same (d,p).
func teacherNoDoubleBooking(idx *Index, v *Variables, names *literalFactory) []bf.Formula {
	var out []bf.Formula
	for t := 0; t < idx.NumTeachers(); t++ {
		for d := 0; d < idx.NumDays(); d++ {
			for p := 0; p < idx.Periods; p++ {
				var lits []bf.Formula
				for c := 0; c < idx.NumClasses(); c++ {
					if y := v.Y(t, c, d, p); y != nil {
						lits = append(lits, y)
					}
				}
				if f := atMostOne(lits); f != nil {
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// 7. A teacher is never assigned a cell inside their unavailable slots.
func teacherAvailability(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for ti, teacher := range idx.Teachers {
		for _, slot := range teacher.UnavailableSlots {
			d := idx.DayIndex(slot.Day)
			p := slot.Period - 1
			if d < 0 || p < 0 || p >= idx.Periods {
				continue
			}
			for c := 0; c < idx.NumClasses(); c++ {
				if y := v.Y(ti, c, d, p); y != nil {
					out = append(out, bf.Not(y))
				}
			}
		}
	}
	return out
}

// 8. Per teacher per day, teaching-cell count stays within maxPeriodsPerDay.
func teacherDailyCap(idx *Index, v *Variables, names *literalFactory) []bf.Formula {
	var out []bf.Formula
	for ti, teacher := range idx.Teachers {
		cap := teacher.EffectiveMaxPeriodsPerDay()
		for d := 0; d < idx.NumDays(); d++ {
			var lits []bf.Formula
			for c := 0; c < idx.NumClasses(); c++ {
				for p := 0; p < idx.Periods; p++ {
					if y := v.Y(ti, c, d, p); y != nil {
						lits = append(lits, y)
					}
				}
			}
			if f := atMostK(lits, cap, names); f != nil {
				out = append(out, f)
			}
		}
	}
	return out
}

// 9. A teacher never teaches two adjacent periods on the same day.
func teacherNoBackToBack(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for t := 0; t < idx.NumTeachers(); t++ {
		for d := 0; d < idx.NumDays(); d++ {
			for p := 0; p < idx.Periods-1; p++ {
				var here, next []bf.Formula
				for c := 0; c < idx.NumClasses(); c++ {
					if y := v.Y(t, c, d, p); y != nil {
						here = append(here, y)
					}
					if y := v.Y(t, c, d, p+1); y != nil {
						next = append(next, y)
					}
				}
				combined := append(append([]bf.Formula{}, here...), next...)
				if f := atMostOne(combined); f != nil {
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// 10. A non-lab subject never occupies two adjacent periods for a class.
func noConsecutiveSameSubject(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for s := 0; s < idx.NumSubjects(); s++ {
			if idx.LabSubjects[s] {
				continue
			}
			for d := 0; d < idx.NumDays(); d++ {
				for p := 0; p < idx.Periods-1; p++ {
					out = append(out, bf.Not(bf.And(v.X(c, d, p, s), v.X(c, d, p+1, s))))
				}
			}
		}
	}
	return out
}

// 11. A lab subject placed at period p must also occupy p+1; never at the
// last period.
func labPairing(idx *Index, v *Variables) []bf.Formula {
	var out []bf.Formula
	last := idx.Periods - 1
	for c := 0; c < idx.NumClasses(); c++ {
		for s := 0; s < idx.NumSubjects(); s++ {
			if !idx.LabSubjects[s] {
				continue
			}
			for d := 0; d < idx.NumDays(); d++ {
				out = append(out, bf.Not(v.X(c, d, last, s)))
				for p := 0; p < last; p++ {
					out = append(out, bf.Implies(v.X(c, d, p, s), v.X(c, d, p+1, s)))
				}
			}
		}
	}
	return out
}

// 12. No three consecutive cells hold the same lab subject.
func noTripleLab(idx *Index, v *Variables, names *literalFactory) []bf.Formula {
	var out []bf.Formula
	for c := 0; c < idx.NumClasses(); c++ {
		for s := 0; s < idx.NumSubjects(); s++ {
			if !idx.LabSubjects[s] {
				continue
			}
			for d := 0; d < idx.NumDays(); d++ {
				for p := 1; p < idx.Periods-1; p++ {
					lits := []bf.Formula{v.X(c, d, p-1, s), v.X(c, d, p, s), v.X(c, d, p+1, s)}
					if f := atMostK(lits, 2, names); f != nil {
						out = append(out, f)
					}
				}
			}
		}
	}
	return out
}
