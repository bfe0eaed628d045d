package scheduling

import (
	"fmt"

	"github.com/crillab/gophersat/bf"
)

// Variables holds the boolean decision variables for one problem instance.
// tv[c,d,p] from the model description is never materialized: it is derived
// at extraction time from x and Index.TeacherOfCS, since the underlying
// boolean engine has no native integer domain.
type Variables struct {
	idx *Index

	// x[c][d][p][s] = "class c has subject s at day d, period p".
	x [][][][]bf.Formula
	// xNames mirrors x with the exact variable name each literal was built
	// from, so the solver can read truth values back out of a bf.Solve model
	// (keyed by name) without round-tripping through bf.Formula.
	xNames [][][][]string

	// y[t][c][d][p] = "teacher t teaches class c at day d, period p". Only
	// allocated for (t, c) pairs where teacherOfCS maps some subject of c to
	// t; all other combinations are structurally impossible and never get a
	// variable.
	y      map[yKey]bf.Formula
	yNames map[yKey]string
}

type yKey struct {
	t, c, d, p int
}

// NewVariables allocates the full variable layer for the given index.
func NewVariables(idx *Index) *Variables {
	v := &Variables{idx: idx, y: make(map[yKey]bf.Formula), yNames: make(map[yKey]string)}

	C, D, P, S := idx.NumClasses(), idx.NumDays(), idx.Periods, idx.NumSubjects()
	v.x = make([][][][]bf.Formula, C)
	v.xNames = make([][][][]string, C)
	for c := 0; c < C; c++ {
		v.x[c] = make([][][]bf.Formula, D)
		v.xNames[c] = make([][][]string, D)
		for d := 0; d < D; d++ {
			v.x[c][d] = make([][]bf.Formula, P)
			v.xNames[c][d] = make([][]string, P)
			for p := 0; p < P; p++ {
				v.x[c][d][p] = make([]bf.Formula, S)
				v.xNames[c][d][p] = make([]string, S)
				for s := 0; s < S; s++ {
					name := fmt.Sprintf("x_%d_%d_%d_%d", c, d, p, s)
					v.x[c][d][p][s] = bf.Var(name)
					v.xNames[c][d][p][s] = name
				}
			}
		}
	}

	for c := 0; c < C; c++ {
		teachersOfClass := map[int]bool{}
		for s := 0; s < S; s++ {
			if t := idx.TeacherOfCS[c][s]; t >= 0 {
				teachersOfClass[t] = true
			}
		}
		for t := range teachersOfClass {
			for d := 0; d < D; d++ {
				for p := 0; p < P; p++ {
					key := yKey{t: t, c: c, d: d, p: p}
					name := fmt.Sprintf("y_%d_%d_%d_%d", t, c, d, p)
					v.y[key] = bf.Var(name)
					v.yNames[key] = name
				}
			}
		}
	}

	return v
}

// X returns the decision literal for class c, day d, period p, subject s.
func (v *Variables) X(c, d, p, s int) bf.Formula {
	return v.x[c][d][p][s]
}

// XName returns the variable name backing X(c, d, p, s), for reading truth
// values out of a solved model.
func (v *Variables) XName(c, d, p, s int) string {
	return v.xNames[c][d][p][s]
}

// Y returns the teacher-linkage literal, or nil if teacher t can never teach
// class c (no subject in c's plan maps to t).
func (v *Variables) Y(t, c, d, p int) bf.Formula {
	return v.y[yKey{t: t, c: c, d: d, p: p}]
}

// YName returns the variable name backing Y(t, c, d, p), and whether it
// exists.
func (v *Variables) YName(t, c, d, p int) (string, bool) {
	name, ok := v.yNames[yKey{t: t, c: c, d: d, p: p}]
	return name, ok
}

// TeachersOf returns the distinct teacher indices assigned to class c.
func (v *Variables) TeachersOf(c int) []int {
	seen := map[int]bool{}
	var teachers []int
	for s := 0; s < v.idx.NumSubjects(); s++ {
		if t := v.idx.TeacherOfCS[c][s]; t >= 0 && !seen[t] {
			seen[t] = true
			teachers = append(teachers, t)
		}
	}
	return teachers
}
