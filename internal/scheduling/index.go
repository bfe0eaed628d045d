package scheduling

import (
	"fmt"
	"sort"

	"github.com/summit-sms/timetable-engine/internal/models"
)

// DefaultDays and DefaultPeriods define the fixed weekly grid used when the
// caller does not override them (SCHED_DAYS / SCHED_PERIODS).
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const DefaultPeriods = 6

// DaysForCount resolves a configured day count against DefaultDays. A
// non-positive or out-of-range count falls back to the full default grid.
func DaysForCount(n int) []string {
	if n <= 0 || n > len(DefaultDays) {
		return DefaultDays
	}
	return DefaultDays[:n]
}

// Index interns every entity id into a dense 0-based index so the variable
// and constraint layers can work over flat integer ranges instead of string
// keys.
type Index struct {
	Days    []string
	Periods int

	classIDs   []string
	teacherIDs []string
	subjectIDs []string

	classIdx   map[string]int
	teacherIdx map[string]int
	subjectIdx map[string]int
	dayIdx     map[string]int

	// LabSubjects holds the normalized lab flag per subject index.
	LabSubjects []bool

	// TeacherOfCS[c][s] is the teacher index teaching subject s to class c,
	// or -1 if class c never takes subject s.
	TeacherOfCS [][]int

	// HoursOfCS[c][s] is the weekly hour requirement for (c, s).
	HoursOfCS [][]int

	Classes  []models.Class
	Teachers []models.Teacher
	Subjects []models.Subject
}

// BuildIndex validates referential integrity across the instance and
// constructs the dense index. An unknown id anywhere is a malformed-input
// error (never silently remapped).
func BuildIndex(classes []models.Class, teachers []models.Teacher, subjects []models.Subject, days []string, periods int) (*Index, error) {
	if len(days) == 0 {
		days = DefaultDays
	}
	if periods <= 0 {
		periods = DefaultPeriods
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("at least one teacher is required")
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("at least one subject is required")
	}

	idx := &Index{
		Days:       days,
		Periods:    periods,
		Classes:    classes,
		Teachers:   teachers,
		Subjects:   subjects,
		classIdx:   make(map[string]int, len(classes)),
		teacherIdx: make(map[string]int, len(teachers)),
		subjectIdx: make(map[string]int, len(subjects)),
		dayIdx:     make(map[string]int, len(days)),
	}

	for i, d := range days {
		idx.dayIdx[d] = i
	}
	for i, c := range classes {
		if c.ID == "" {
			return nil, fmt.Errorf("class at position %d missing id", i)
		}
		if _, dup := idx.classIdx[c.ID]; dup {
			return nil, fmt.Errorf("duplicate class id %q", c.ID)
		}
		idx.classIdx[c.ID] = i
		idx.classIDs = append(idx.classIDs, c.ID)
	}
	for i, t := range teachers {
		if t.ID == "" {
			return nil, fmt.Errorf("teacher at position %d missing id", i)
		}
		if _, dup := idx.teacherIdx[t.ID]; dup {
			return nil, fmt.Errorf("duplicate teacher id %q", t.ID)
		}
		idx.teacherIdx[t.ID] = i
		idx.teacherIDs = append(idx.teacherIDs, t.ID)
		for _, slot := range t.UnavailableSlots {
			if _, ok := idx.dayIdx[slot.Day]; !ok {
				return nil, fmt.Errorf("teacher %q unavailable slot references unknown day %q", t.ID, slot.Day)
			}
			if slot.Period < 1 || slot.Period > periods {
				return nil, fmt.Errorf("teacher %q unavailable slot period %d out of range", t.ID, slot.Period)
			}
		}
	}
	for i, s := range subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("subject at position %d missing id", i)
		}
		if _, dup := idx.subjectIdx[s.ID]; dup {
			return nil, fmt.Errorf("duplicate subject id %q", s.ID)
		}
		idx.subjectIdx[s.ID] = i
		idx.subjectIDs = append(idx.subjectIDs, s.ID)
		idx.LabSubjects = append(idx.LabSubjects, s.Lab())
	}

	idx.TeacherOfCS = make([][]int, len(classes))
	idx.HoursOfCS = make([][]int, len(classes))
	for c := range classes {
		idx.TeacherOfCS[c] = make([]int, len(subjects))
		idx.HoursOfCS[c] = make([]int, len(subjects))
		for s := range subjects {
			idx.TeacherOfCS[c][s] = -1
		}
	}

	for ci, class := range classes {
		for _, cs := range class.Subjects {
			si, ok := idx.subjectIdx[cs.SubjectID]
			if !ok {
				return nil, fmt.Errorf("class %q references unknown subject %q", class.ID, cs.SubjectID)
			}
			ti, ok := idx.teacherIdx[cs.TeacherID]
			if !ok {
				return nil, fmt.Errorf("class %q references unknown teacher %q", class.ID, cs.TeacherID)
			}
			if cs.HoursPerWeek < 0 {
				return nil, fmt.Errorf("class %q subject %q has negative hoursPerWeek", class.ID, cs.SubjectID)
			}
			idx.TeacherOfCS[ci][si] = ti
			idx.HoursOfCS[ci][si] = cs.HoursPerWeek
		}
	}

	return idx, nil
}

func (idx *Index) NumClasses() int  { return len(idx.classIDs) }
func (idx *Index) NumTeachers() int { return len(idx.teacherIDs) }
func (idx *Index) NumSubjects() int { return len(idx.subjectIDs) }
func (idx *Index) NumDays() int     { return len(idx.Days) }

func (idx *Index) ClassID(i int) string   { return idx.classIDs[i] }
func (idx *Index) TeacherID(i int) string { return idx.teacherIDs[i] }
func (idx *Index) SubjectID(i int) string { return idx.subjectIDs[i] }
func (idx *Index) DayName(i int) string   { return idx.Days[i] }

// ClassIndex returns the dense index of classID, or -1 if unknown.
func (idx *Index) ClassIndex(id string) int { return lookup(idx.classIdx, id) }

// TeacherIndex returns the dense index of teacherID, or -1 if unknown.
func (idx *Index) TeacherIndex(id string) int { return lookup(idx.teacherIdx, id) }

// SubjectIndex returns the dense index of subjectID, or -1 if unknown.
func (idx *Index) SubjectIndex(id string) int { return lookup(idx.subjectIdx, id) }

// DayIndex returns the dense index of a day name, or -1 if unknown.
func (idx *Index) DayIndex(name string) int { return lookup(idx.dayIdx, name) }

func lookup(m map[string]int, key string) int {
	if i, ok := m[key]; ok {
		return i
	}
	return -1
}

// SortedDayPeriod orders cells by (day index, period), the canonical
// presentation order for extracted and optimized timetables.
func SortedDayPeriod(idx *Index, cells []models.ScheduleCell) {
	SortCells(cells, idx.Days)
}

// SortCells orders cells by (index within days, period), without requiring a
// full Index — used by the /optimize endpoint, which sorts an externally
// supplied timetable without building a solver instance around it. A day
// name absent from days sorts after every known day; cells with unrecognized
// day names are ordered among themselves by period only, not grouped by name.
func SortCells(cells []models.ScheduleCell, days []string) {
	if len(days) == 0 {
		days = DefaultDays
	}
	rank := make(map[string]int, len(days))
	for i, d := range days {
		rank[d] = i
	}
	unknown := len(days)

	sort.SliceStable(cells, func(i, j int) bool {
		di, oki := rank[cells[i].Day]
		dj, okj := rank[cells[j].Day]
		if !oki {
			di = unknown
		}
		if !okj {
			dj = unknown
		}
		if di != dj {
			return di < dj
		}
		return cells[i].Period < cells[j].Period
	})
}
