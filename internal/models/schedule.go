package models

// FixedSlot pins a (class, day, period) cell before the solver runs. Subject
// and/or teacher may be specified; an empty field is unconstrained.
type FixedSlot struct {
	ClassID   string `json:"classId" validate:"required"`
	Day       string `json:"day" validate:"required"`
	Period    int    `json:"period" validate:"required,min=1"`
	SubjectID string `json:"subjectId,omitempty"`
	TeacherID string `json:"teacherId,omitempty"`
}

// ScheduleCell is one occupied (class, day, period) slot, either produced by
// the solver or supplied for validation/optimization. RoomID is carried only
// by externally supplied timetables; the solver never sets it.
type ScheduleCell struct {
	ClassID   string `json:"classId"`
	Day       string `json:"day"`
	Period    int    `json:"period"`
	SubjectID string `json:"subjectId"`
	TeacherID string `json:"teacherId"`
	RoomID    string `json:"roomId,omitempty"`
}

// ConflictType enumerates the dimensions the conflict detector checks.
type ConflictType string

const (
	ConflictTeacherDoubleBooking ConflictType = "teacher_double_booking"
	ConflictClassDoubleBooking   ConflictType = "class_double_booking"
	ConflictRoomDoubleBooking    ConflictType = "room_double_booking"
)

// Conflict describes two cells that collide on the same resource at the same
// (day, period).
type Conflict struct {
	Type               ConflictType `json:"type"`
	ResourceID         string       `json:"resourceId"`
	Day                string       `json:"day"`
	Period             int          `json:"period"`
	ConflictingClasses []string     `json:"conflictingClasses"`
	Message            string       `json:"message"`
}

// Statistics summarises a produced or validated timetable.
type Statistics struct {
	TotalPossibleSlots  int            `json:"totalPossibleSlots"`
	ScheduledSlots      int            `json:"scheduledSlots"`
	UtilizationRate     float64        `json:"utilizationRate"`
	TeacherWorkload     map[string]int `json:"teacherWorkload"`
	ClassUtilization    map[string]int `json:"classUtilization"`
	SubjectDistribution map[string]int `json:"subjectDistribution"`
	RoomUsage           map[string]int `json:"roomUsage,omitempty"`
	ConflictCount       int            `json:"conflictCount"`
	ConflictDetails     []Conflict     `json:"conflictDetails,omitempty"`
	SolveTimeMs         int64          `json:"solveTimeMs"`
}

// Outcome reports how the solver left an instance.
type Outcome string

const (
	OutcomeOptimal    Outcome = "optimal"
	OutcomeFeasible   Outcome = "feasible"
	OutcomeInfeasible Outcome = "infeasible"
)
