package dto

import "github.com/summit-sms/timetable-engine/internal/models"

// ScheduleRequest is the body of POST /schedule: the full weekly-timetable
// instance the solver builds its index, variable layer and constraints from.
type ScheduleRequest struct {
	Classes    []models.Class     `json:"classes,omitempty" validate:"omitempty,dive"`
	Teachers   []models.Teacher   `json:"teachers" validate:"required,min=1,dive"`
	Subjects   []models.Subject   `json:"subjects" validate:"required,min=1,dive"`
	FixedSlots []models.FixedSlot `json:"fixedSlots,omitempty" validate:"omitempty,dive"`
}

// ScheduleResponse reports the solver's outcome for one request.
type ScheduleResponse struct {
	Status     string                `json:"status"`
	Message    string                `json:"message"`
	Timetable  []models.ScheduleCell `json:"timetable,omitempty"`
	Statistics *models.Statistics    `json:"statistics,omitempty"`
}

// ValidateRequest is the body of POST /validate: a timetable to check for
// resource conflicts without invoking the solver.
type ValidateRequest struct {
	Timetable []models.ScheduleCell `json:"timetable" validate:"required,dive"`
}

// ValidateResponse reports every conflict DetectConflicts found.
type ValidateResponse struct {
	Valid     bool              `json:"valid"`
	Conflicts []models.Conflict `json:"conflicts,omitempty"`
	Message   string            `json:"message"`
}

// OptimizeRequest is the body of POST /optimize: a timetable to canonicalize
// into (dayIdx, period) order. No solver work is performed.
type OptimizeRequest struct {
	Timetable []models.ScheduleCell `json:"timetable" validate:"required,dive"`
}

// OptimizeResponse returns the input timetable sorted into canonical order.
type OptimizeResponse struct {
	Timetable []models.ScheduleCell `json:"timetable"`
	Message   string                `json:"message"`
}
