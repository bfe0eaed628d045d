package models

// Class is a section that requires a weekly allotment of subjects.
type Class struct {
	ID       string         `json:"id" validate:"required"`
	Subjects []ClassSubject `json:"subjects" validate:"required,min=1,dive"`
}

// ClassSubject binds a subject taught to a class by a specific teacher for a
// weekly hour count.
type ClassSubject struct {
	SubjectID    string `json:"subjectId" validate:"required"`
	TeacherID    string `json:"teacherId" validate:"required"`
	HoursPerWeek int    `json:"hoursPerWeek" validate:"min=0"`
}
