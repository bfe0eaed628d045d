package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/summit-sms/timetable-engine/internal/models"
)

func TestDetectConflictsFindsTeacherDoubleBooking(t *testing.T) {
	cells := []models.ScheduleCell{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "math", TeacherID: "t1"},
		{ClassID: "c2", Day: "Monday", Period: 1, SubjectID: "phys", TeacherID: "t1"},
	}

	conflicts := DetectConflicts(cells)
	require_ := assert.New(t)
	require_.Len(conflicts, 1)
	require_.Equal(models.ConflictTeacherDoubleBooking, conflicts[0].Type)
	require_.Equal("t1", conflicts[0].ResourceID)
	require_.ElementsMatch([]string{"c1", "c2"}, conflicts[0].ConflictingClasses)
}

func TestDetectConflictsFindsRoomDoubleBooking(t *testing.T) {
	cells := []models.ScheduleCell{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "math", TeacherID: "t1", RoomID: "r1"},
		{ClassID: "c2", Day: "Monday", Period: 1, SubjectID: "phys", TeacherID: "t2", RoomID: "r1"},
	}

	conflicts := DetectConflicts(cells)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoomDoubleBooking, conflicts[0].Type)
	assert.Equal(t, "r1", conflicts[0].ResourceID)
}

func TestDetectConflictsFindsClassDoubleBooking(t *testing.T) {
	cells := []models.ScheduleCell{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "math", TeacherID: "t1"},
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "phys", TeacherID: "t2"},
	}

	conflicts := DetectConflicts(cells)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictClassDoubleBooking, conflicts[0].Type)
}

func TestDetectConflictsCleanTimetableHasNone(t *testing.T) {
	cells := []models.ScheduleCell{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "math", TeacherID: "t1"},
		{ClassID: "c1", Day: "Monday", Period: 2, SubjectID: "phys", TeacherID: "t2"},
		{ClassID: "c2", Day: "Monday", Period: 1, SubjectID: "math", TeacherID: "t2"},
	}

	assert.Empty(t, DetectConflicts(cells))
}

func TestDetectConflictsIgnoresMissingTeacherOrRoom(t *testing.T) {
	cells := []models.ScheduleCell{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "study"},
		{ClassID: "c2", Day: "Monday", Period: 1, SubjectID: "study"},
	}

	assert.Empty(t, DetectConflicts(cells))
}
