package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit-sms/timetable-engine/internal/models"
)

func tinyInstance() ([]models.Class, []models.Teacher, []models.Subject) {
	teachers := []models.Teacher{
		{ID: "t1", MaxPeriodsPerDay: 2, MaxHoursPerWeek: 10},
	}
	subjects := []models.Subject{
		{ID: "math", Type: "theory"},
	}
	classes := []models.Class{
		{ID: "c1", Subjects: []models.ClassSubject{
			{SubjectID: "math", TeacherID: "t1", HoursPerWeek: 2},
		}},
	}
	return classes, teachers, subjects
}

func TestSolveFeasibleInstanceProducesValidTimetable(t *testing.T) {
	classes, teachers, subjects := tinyInstance()

	result, err := Solve(classes, teachers, subjects, nil, []string{"Monday", "Tuesday"}, 2, SolveConfig{
		TimeLimit:   5 * time.Second,
		Workers:     2,
		OverloadCap: 10,
	})
	require.NoError(t, err)
	require.NotEqual(t, models.OutcomeInfeasible, result.Outcome)

	assert.Len(t, result.Timetable, 2)
	for _, cell := range result.Timetable {
		assert.Equal(t, "c1", cell.ClassID)
		assert.Equal(t, "math", cell.SubjectID)
		assert.Equal(t, "t1", cell.TeacherID)
	}
	assert.Empty(t, DetectConflicts(result.Timetable))
}

func TestSolveRespectsFixedSlot(t *testing.T) {
	classes, teachers, subjects := tinyInstance()
	fixed := []models.FixedSlot{
		{ClassID: "c1", Day: "Monday", Period: 1, SubjectID: "math"},
	}

	result, err := Solve(classes, teachers, subjects, fixed, []string{"Monday", "Tuesday"}, 2, SolveConfig{
		TimeLimit: 5 * time.Second,
		Workers:   2,
	})
	require.NoError(t, err)
	require.NotEqual(t, models.OutcomeInfeasible, result.Outcome)

	found := false
	for _, cell := range result.Timetable {
		if cell.Day == "Monday" && cell.Period == 1 {
			found = true
			assert.Equal(t, "math", cell.SubjectID)
		}
	}
	assert.True(t, found, "fixed slot must be present in the extracted timetable")
}

func TestSolveZeroClassesProducesEmptySuccessfulTimetable(t *testing.T) {
	_, teachers, subjects := tinyInstance()

	result, err := Solve(nil, teachers, subjects, nil, []string{"Monday", "Tuesday"}, 2, SolveConfig{
		TimeLimit: 5 * time.Second,
		Workers:   2,
	})
	require.NoError(t, err)
	assert.NotEqual(t, models.OutcomeInfeasible, result.Outcome)
	assert.Empty(t, result.Timetable)
}

func TestSolveOverconstrainedInstanceIsInfeasible(t *testing.T) {
	classes, teachers, subjects := tinyInstance()
	// Demand more weekly hours than the 1x2 grid (1 day x 2 periods) has room for.
	classes[0].Subjects[0].HoursPerWeek = 99

	result, err := Solve(classes, teachers, subjects, nil, []string{"Monday"}, 2, SolveConfig{
		TimeLimit: 2 * time.Second,
		Workers:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeInfeasible, result.Outcome)
}

func TestSolveRejectsFixedSlotForUnknownClass(t *testing.T) {
	classes, teachers, subjects := tinyInstance()
	fixed := []models.FixedSlot{
		{ClassID: "ghost", Day: "Monday", Period: 1, SubjectID: "math"},
	}

	_, err := Solve(classes, teachers, subjects, fixed, []string{"Monday", "Tuesday"}, 2, SolveConfig{})
	assert.Error(t, err)
}

func TestSolveRejectsFixedSlotForTeacherNotAssignedToClass(t *testing.T) {
	classes, teachers, subjects := tinyInstance()
	// t1 teaches c1 math; add a second teacher who is never assigned to c1 at
	// all.
	teachers = append(teachers, models.Teacher{ID: "t2", MaxPeriodsPerDay: 2, MaxHoursPerWeek: 10})
	fixed := []models.FixedSlot{
		{ClassID: "c1", Day: "Monday", Period: 1, TeacherID: "t2"},
	}

	_, err := Solve(classes, teachers, subjects, fixed, []string{"Monday", "Tuesday"}, 2, SolveConfig{})
	assert.Error(t, err, "a teacher never assigned to the class must be rejected, not silently dropped")
}
