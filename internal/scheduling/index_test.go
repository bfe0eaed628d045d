package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summit-sms/timetable-engine/internal/models"
)

func sampleInstance() ([]models.Class, []models.Teacher, []models.Subject) {
	teachers := []models.Teacher{
		{ID: "t1", MaxPeriodsPerDay: 4, MaxHoursPerWeek: 20},
		{ID: "t2", MaxPeriodsPerDay: 4, MaxHoursPerWeek: 20},
	}
	subjects := []models.Subject{
		{ID: "math", Type: "theory"},
		{ID: "chem", Type: "lab", IsLab: true},
	}
	classes := []models.Class{
		{ID: "c1", Subjects: []models.ClassSubject{
			{SubjectID: "math", TeacherID: "t1", HoursPerWeek: 4},
			{SubjectID: "chem", TeacherID: "t2", HoursPerWeek: 2},
		}},
	}
	return classes, teachers, subjects
}

func TestBuildIndexAppliesDefaults(t *testing.T) {
	classes, teachers, subjects := sampleInstance()

	idx, err := BuildIndex(classes, teachers, subjects, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDays, idx.Days)
	assert.Equal(t, DefaultPeriods, idx.Periods)
	assert.Equal(t, 1, idx.NumClasses())
	assert.Equal(t, 2, idx.NumTeachers())
	assert.Equal(t, 2, idx.NumSubjects())
}

func TestBuildIndexAcceptsZeroClasses(t *testing.T) {
	_, teachers, subjects := sampleInstance()

	idx, err := BuildIndex(nil, teachers, subjects, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.NumClasses())
}

func TestBuildIndexDetectsDuplicateIDs(t *testing.T) {
	classes, teachers, subjects := sampleInstance()
	classes = append(classes, classes[0])

	_, err := BuildIndex(classes, teachers, subjects, nil, 0)
	assert.Error(t, err)
}

func TestBuildIndexRejectsUnknownReferences(t *testing.T) {
	classes, teachers, subjects := sampleInstance()
	classes[0].Subjects[0].TeacherID = "ghost"

	_, err := BuildIndex(classes, teachers, subjects, nil, 0)
	assert.Error(t, err)
}

func TestBuildIndexTracksLabSubjects(t *testing.T) {
	classes, teachers, subjects := sampleInstance()

	idx, err := BuildIndex(classes, teachers, subjects, nil, 0)
	require.NoError(t, err)
	assert.False(t, idx.LabSubjects[idx.SubjectIndex("math")])
	assert.True(t, idx.LabSubjects[idx.SubjectIndex("chem")])
}

func TestIndexLookupsReturnMinusOneForUnknown(t *testing.T) {
	classes, teachers, subjects := sampleInstance()
	idx, err := BuildIndex(classes, teachers, subjects, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, -1, idx.ClassIndex("nope"))
	assert.Equal(t, -1, idx.TeacherIndex("nope"))
	assert.Equal(t, -1, idx.SubjectIndex("nope"))
	assert.Equal(t, -1, idx.DayIndex("Sunday"))
}

func TestSortedDayPeriodOrdersCanonically(t *testing.T) {
	classes, teachers, subjects := sampleInstance()
	idx, err := BuildIndex(classes, teachers, subjects, nil, 0)
	require.NoError(t, err)

	cells := []models.ScheduleCell{
		{Day: "Tuesday", Period: 1},
		{Day: "Monday", Period: 3},
		{Day: "Monday", Period: 1},
	}
	SortedDayPeriod(idx, cells)

	assert.Equal(t, "Monday", cells[0].Day)
	assert.Equal(t, 1, cells[0].Period)
	assert.Equal(t, "Monday", cells[1].Day)
	assert.Equal(t, 3, cells[1].Period)
	assert.Equal(t, "Tuesday", cells[2].Day)
}
