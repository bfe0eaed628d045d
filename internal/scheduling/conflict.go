package scheduling

import (
	"fmt"
	"sort"

	"github.com/summit-sms/timetable-engine/internal/models"
)

type slotKey struct {
	day    string
	period int
}

// DetectConflicts checks an externally supplied (or solver-produced)
// timetable for resource double-bookings: the same teacher, the same class,
// or the same room occupying more than one cell at an identical (day,
// period). It never consults the solver's variable layer — this is a
// stand-alone, cell-level check usable on any timetable, solved or not.
func DetectConflicts(cells []models.ScheduleCell) []models.Conflict {
	teacherSlots := map[string]map[slotKey][]string{}
	classSlots := map[string]map[slotKey][]string{}
	roomSlots := map[string]map[slotKey][]string{}

	for _, cell := range cells {
		key := slotKey{day: cell.Day, period: cell.Period}
		if cell.TeacherID != "" {
			recordOccupant(teacherSlots, cell.TeacherID, key, cell.ClassID)
		}
		recordOccupant(classSlots, cell.ClassID, key, cell.SubjectID)
		if cell.RoomID != "" {
			recordOccupant(roomSlots, cell.RoomID, key, cell.ClassID)
		}
	}

	var conflicts []models.Conflict
	conflicts = append(conflicts, collectConflicts(teacherSlots, models.ConflictTeacherDoubleBooking, "teacher %s is double-booked")...)
	conflicts = append(conflicts, collectConflicts(classSlots, models.ConflictClassDoubleBooking, "class %s has more than one subject")...)
	conflicts = append(conflicts, collectConflicts(roomSlots, models.ConflictRoomDoubleBooking, "room %s is double-booked")...)

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Day != conflicts[j].Day {
			return conflicts[i].Day < conflicts[j].Day
		}
		if conflicts[i].Period != conflicts[j].Period {
			return conflicts[i].Period < conflicts[j].Period
		}
		return conflicts[i].ResourceID < conflicts[j].ResourceID
	})

	return conflicts
}

func recordOccupant(bucket map[string]map[slotKey][]string, resourceID string, key slotKey, occupant string) {
	if bucket[resourceID] == nil {
		bucket[resourceID] = map[slotKey][]string{}
	}
	bucket[resourceID][key] = append(bucket[resourceID][key], occupant)
}

func collectConflicts(bucket map[string]map[slotKey][]string, kind models.ConflictType, messageFormat string) []models.Conflict {
	var out []models.Conflict
	for resourceID, slots := range bucket {
		for key, occupants := range slots {
			if len(occupants) < 2 {
				continue
			}
			out = append(out, models.Conflict{
				Type:               kind,
				ResourceID:         resourceID,
				Day:                key.day,
				Period:             key.period,
				ConflictingClasses: occupants,
				Message:            fmt.Sprintf(messageFormat, resourceID),
			})
		}
	}
	return out
}
