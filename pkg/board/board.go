package board

import (
	"github.com/google/uuid"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// ResolveDays maps each weekday to the relation ids scheduled on it, in
// listing order. Entries whose (student, need) pair is unknown to the
// index are dropped rather than failing the whole board: the schedule
// may reference relations dissociated since it was written. A relation
// listed twice on the same day is kept once.
func ResolveDays(days []models.ScheduleDay, ix *Index) map[int][]int {
	assigned := make(map[int][]int, len(days))
	for _, day := range days {
		ids := []int{}
		seen := make(map[int]bool)
		for _, entry := range day.Students {
			if entry.RelatedNeed == nil {
				continue
			}
			relID, ok := ix.Lookup(entry.ID, entry.RelatedNeed.ID)
			if !ok || seen[relID] {
				continue
			}
			seen[relID] = true
			ids = append(ids, relID)
		}
		assigned[day.ID] = ids
	}
	return assigned
}

// Assemble builds the board wholesale: one column per weekday in the
// order the backend listed them, one occurrence per scheduled relation.
// Occurrence ids are freshly generated every call and must never be
// compared across rebuilds.
func Assemble(days []models.ScheduleDay, assigned map[int][]int) models.Board {
	columns := make([]models.Column, 0, len(days))
	for _, day := range days {
		col := models.Column{
			DayID:       day.ID,
			Label:       day.Label,
			Occurrences: []models.Occurrence{},
		}
		for _, relID := range assigned[day.ID] {
			col.Occurrences = append(col.Occurrences, models.Occurrence{
				ID:         uuid.NewString(),
				RelationID: relID,
				DayID:      day.ID,
			})
		}
		columns = append(columns, col)
	}
	return models.Board{Columns: columns}
}
