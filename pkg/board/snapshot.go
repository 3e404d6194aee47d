package board

import "github.com/dfarias/merenda-gateway-go/pkg/models"

// AllNeeds selects every relation in Pool; need ids are positive
const AllNeeds = 0

// Snapshot is one complete derivation of the board from a single fetch
// cycle. It is immutable: a mutation produces a whole new Snapshot via
// reload, never an in-place edit.
type Snapshot struct {
	Needs []models.Need
	Index *Index
	Board models.Board
}

// Pool returns the drag-source list of relations, optionally narrowed
// to one need. Scheduling a relation never removes it from the pool; a
// relation stays draggable onto further days after being placed once.
func (s *Snapshot) Pool(needID int) []models.Relation {
	all := s.Index.Relations()
	if needID == AllNeeds {
		return all
	}
	out := []models.Relation{}
	for _, rel := range all {
		if rel.NeedID == needID {
			out = append(out, rel)
		}
	}
	return out
}

// DayRelations returns the relation ids currently on one column, for
// callers that need membership rather than occurrences
func (s *Snapshot) DayRelations(dayID int) []int {
	for _, col := range s.Board.Columns {
		if col.DayID != dayID {
			continue
		}
		ids := make([]int, 0, len(col.Occurrences))
		for _, occ := range col.Occurrences {
			ids = append(ids, occ.RelationID)
		}
		return ids
	}
	return nil
}
