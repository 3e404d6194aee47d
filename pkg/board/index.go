// Package board derives the weekly special-needs scheduling board from
// the kitchen API's three source lists and reconciles drag gestures
// against it. Nothing here is write-authoritative: every mutation is
// followed by a full reload, and the in-memory state is only a read
// view of the last successful fetch.
package board

import (
	"strings"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// ExemptNeedLabel is the reserved category that never goes on the board:
// its students are always considered present and are managed elsewhere.
const ExemptNeedLabel = "NAI"

// SchedulableNeeds filters out the reserved exempt category,
// case-insensitively, keeping the backend's order
func SchedulableNeeds(needs []models.Need) []models.Need {
	out := make([]models.Need, 0, len(needs))
	for _, n := range needs {
		if n.Label == "" || strings.EqualFold(n.Label, ExemptNeedLabel) {
			continue
		}
		out = append(out, n)
	}
	return out
}

type pairKey struct {
	studentID int
	needID    int
}

// Index maps relation ids to resolved relations and (student, need)
// pairs back to relation ids. It is pure derived data, rebuilt from
// scratch whenever the source lists change.
type Index struct {
	byRelation map[int]models.Relation
	byPair     map[pairKey]int
	order      []int
}

// BuildIndex builds the relation index from the per-need student
// listings. A student associated with the same need twice should not
// happen; if it does, the later entry silently wins.
func BuildIndex(needs []models.NeedWithStudents) *Index {
	ix := &Index{
		byRelation: make(map[int]models.Relation),
		byPair:     make(map[pairKey]int),
	}
	for _, need := range needs {
		for _, student := range need.Students {
			if student.Pivot == nil || student.Pivot.ID == 0 {
				continue
			}
			rel := models.Relation{
				RelationID: student.Pivot.ID,
				StudentID:  student.ID,
				NeedID:     need.ID,
				Label:      student.Name + " - " + need.Label,
			}
			if _, seen := ix.byRelation[rel.RelationID]; !seen {
				ix.order = append(ix.order, rel.RelationID)
			}
			ix.byRelation[rel.RelationID] = rel
			ix.byPair[pairKey{student.ID, need.ID}] = rel.RelationID
		}
	}
	return ix
}

// Relation looks up a relation by its id
func (ix *Index) Relation(relationID int) (models.Relation, bool) {
	rel, ok := ix.byRelation[relationID]
	return rel, ok
}

// Lookup resolves a (student, need) pair back to its relation id
func (ix *Index) Lookup(studentID, needID int) (int, bool) {
	id, ok := ix.byPair[pairKey{studentID, needID}]
	return id, ok
}

// Relations returns every relation in first-seen order
func (ix *Index) Relations() []models.Relation {
	out := make([]models.Relation, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byRelation[id])
	}
	return out
}

// Len returns the number of indexed relations
func (ix *Index) Len() int {
	return len(ix.byRelation)
}
