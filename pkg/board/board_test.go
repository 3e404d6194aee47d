package board

import (
	"testing"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

func testIndex() *Index {
	return BuildIndex([]models.NeedWithStudents{
		{ID: 1, Label: "TDAH", Students: []models.Student{
			{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 77}},
			{ID: 11, Name: "Bruno", Pivot: &models.Pivot{ID: 78}},
		}},
		{ID: 2, Label: "Diabetes", Students: []models.Student{
			{ID: 12, Name: "Carla", Pivot: &models.Pivot{ID: 79}},
		}},
	})
}

func TestResolveDays(t *testing.T) {
	days := []models.ScheduleDay{
		{ID: 1, Label: "Segunda", Students: []models.ScheduledStudent{
			{ID: 10, RelatedNeed: &models.NeedRef{ID: 1}},
			{ID: 12, RelatedNeed: &models.NeedRef{ID: 2}},
		}},
		{ID: 2, Label: "Terça", Students: []models.ScheduledStudent{
			{ID: 11, RelatedNeed: &models.NeedRef{ID: 1}},
		}},
	}

	assigned := ResolveDays(days, testIndex())

	if got := assigned[1]; len(got) != 2 || got[0] != 77 || got[1] != 79 {
		t.Errorf("Monday = %v, want [77 79]", got)
	}
	if got := assigned[2]; len(got) != 1 || got[0] != 78 {
		t.Errorf("Tuesday = %v, want [78]", got)
	}
}

func TestResolveDays_DropsUnknownEntries(t *testing.T) {
	days := []models.ScheduleDay{
		{ID: 1, Label: "Segunda", Students: []models.ScheduledStudent{
			{ID: 10, RelatedNeed: &models.NeedRef{ID: 1}},
			// stale: student 99 was never associated with need 1
			{ID: 99, RelatedNeed: &models.NeedRef{ID: 1}},
			// malformed: no related need at all
			{ID: 11},
		}},
	}

	assigned := ResolveDays(days, testIndex())
	if got := assigned[1]; len(got) != 1 || got[0] != 77 {
		t.Errorf("Expected stale entries dropped, got %v", got)
	}
}

func TestResolveDays_DeduplicatesSameDay(t *testing.T) {
	days := []models.ScheduleDay{
		{ID: 1, Label: "Segunda", Students: []models.ScheduledStudent{
			{ID: 10, RelatedNeed: &models.NeedRef{ID: 1}},
			{ID: 10, RelatedNeed: &models.NeedRef{ID: 1}},
		}},
	}

	assigned := ResolveDays(days, testIndex())
	if got := assigned[1]; len(got) != 1 {
		t.Errorf("Expected redundant same-day entries collapsed, got %v", got)
	}
}

func TestAssemble(t *testing.T) {
	days := []models.ScheduleDay{
		{ID: 2, Label: "Terça"},
		{ID: 1, Label: "Segunda"},
	}
	assigned := map[int][]int{1: {77}, 2: {77, 78}}

	b := Assemble(days, assigned)

	if len(b.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(b.Columns))
	}
	// server day order is preserved as-is
	if b.Columns[0].DayID != 2 || b.Columns[1].DayID != 1 {
		t.Errorf("Expected columns in server order [2 1], got [%d %d]", b.Columns[0].DayID, b.Columns[1].DayID)
	}
	if len(b.Columns[0].Occurrences) != 2 {
		t.Errorf("Expected 2 occurrences on Tuesday, got %d", len(b.Columns[0].Occurrences))
	}

	for _, col := range b.Columns {
		for _, occ := range col.Occurrences {
			if occ.DayID != col.DayID {
				t.Errorf("occurrence day %d placed in column %d", occ.DayID, col.DayID)
			}
			if occ.ID == "" {
				t.Error("occurrence without a synthetic id")
			}
		}
	}
}

func TestAssemble_FreshOccurrenceIDs(t *testing.T) {
	days := []models.ScheduleDay{{ID: 1, Label: "Segunda"}}
	assigned := map[int][]int{1: {77}}

	first := Assemble(days, assigned)
	second := Assemble(days, assigned)

	if first.Columns[0].Occurrences[0].ID == second.Columns[0].Occurrences[0].ID {
		t.Error("occurrence ids must not repeat across rebuilds")
	}
}

func TestSnapshotPool(t *testing.T) {
	snap := &Snapshot{Index: testIndex()}

	all := snap.Pool(AllNeeds)
	if len(all) != 3 {
		t.Fatalf("Expected 3 relations in the unfiltered pool, got %d", len(all))
	}

	tdah := snap.Pool(1)
	if len(tdah) != 2 {
		t.Fatalf("Expected 2 relations for need 1, got %d", len(tdah))
	}
	for _, rel := range tdah {
		if rel.NeedID != 1 {
			t.Errorf("Pool(1) returned relation with need %d", rel.NeedID)
		}
	}

	if got := snap.Pool(999); len(got) != 0 {
		t.Errorf("Expected empty pool for unknown need, got %v", got)
	}
}
