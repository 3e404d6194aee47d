package board

import (
	"testing"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

func TestBuildIndex(t *testing.T) {
	needs := []models.NeedWithStudents{
		{
			ID: 1, Label: "TDAH",
			Students: []models.Student{
				{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 77}},
				{ID: 11, Name: "Bruno", Pivot: &models.Pivot{ID: 78}},
			},
		},
		{
			ID: 2, Label: "Diabetes",
			Students: []models.Student{
				{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 79}},
			},
		},
	}

	ix := BuildIndex(needs)

	if ix.Len() != 3 {
		t.Fatalf("Expected 3 relations, got %d", ix.Len())
	}

	// every (need, student) pairing from the listings must be indexed
	for _, need := range needs {
		for _, student := range need.Students {
			relID, ok := ix.Lookup(student.ID, need.ID)
			if !ok {
				t.Errorf("Lookup(%d, %d) missing", student.ID, need.ID)
				continue
			}
			if relID != student.Pivot.ID {
				t.Errorf("Lookup(%d, %d) = %d, want %d", student.ID, need.ID, relID, student.Pivot.ID)
			}
			rel, ok := ix.Relation(relID)
			if !ok {
				t.Errorf("Relation(%d) missing", relID)
				continue
			}
			if rel.StudentID != student.ID || rel.NeedID != need.ID {
				t.Errorf("Relation(%d) = (%d, %d), want (%d, %d)", relID, rel.StudentID, rel.NeedID, student.ID, need.ID)
			}
		}
	}

	rel, _ := ix.Relation(77)
	if rel.Label != "Ana - TDAH" {
		t.Errorf("Expected label %q, got %q", "Ana - TDAH", rel.Label)
	}
}

func TestBuildIndex_SkipsMissingPivot(t *testing.T) {
	needs := []models.NeedWithStudents{
		{
			ID: 1, Label: "TDAH",
			Students: []models.Student{
				{ID: 10, Name: "Ana"},
				{ID: 11, Name: "Bruno", Pivot: &models.Pivot{ID: 78}},
			},
		},
	}

	ix := BuildIndex(needs)
	if ix.Len() != 1 {
		t.Errorf("Expected 1 relation, got %d", ix.Len())
	}
	if _, ok := ix.Lookup(10, 1); ok {
		t.Error("student without a pivot should not be indexed")
	}
}

func TestBuildIndex_DuplicatePairLastWins(t *testing.T) {
	needs := []models.NeedWithStudents{
		{
			ID: 1, Label: "TDAH",
			Students: []models.Student{
				{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 77}},
				{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 99}},
			},
		},
	}

	ix := BuildIndex(needs)
	relID, ok := ix.Lookup(10, 1)
	if !ok {
		t.Fatal("pair should still resolve")
	}
	if relID != 99 {
		t.Errorf("Expected the later relation (99) to win, got %d", relID)
	}
}

func TestBuildIndex_RelationsOrder(t *testing.T) {
	needs := []models.NeedWithStudents{
		{ID: 1, Label: "TDAH", Students: []models.Student{
			{ID: 10, Name: "Ana", Pivot: &models.Pivot{ID: 77}},
		}},
		{ID: 2, Label: "Diabetes", Students: []models.Student{
			{ID: 11, Name: "Bruno", Pivot: &models.Pivot{ID: 78}},
			{ID: 12, Name: "Carla", Pivot: &models.Pivot{ID: 79}},
		}},
	}

	rels := BuildIndex(needs).Relations()
	want := []int{77, 78, 79}
	if len(rels) != len(want) {
		t.Fatalf("Expected %d relations, got %d", len(want), len(rels))
	}
	for i, relID := range want {
		if rels[i].RelationID != relID {
			t.Errorf("Relations()[%d] = %d, want %d", i, rels[i].RelationID, relID)
		}
	}
}

func TestSchedulableNeeds(t *testing.T) {
	needs := []models.Need{
		{ID: 1, Label: "TDAH"},
		{ID: 2, Label: "nai"},
		{ID: 3, Label: "NAI"},
		{ID: 4, Label: "Diabetes"},
		{ID: 5},
	}

	got := SchedulableNeeds(needs)
	if len(got) != 2 {
		t.Fatalf("Expected 2 schedulable needs, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("Expected needs [1 4], got [%d %d]", got[0].ID, got[1].ID)
	}
}
