package repository

import (
	"testing"

	"pawpass/internal/models"
)

// TestFindOrCreateReusesExistingTemplate verifies the lookup-or-create
// upsert: the second call with the same description must return the same
// row and leave the table count unchanged.
func TestFindOrCreateReusesExistingTemplate(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)

	first, err := repo.FindOrCreateByDescription(db, "Medication: Amoxicillin (50mg)", models.ItemTypeMedication)
	if err != nil {
		t.Fatalf("First FindOrCreate failed: %v", err)
	}
	if first.IsDefault {
		t.Error("ad-hoc templates must not be marked default")
	}

	countAfterFirst, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	second, err := repo.FindOrCreateByDescription(db, "Medication: Amoxicillin (50mg)", models.ItemTypeMedication)
	if err != nil {
		t.Fatalf("Second FindOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same template row, got %d then %d", first.ID, second.ID)
	}

	countAfterSecond, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if countAfterSecond != countAfterFirst {
		t.Errorf("template count changed from %d to %d on reuse", countAfterFirst, countAfterSecond)
	}
}

func TestFindOrCreateTrimsDescription(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)

	first, err := repo.FindOrCreateByDescription(db, "Playtime: 15 min", models.ItemTypeExercise)
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}

	second, err := repo.FindOrCreateByDescription(db, "  Playtime: 15 min  ", models.ItemTypeExercise)
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected whitespace-padded description to match, got %d and %d", first.ID, second.ID)
	}
}

func TestListForSpeciesFiltering(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)

	catOnly := "cat"
	for _, item := range []*models.ChecklistItem{
		{Description: "Fresh water", ItemType: models.ItemTypeWater, IsDefault: true},
		{Description: "Litter box cleaned", ItemType: models.ItemTypeLitter, IsDefault: true, SpeciesApplicable: &catOnly},
		{Description: "Morning walk", ItemType: models.ItemTypeExercise, IsDefault: true},
	} {
		if _, err := repo.Insert(db, item); err != nil {
			t.Fatalf("Failed to insert item: %v", err)
		}
	}

	catItems, err := repo.ListForSpecies("Cat")
	if err != nil {
		t.Fatalf("ListForSpecies failed: %v", err)
	}
	if len(catItems) != 3 {
		t.Errorf("expected 3 items for cat (species match is case-insensitive), got %d", len(catItems))
	}

	dogItems, err := repo.ListForSpecies("dog")
	if err != nil {
		t.Fatalf("ListForSpecies failed: %v", err)
	}
	if len(dogItems) != 2 {
		t.Errorf("expected 2 items for dog, got %d", len(dogItems))
	}
	for _, item := range dogItems {
		if item.Description == "Litter box cleaned" {
			t.Error("cat-scoped item leaked into dog listing")
		}
	}
}

func TestParsedOptionsDegradesOnMalformedJSON(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)

	item, err := repo.Insert(db, &models.ChecklistItem{
		Description: "Appetite check",
		ItemType:    models.ItemTypeFeeding,
		IsDefault:   true,
		Options:     `{"not": "a list"`,
	})
	if err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	stored, err := repo.GetByID(item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if opts := stored.ParsedOptions(); len(opts) != 0 {
		t.Errorf("expected malformed options to degrade to empty, got %v", opts)
	}
}
