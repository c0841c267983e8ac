package repository

import (
	"testing"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

func TestPetSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetRepository(db)

	createTestPet(t, db, "Luna", "cat")
	createTestPet(t, db, "Biscuit", "dog")
	createTestPet(t, db, "Lunabelle", "rabbit")

	pets, err := repo.Search("luna")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected 2 pets matching 'luna', got %d", len(pets))
	}

	pets, err = repo.Search("")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(pets) != 3 {
		t.Errorf("expected empty query to return all 3 pets, got %d", len(pets))
	}
}

func TestPetGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPetRepository(db)

	pet, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if pet != nil {
		t.Errorf("expected nil for missing pet, got %+v", pet)
	}
}

// TestPetDeleteCascades verifies that removing a pet removes every
// dependent row: updates, checklists, completions and weight records.
func TestPetDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	petRepo := NewPetRepository(db)
	updateRepo := NewUpdateRepository(db)
	itemRepo := NewItemRepository(db)
	checklistRepo := NewChecklistRepository(db)
	weightRepo := NewWeightRepository(db)

	pet := createTestPet(t, db, "Luna", "cat")

	if _, err := updateRepo.Insert(db, &models.PetUpdate{
		PetID:      pet.ID,
		UpdateText: "Ate breakfast",
		UpdateDate: "2026-08-29",
		UpdateTime: "09:00",
	}); err != nil {
		t.Fatalf("Failed to insert update: %v", err)
	}

	item, err := itemRepo.FindOrCreateByDescription(db, "Fed", models.ItemTypeFeeding)
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	checklist, err := checklistRepo.InsertChecklist(db, &models.Checklist{
		PetID:          pet.ID,
		CompletionDate: "2026-08-29",
		CompletionTime: "09:15",
	})
	if err != nil {
		t.Fatalf("Failed to insert checklist: %v", err)
	}
	if err := checklistRepo.InsertCompletion(db, &models.ChecklistCompletion{
		ChecklistID:     checklist.ID,
		ChecklistItemID: item.ID,
		Completed:       true,
	}); err != nil {
		t.Fatalf("Failed to insert completion: %v", err)
	}

	if _, err := weightRepo.Insert(db, &models.WeightRecord{
		PetID:      pet.ID,
		Weight:     4.2,
		RecordDate: "2026-08-29",
		RecordTime: "09:30",
	}); err != nil {
		t.Fatalf("Failed to insert weight record: %v", err)
	}

	if err := db.InTx(func(tx *database.Tx) error {
		return petRepo.Delete(tx, pet.ID)
	}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	counts := map[string]string{
		"pet_updates":           "SELECT COUNT(*) FROM pet_updates",
		"checklists":            "SELECT COUNT(*) FROM checklists",
		"checklist_completions": "SELECT COUNT(*) FROM checklist_completions",
		"weight_records":        "SELECT COUNT(*) FROM weight_records",
	}
	for table, query := range counts {
		var count int
		if err := db.QueryRow(query).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected 0 rows in %s after pet delete, got %d", table, count)
		}
	}

	// Item templates are shared across pets and must survive
	items, err := itemRepo.Count()
	if err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if items != 1 {
		t.Errorf("expected item template to survive pet delete, got %d", items)
	}
}

// TestPetDeleteCascadesAcrossPooledConnections pins one pooled connection
// with an open cursor so the delete runs on a different connection. Foreign
// key enforcement must hold on every connection in the pool, not just the
// first one opened.
func TestPetDeleteCascadesAcrossPooledConnections(t *testing.T) {
	db := newTestDB(t)
	petRepo := NewPetRepository(db)
	updateRepo := NewUpdateRepository(db)

	pet := createTestPet(t, db, "Luna", "cat")
	if _, err := updateRepo.Insert(db, &models.PetUpdate{
		PetID:      pet.ID,
		UpdateText: "Ate breakfast",
		UpdateDate: "2026-08-29",
		UpdateTime: "09:00",
	}); err != nil {
		t.Fatalf("Failed to insert update: %v", err)
	}

	rows, err := db.Query("SELECT id FROM pets")
	if err != nil {
		t.Fatalf("Failed to open cursor: %v", err)
	}
	defer rows.Close()

	if err := db.InTx(func(tx *database.Tx) error {
		return petRepo.Delete(tx, pet.ID)
	}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rows.Close()

	count, err := updateRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("Failed to count updates: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 orphan updates after delete on a second connection, got %d", count)
	}
}
