package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pawpass/internal/ai"
	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
)

// testEnv wires a full service stack over a throwaway sqlite database
type testEnv struct {
	db            *database.DB
	petRepo       *repository.PetRepository
	updateRepo    *repository.UpdateRepository
	itemRepo      *repository.ItemRepository
	checklistRepo *repository.ChecklistRepository
	weightRepo    *repository.WeightRepository

	pets       *PetService
	updates    *UpdateService
	checklists *ChecklistService
	weights    *WeightService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	email, err := NewEmailService("", "", "", "")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}

	analyzer := ai.NewDisabled()

	env := &testEnv{
		db:            db,
		petRepo:       repository.NewPetRepository(db),
		updateRepo:    repository.NewUpdateRepository(db),
		itemRepo:      repository.NewItemRepository(db),
		checklistRepo: repository.NewChecklistRepository(db),
		weightRepo:    repository.NewWeightRepository(db),
	}
	env.pets = NewPetService(db, env.petRepo, env.updateRepo, env.checklistRepo, email, time.UTC)
	env.updates = NewUpdateService(db, env.petRepo, env.updateRepo, analyzer, time.UTC)
	env.checklists = NewChecklistService(db, env.petRepo, env.itemRepo, env.checklistRepo, email, time.UTC)
	env.weights = NewWeightService(db, env.petRepo, env.weightRepo, analyzer, time.UTC)

	return env
}

func (env *testEnv) createPet(t *testing.T, name, species string) *models.Pet {
	t.Helper()

	pet, err := env.pets.CreatePet(context.Background(), CreatePetInput{Name: name, Species: species})
	if err != nil {
		t.Fatalf("Failed to create pet %s: %v", name, err)
	}
	return pet
}
