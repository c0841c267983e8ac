package repository

import (
	"path/filepath"
	"testing"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func createTestPet(t *testing.T, db *database.DB, name, species string) *models.Pet {
	t.Helper()

	pet, err := NewPetRepository(db).Create(db, &models.Pet{Name: name, Species: species})
	if err != nil {
		t.Fatalf("Failed to create pet: %v", err)
	}
	return pet
}
