package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

// PetRepository handles database operations for pets
type PetRepository struct {
	db *database.DB
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *database.DB) *PetRepository {
	return &PetRepository{db: db}
}

// Create inserts a new pet and returns it with its assigned ID
func (r *PetRepository) Create(q database.DBTX, pet *models.Pet) (*models.Pet, error) {
	query := `
		INSERT INTO pets (name, species, breed, age, gender, description,
		                  feeding_instructions, medical_notes, image_url, is_emergency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query,
		pet.Name, pet.Species, pet.Breed, pet.Age, pet.Gender, pet.Description,
		pet.FeedingInstructions, pet.MedicalNotes, pet.ImageURL, pet.IsEmergency)
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	pet.ID = id
	return pet, nil
}

// GetByID retrieves a pet by ID. Returns nil when no pet exists.
func (r *PetRepository) GetByID(petID int64) (*models.Pet, error) {
	query := `
		SELECT id, name, species, breed, age, gender, description,
		       feeding_instructions, medical_notes, image_url, is_emergency,
		       created_at, updated_at
		FROM pets
		WHERE id = ?
	`
	pet, err := scanPet(r.db.QueryRow(query, petID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return pet, nil
}

// Search retrieves pets whose name contains the query, case-insensitively.
// An empty query returns all pets. The LIKE pattern is built in Go because
// SQL string concatenation is not portable (mysql reads || as OR).
func (r *PetRepository) Search(nameQuery string) ([]models.Pet, error) {
	query := `
		SELECT id, name, species, breed, age, gender, description,
		       feeding_instructions, medical_notes, image_url, is_emergency,
		       created_at, updated_at
		FROM pets
		WHERE LOWER(name) LIKE ?
		ORDER BY name ASC
	`
	pattern := "%" + strings.ToLower(nameQuery) + "%"
	rows, err := r.db.Query(query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}
	defer rows.Close()

	var pets []models.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, *pet)
	}

	return pets, rows.Err()
}

// Delete removes a pet. Updates, checklists, completions and weight records
// follow via ON DELETE CASCADE.
func (r *PetRepository) Delete(q database.DBTX, petID int64) error {
	_, err := q.Exec("DELETE FROM pets WHERE id = ?", petID)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	return nil
}

// Count returns the total number of pets
func (r *PetRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM pets").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(row rowScanner) (*models.Pet, error) {
	pet := &models.Pet{}
	var breed, gender, description, feeding, medical, imageURL sql.NullString
	var age sql.NullInt64

	err := row.Scan(
		&pet.ID,
		&pet.Name,
		&pet.Species,
		&breed,
		&age,
		&gender,
		&description,
		&feeding,
		&medical,
		&imageURL,
		&pet.IsEmergency,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pet.Breed = breed.String
	pet.Gender = gender.String
	pet.Description = description.String
	pet.FeedingInstructions = feeding.String
	pet.MedicalNotes = medical.String
	pet.ImageURL = imageURL.String
	if age.Valid {
		a := int(age.Int64)
		pet.Age = &a
	}

	return pet, nil
}
