package repository

import (
	"database/sql"
	"fmt"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

// UpdateRepository handles database operations for pet care updates
type UpdateRepository struct {
	db *database.DB
}

// NewUpdateRepository creates a new update repository
func NewUpdateRepository(db *database.DB) *UpdateRepository {
	return &UpdateRepository{db: db}
}

// Insert stores a new care update
func (r *UpdateRepository) Insert(q database.DBTX, u *models.PetUpdate) (*models.PetUpdate, error) {
	query := `
		INSERT INTO pet_updates (pet_id, update_text, update_date, update_time, volunteer_name)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query, u.PetID, u.UpdateText, u.UpdateDate, u.UpdateTime, u.VolunteerName)
	if err != nil {
		return nil, fmt.Errorf("failed to insert update: %w", err)
	}

	u.ID = id
	return u, nil
}

// ListByPet retrieves all updates for a pet, most recent first. Ties on
// (date, time) fall back to insertion order.
func (r *UpdateRepository) ListByPet(petID int64) ([]models.PetUpdate, error) {
	query := `
		SELECT id, pet_id, update_text, update_date, update_time, volunteer_name, created_at
		FROM pet_updates
		WHERE pet_id = ?
		ORDER BY update_date DESC, update_time DESC, id DESC
	`
	return r.list(query, petID)
}

// ListByPetSince retrieves updates for a pet on or after the given date,
// most recent first. Used for the AI care summary window.
func (r *UpdateRepository) ListByPetSince(petID int64, sinceDate string) ([]models.PetUpdate, error) {
	query := `
		SELECT id, pet_id, update_text, update_date, update_time, volunteer_name, created_at
		FROM pet_updates
		WHERE pet_id = ? AND update_date >= ?
		ORDER BY update_date DESC, update_time DESC, id DESC
	`
	return r.list(query, petID, sinceDate)
}

// CountByPet returns the number of updates for a pet
func (r *UpdateRepository) CountByPet(petID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM pet_updates WHERE pet_id = ?"
	if err := r.db.QueryRow(query, petID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count updates: %w", err)
	}
	return count, nil
}

func (r *UpdateRepository) list(query string, args ...interface{}) ([]models.PetUpdate, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query updates: %w", err)
	}
	defer rows.Close()

	var updates []models.PetUpdate
	for rows.Next() {
		var u models.PetUpdate
		var volunteer sql.NullString
		if err := rows.Scan(
			&u.ID,
			&u.PetID,
			&u.UpdateText,
			&u.UpdateDate,
			&u.UpdateTime,
			&volunteer,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan update: %w", err)
		}
		u.VolunteerName = volunteer.String
		updates = append(updates, u)
	}

	return updates, rows.Err()
}
