package repository

import (
	"database/sql"
	"fmt"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

// WeightRepository handles database operations for weight records
type WeightRepository struct {
	db *database.DB
}

// NewWeightRepository creates a new weight repository
func NewWeightRepository(db *database.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// Insert stores a new weight record
func (r *WeightRepository) Insert(q database.DBTX, w *models.WeightRecord) (*models.WeightRecord, error) {
	query := `
		INSERT INTO weight_records (pet_id, weight, record_date, record_time, volunteer_name, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query, w.PetID, w.Weight, w.RecordDate, w.RecordTime, w.VolunteerName, w.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert weight record: %w", err)
	}

	w.ID = id
	return w, nil
}

// ListByPet retrieves all weight records for a pet, most recent first
func (r *WeightRepository) ListByPet(petID int64) ([]models.WeightRecord, error) {
	query := `
		SELECT id, pet_id, weight, record_date, record_time, volunteer_name, notes, created_at
		FROM weight_records
		WHERE pet_id = ?
		ORDER BY record_date DESC, record_time DESC, id DESC
	`
	rows, err := r.db.Query(query, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight records: %w", err)
	}
	defer rows.Close()

	var records []models.WeightRecord
	for rows.Next() {
		var w models.WeightRecord
		var volunteer, notes sql.NullString
		if err := rows.Scan(
			&w.ID,
			&w.PetID,
			&w.Weight,
			&w.RecordDate,
			&w.RecordTime,
			&volunteer,
			&notes,
			&w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weight record: %w", err)
		}
		w.VolunteerName = volunteer.String
		w.Notes = notes.String
		records = append(records, w)
	}

	return records, rows.Err()
}

// Delete removes a weight record scoped to its owning pet. A record ID
// belonging to a different pet is reported as not found, not deleted.
func (r *WeightRepository) Delete(q database.DBTX, recordID, petID int64) (bool, error) {
	result, err := q.Exec("DELETE FROM weight_records WHERE id = ? AND pet_id = ?", recordID, petID)
	if err != nil {
		return false, fmt.Errorf("failed to delete weight record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted rows: %w", err)
	}
	return affected > 0, nil
}

// CountByPet returns the number of weight records for a pet
func (r *WeightRepository) CountByPet(petID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM weight_records WHERE pet_id = ?"
	if err := r.db.QueryRow(query, petID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count weight records: %w", err)
	}
	return count, nil
}
