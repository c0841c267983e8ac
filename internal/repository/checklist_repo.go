package repository

import (
	"database/sql"
	"fmt"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

// ChecklistRepository handles database operations for checklists and their
// item completions
type ChecklistRepository struct {
	db *database.DB
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(db *database.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// InsertChecklist stores a new checklist record
func (r *ChecklistRepository) InsertChecklist(q database.DBTX, c *models.Checklist) (*models.Checklist, error) {
	query := `
		INSERT INTO checklists (pet_id, volunteer_name, completion_date, completion_time, notes)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query, c.PetID, c.VolunteerName, c.CompletionDate, c.CompletionTime, c.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert checklist: %w", err)
	}

	c.ID = id
	return c, nil
}

// InsertCompletion stores one item completion row for a checklist
func (r *ChecklistRepository) InsertCompletion(q database.DBTX, comp *models.ChecklistCompletion) error {
	query := `
		INSERT INTO checklist_completions (checklist_id, checklist_item_id, completed, value, notes)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query, comp.ChecklistID, comp.ChecklistItemID, comp.Completed, comp.Value, comp.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert checklist completion: %w", err)
	}

	comp.ID = id
	return nil
}

// ListByPet retrieves all checklists for a pet, most recent first, each
// annotated with the descriptions of its completed items.
func (r *ChecklistRepository) ListByPet(petID int64) ([]models.ChecklistWithItems, error) {
	query := `
		SELECT id, pet_id, volunteer_name, completion_date, completion_time, notes, created_at
		FROM checklists
		WHERE pet_id = ?
		ORDER BY completion_date DESC, completion_time DESC, id DESC
	`
	rows, err := r.db.Query(query, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}
	defer rows.Close()

	var checklists []models.ChecklistWithItems
	for rows.Next() {
		var c models.Checklist
		var volunteer, notes sql.NullString
		if err := rows.Scan(
			&c.ID,
			&c.PetID,
			&volunteer,
			&c.CompletionDate,
			&c.CompletionTime,
			&notes,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		c.VolunteerName = volunteer.String
		c.Notes = notes.String
		checklists = append(checklists, models.ChecklistWithItems{Checklist: c})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(checklists) == 0 {
		return checklists, nil
	}

	completed, err := r.completedDescriptions(petID)
	if err != nil {
		return nil, err
	}
	for i := range checklists {
		checklists[i].CompletedItems = completed[checklists[i].Checklist.ID]
	}

	return checklists, nil
}

// completedDescriptions maps checklist ID to the descriptions of its
// completed items, in a stable order.
func (r *ChecklistRepository) completedDescriptions(petID int64) (map[int64][]string, error) {
	query := `
		SELECT cc.checklist_id, ci.description
		FROM checklist_completions cc
		JOIN checklists c ON c.id = cc.checklist_id
		JOIN checklist_items ci ON ci.id = cc.checklist_item_id
		WHERE c.pet_id = ? AND cc.completed = ?
		ORDER BY cc.checklist_id ASC, cc.id ASC
	`
	rows, err := r.db.Query(query, petID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	completed := make(map[int64][]string)
	for rows.Next() {
		var checklistID int64
		var description string
		if err := rows.Scan(&checklistID, &description); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completed[checklistID] = append(completed[checklistID], description)
	}

	return completed, rows.Err()
}

// ListCompletions retrieves all completion rows for a checklist
func (r *ChecklistRepository) ListCompletions(checklistID int64) ([]models.ChecklistCompletion, error) {
	query := `
		SELECT id, checklist_id, checklist_item_id, completed, value, notes
		FROM checklist_completions
		WHERE checklist_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, checklistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var completions []models.ChecklistCompletion
	for rows.Next() {
		var comp models.ChecklistCompletion
		var value, notes sql.NullString
		if err := rows.Scan(
			&comp.ID,
			&comp.ChecklistID,
			&comp.ChecklistItemID,
			&comp.Completed,
			&value,
			&notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		comp.Value = value.String
		comp.Notes = notes.String
		completions = append(completions, comp)
	}

	return completions, rows.Err()
}

// CountByPet returns the number of checklists for a pet
func (r *ChecklistRepository) CountByPet(petID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM checklists WHERE pet_id = ?"
	if err := r.db.QueryRow(query, petID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count checklists: %w", err)
	}
	return count, nil
}

// CountCompletions returns the total number of completion rows
func (r *ChecklistRepository) CountCompletions() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM checklist_completions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}
