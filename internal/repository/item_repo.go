package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"pawpass/internal/database"
	"pawpass/internal/models"
)

// ItemRepository handles database operations for checklist item templates
type ItemRepository struct {
	db *database.DB
}

// NewItemRepository creates a new checklist item repository
func NewItemRepository(db *database.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Insert stores a new item template
func (r *ItemRepository) Insert(q database.DBTX, item *models.ChecklistItem) (*models.ChecklistItem, error) {
	query := `
		INSERT INTO checklist_items (description, item_type, is_default, species_applicable, options, unit, frequency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query,
		item.Description, item.ItemType, item.IsDefault, item.SpeciesApplicable,
		item.Options, item.Unit, item.Frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to insert checklist item: %w", err)
	}

	item.ID = id
	return item, nil
}

// GetByID retrieves an item template by ID. Returns nil when no item exists.
func (r *ItemRepository) GetByID(itemID int64) (*models.ChecklistItem, error) {
	query := itemSelect + " WHERE id = ?"
	item, err := scanItem(r.db.QueryRow(query, itemID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}
	return item, nil
}

// FindOrCreateByDescription is the idempotent upsert for ad-hoc items:
// it returns the existing template whose description exactly matches the
// trimmed text, or creates a new non-default template with the given type.
func (r *ItemRepository) FindOrCreateByDescription(q database.DBTX, description, itemType string) (*models.ChecklistItem, error) {
	description = strings.TrimSpace(description)

	query := itemSelect + " WHERE description = ?"
	item, err := scanItem(q.QueryRow(query, description))
	if err == nil {
		return item, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up checklist item: %w", err)
	}

	return r.Insert(q, &models.ChecklistItem{
		Description: description,
		ItemType:    itemType,
		IsDefault:   false,
	})
}

// ListForSpecies retrieves templates applicable to the given species:
// items with no species scope plus items scoped to it, case-insensitively.
// Ordered by item type then description, matching the form's grouping.
func (r *ItemRepository) ListForSpecies(species string) ([]models.ChecklistItem, error) {
	query := itemSelect + `
		WHERE species_applicable IS NULL OR LOWER(species_applicable) = LOWER(?)
		ORDER BY item_type ASC, description ASC
	`
	rows, err := r.db.Query(query, species)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// Count returns the total number of item templates
func (r *ItemRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM checklist_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count checklist items: %w", err)
	}
	return count, nil
}

const itemSelect = `
	SELECT id, description, item_type, is_default, species_applicable, options, unit, frequency, created_at
	FROM checklist_items`

func scanItem(row rowScanner) (*models.ChecklistItem, error) {
	item := &models.ChecklistItem{}
	var species sql.NullString
	var options, unit, frequency sql.NullString

	err := row.Scan(
		&item.ID,
		&item.Description,
		&item.ItemType,
		&item.IsDefault,
		&species,
		&options,
		&unit,
		&frequency,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if species.Valid {
		item.SpeciesApplicable = &species.String
	}
	item.Options = options.String
	item.Unit = unit.String
	item.Frequency = frequency.String

	return item, nil
}
