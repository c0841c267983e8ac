package models

import (
	"encoding/json"
	"time"
)

// Item types for checklist item templates
const (
	ItemTypeMedication = "medication"
	ItemTypeFeeding    = "feeding"
	ItemTypeWater      = "water"
	ItemTypeLitter     = "litter"
	ItemTypeBathroom   = "bathroom"
	ItemTypeExercise   = "exercise"
	ItemTypeEnrichment = "enrichment"
	ItemTypeGrooming   = "grooming"
)

// ChecklistItem is a reusable task description template. Default items are
// seeded at startup; non-default items are created on demand when a
// volunteer records an ad-hoc task.
type ChecklistItem struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"`
	ItemType          string    `json:"item_type"`
	IsDefault         bool      `json:"is_default"`
	SpeciesApplicable *string   `json:"species_applicable,omitempty"`
	Options           string    `json:"options,omitempty"` // serialized JSON array
	Unit              string    `json:"unit,omitempty"`
	Frequency         string    `json:"frequency,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ParsedOptions decodes the stored options list. A malformed or empty
// serialization degrades to no options, never an error.
func (i *ChecklistItem) ParsedOptions() []string {
	if i.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(i.Options), &opts); err != nil {
		return nil
	}
	return opts
}

// Checklist is one shift's completion record for a pet
type Checklist struct {
	ID             int64     `json:"id"`
	PetID          int64     `json:"pet_id"`
	VolunteerName  string    `json:"volunteer_name,omitempty"`
	CompletionDate string    `json:"completion_date"` // YYYY-MM-DD
	CompletionTime string    `json:"completion_time"` // HH:MM
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChecklistCompletion links a checklist to an item template and records
// whether the task was done, plus an optional value and notes.
type ChecklistCompletion struct {
	ID              int64  `json:"id"`
	ChecklistID     int64  `json:"checklist_id"`
	ChecklistItemID int64  `json:"checklist_item_id"`
	Completed       bool   `json:"completed"`
	Value           string `json:"value,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ChecklistWithItems is a checklist annotated with the descriptions of the
// items completed during the shift, for profile display.
type ChecklistWithItems struct {
	Checklist      Checklist `json:"checklist"`
	CompletedItems []string  `json:"completed_items"`
}

// ItemGroup is one item_type bucket of templates applicable to a pet,
// used by the checklist form.
type ItemGroup struct {
	ItemType string
	Items    []ChecklistItem
}
