package models

import "time"

// PetUpdate is a free-text, timestamped volunteer note about a pet.
// Updates are immutable once created.
type PetUpdate struct {
	ID            int64     `json:"id"`
	PetID         int64     `json:"pet_id"`
	UpdateText    string    `json:"update_text"`
	UpdateDate    string    `json:"update_date"` // YYYY-MM-DD
	UpdateTime    string    `json:"update_time"` // HH:MM
	VolunteerName string    `json:"volunteer_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
