package models

import "time"

// WeightRecord is a dated weight measurement for a pet, in kilograms
type WeightRecord struct {
	ID            int64     `json:"id"`
	PetID         int64     `json:"pet_id"`
	Weight        float64   `json:"weight"`
	RecordDate    string    `json:"record_date"` // YYYY-MM-DD
	RecordTime    string    `json:"record_time"` // HH:MM
	VolunteerName string    `json:"volunteer_name,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// WeightTrend combines a pet's weight history with an optional textual
// analysis from the AI collaborator. Analysis is empty when fewer than two
// records exist or the collaborator is unavailable.
type WeightTrend struct {
	Records  []WeightRecord `json:"records"`
	Analysis string         `json:"analysis,omitempty"`
}
