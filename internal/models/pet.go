package models

import "time"

// Pet represents a shelter animal being cared for
type Pet struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Species             string    `json:"species"`
	Breed               string    `json:"breed,omitempty"`
	Age                 *int      `json:"age,omitempty"`
	Gender              string    `json:"gender,omitempty"`
	Description         string    `json:"description,omitempty"`
	FeedingInstructions string    `json:"feeding_instructions,omitempty"`
	MedicalNotes        string    `json:"medical_notes,omitempty"`
	ImageURL            string    `json:"image_url,omitempty"`
	IsEmergency         bool      `json:"is_emergency"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PetProfile is the consolidated read-only view of a pet: its attributes
// plus all updates and checklists, most recent first.
type PetProfile struct {
	Pet        Pet                  `json:"pet"`
	Updates    []PetUpdate          `json:"updates"`
	Checklists []ChecklistWithItems `json:"checklists"`
}
