package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
	"pawpass/internal/utils"
)

var (
	ErrPetNotFound = errors.New("pet not found")
)

// PetService handles pet profile business logic
type PetService struct {
	db            *database.DB
	petRepo       *repository.PetRepository
	updateRepo    *repository.UpdateRepository
	checklistRepo *repository.ChecklistRepository
	emailService  *EmailService
	now           func() time.Time
}

// NewPetService creates a new pet service. All timestamps are produced in
// the shelter's local timezone.
func NewPetService(db *database.DB, petRepo *repository.PetRepository, updateRepo *repository.UpdateRepository, checklistRepo *repository.ChecklistRepository, emailService *EmailService, loc *time.Location) *PetService {
	return &PetService{
		db:            db,
		petRepo:       petRepo,
		updateRepo:    updateRepo,
		checklistRepo: checklistRepo,
		emailService:  emailService,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// Search returns pets whose name contains the query, case-insensitively.
// An empty query returns all pets.
func (s *PetService) Search(nameQuery string) ([]models.Pet, error) {
	return s.petRepo.Search(nameQuery)
}

// GetPet retrieves a single pet
func (s *PetService) GetPet(petID int64) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

// GetProfile assembles the consolidated view of a pet: its attributes plus
// updates and checklists ordered most recent first. Read-only, no side
// effects.
func (s *PetService) GetProfile(petID int64) (*models.PetProfile, error) {
	pet, err := s.GetPet(petID)
	if err != nil {
		return nil, err
	}

	updates, err := s.updateRepo.ListByPet(petID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updates: %w", err)
	}

	checklists, err := s.checklistRepo.ListByPet(petID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklists: %w", err)
	}

	return &models.PetProfile{
		Pet:        *pet,
		Updates:    updates,
		Checklists: checklists,
	}, nil
}

// CreatePetInput carries the fields for registering a new pet
type CreatePetInput struct {
	Name                string
	Species             string
	Breed               string
	Age                 *int
	Gender              string
	Description         string
	FeedingInstructions string
	MedicalNotes        string
	ImageURL            string
	IsEmergency         bool
}

// CreatePet validates and registers a new pet. Emergency intakes trigger a
// best-effort notification email; a notification failure never fails the
// registration.
func (s *PetService) CreatePet(ctx context.Context, in CreatePetInput) (*models.Pet, error) {
	name, err := utils.ValidatePetName(in.Name)
	if err != nil {
		return nil, err
	}
	species, err := utils.ValidateSpecies(in.Species)
	if err != nil {
		return nil, err
	}

	pet := &models.Pet{
		Name:                name,
		Species:             species,
		Breed:               in.Breed,
		Age:                 in.Age,
		Gender:              in.Gender,
		Description:         in.Description,
		FeedingInstructions: in.FeedingInstructions,
		MedicalNotes:        in.MedicalNotes,
		ImageURL:            in.ImageURL,
		IsEmergency:         in.IsEmergency,
	}

	err = s.db.InTx(func(tx *database.Tx) error {
		_, err := s.petRepo.Create(tx, pet)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	pet.CreatedAt = now
	pet.UpdatedAt = now

	if pet.IsEmergency {
		if err := s.emailService.NotifyEmergencyIntake(ctx, pet); err != nil {
			log.Printf("Failed to send emergency intake notification for pet %d: %v", pet.ID, err)
		}
	}

	return pet, nil
}

// DeletePet removes a pet and, through cascading deletes, all of its
// updates, checklists, completions and weight records.
func (s *PetService) DeletePet(petID int64) error {
	if _, err := s.GetPet(petID); err != nil {
		return err
	}

	return s.db.InTx(func(tx *database.Tx) error {
		return s.petRepo.Delete(tx, petID)
	})
}
