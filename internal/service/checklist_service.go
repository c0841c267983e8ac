package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
	"pawpass/internal/utils"
)

var (
	// ErrNoItemsCompleted rejects a checklist submission in which nothing
	// was actually done
	ErrNoItemsCompleted = errors.New("a checklist must have at least one completed item")
)

// Dynamic item tokens accepted by checklist submissions. Each composes a
// descriptive text from its auxiliary fields and resolves to a non-default
// item template via lookup-or-create.
const (
	TokenFeedingDry  = "feeding_dry"
	TokenFeedingWet  = "feeding_wet"
	TokenMedication  = "medication"
	TokenWaterRefill = "water_refill"
	TokenLitter      = "litter"
	TokenPlaytime    = "playtime"
)

// ItemSelection records the volunteer's entry for one known item template
type ItemSelection struct {
	ItemID      int64
	Value       string
	Measurement string
	Notes       string
}

// DynamicItem is an ad-hoc task selected by keyword token, carrying its
// auxiliary form fields
type DynamicItem struct {
	Token    string
	Amount   string
	Name     string
	Dose     string
	Duration string
}

// SubmitChecklistInput carries one shift checklist submission
type SubmitChecklistInput struct {
	VolunteerName string
	Notes         string
	Selections    []ItemSelection
	Dynamic       []DynamicItem
}

// ChecklistService handles shift checklist business logic
type ChecklistService struct {
	db            *database.DB
	petRepo       *repository.PetRepository
	itemRepo      *repository.ItemRepository
	checklistRepo *repository.ChecklistRepository
	emailService  *EmailService
	now           func() time.Time
}

// NewChecklistService creates a new checklist service
func NewChecklistService(db *database.DB, petRepo *repository.PetRepository, itemRepo *repository.ItemRepository, checklistRepo *repository.ChecklistRepository, emailService *EmailService, loc *time.Location) *ChecklistService {
	return &ChecklistService{
		db:            db,
		petRepo:       petRepo,
		itemRepo:      itemRepo,
		checklistRepo: checklistRepo,
		emailService:  emailService,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

// ListItemsGrouped returns the item templates applicable to a pet's
// species, grouped by item type for the checklist form.
func (s *ChecklistService) ListItemsGrouped(petID int64) ([]models.ItemGroup, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	items, err := s.itemRepo.ListForSpecies(pet.Species)
	if err != nil {
		return nil, err
	}

	var groups []models.ItemGroup
	for _, item := range items {
		if len(groups) == 0 || groups[len(groups)-1].ItemType != item.ItemType {
			groups = append(groups, models.ItemGroup{ItemType: item.ItemType})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, item)
	}

	return groups, nil
}

// Submit records one shift checklist in a single transaction. Every known
// template applicable to the pet gets a completion row marked according to
// the volunteer's selections; dynamic items resolve to templates via
// lookup-or-create and are always marked completed. If nothing ends up
// completed the whole submission is rolled back.
//
// Submissions are not idempotent: resubmitting the same form creates a new
// checklist with new completion rows.
func (s *ChecklistService) Submit(ctx context.Context, petID int64, in SubmitChecklistInput) (*models.Checklist, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	items, err := s.itemRepo.ListForSpecies(pet.Species)
	if err != nil {
		return nil, err
	}

	selected := make(map[int64]ItemSelection, len(in.Selections))
	for _, sel := range in.Selections {
		if strings.TrimSpace(sel.Value) != "" {
			selected[sel.ItemID] = sel
		}
	}

	// Validate dynamic tokens before opening the transaction
	for _, dyn := range in.Dynamic {
		if _, _, err := composeDynamicItem(dyn); err != nil {
			return nil, err
		}
	}

	now := s.now()
	checklist := &models.Checklist{
		PetID:          petID,
		VolunteerName:  strings.TrimSpace(in.VolunteerName),
		CompletionDate: now.Format(utils.DateFormat),
		CompletionTime: now.Format(utils.TimeFormat),
		Notes:          in.Notes,
	}

	completedCount := 0
	err = s.db.InTx(func(tx *database.Tx) error {
		if _, err := s.checklistRepo.InsertChecklist(tx, checklist); err != nil {
			return err
		}

		for _, item := range items {
			sel, done := selected[item.ID]
			value := strings.TrimSpace(sel.Value)
			if measurement := strings.TrimSpace(sel.Measurement); measurement != "" {
				value = value + " - " + measurement
			}

			comp := &models.ChecklistCompletion{
				ChecklistID:     checklist.ID,
				ChecklistItemID: item.ID,
				Completed:       done,
				Value:           value,
				Notes:           sel.Notes,
			}
			if err := s.checklistRepo.InsertCompletion(tx, comp); err != nil {
				return err
			}
			if done {
				completedCount++
			}
		}

		for _, dyn := range in.Dynamic {
			description, itemType, err := composeDynamicItem(dyn)
			if err != nil {
				return err
			}

			item, err := s.itemRepo.FindOrCreateByDescription(tx, description, itemType)
			if err != nil {
				return err
			}

			comp := &models.ChecklistCompletion{
				ChecklistID:     checklist.ID,
				ChecklistItemID: item.ID,
				Completed:       true,
			}
			if err := s.checklistRepo.InsertCompletion(tx, comp); err != nil {
				return err
			}
			completedCount++
		}

		if completedCount == 0 {
			return ErrNoItemsCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	checklist.CreatedAt = now

	if err := s.emailService.NotifyChecklistCompleted(ctx, pet, checklist.VolunteerName, completedCount); err != nil {
		log.Printf("Failed to send checklist notification for pet %d: %v", petID, err)
	}

	return checklist, nil
}

// ListByPet retrieves all checklists for a pet with their completed item
// descriptions, most recent first
func (s *ChecklistService) ListByPet(petID int64) ([]models.ChecklistWithItems, error) {
	return s.checklistRepo.ListByPet(petID)
}

// CompletedCount returns how many of a checklist's items were marked done
func (s *ChecklistService) CompletedCount(checklistID int64) (int, error) {
	completions, err := s.checklistRepo.ListCompletions(checklistID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range completions {
		if c.Completed {
			count++
		}
	}
	return count, nil
}

// composeDynamicItem turns a dynamic token and its auxiliary fields into
// the descriptive text and item type for the template upsert.
func composeDynamicItem(dyn DynamicItem) (description, itemType string, err error) {
	switch dyn.Token {
	case TokenFeedingDry:
		return withDetail("Dry food", strings.TrimSpace(dyn.Amount)), models.ItemTypeFeeding, nil
	case TokenFeedingWet:
		return withDetail("Wet food", strings.TrimSpace(dyn.Amount)), models.ItemTypeFeeding, nil
	case TokenMedication:
		name := strings.TrimSpace(dyn.Name)
		dose := strings.TrimSpace(dyn.Dose)
		switch {
		case name != "" && dose != "":
			return fmt.Sprintf("Medication: %s (%s)", name, dose), models.ItemTypeMedication, nil
		case name != "":
			return "Medication: " + name, models.ItemTypeMedication, nil
		default:
			return "Medication", models.ItemTypeMedication, nil
		}
	case TokenWaterRefill:
		return "Water bowl refilled", models.ItemTypeWater, nil
	case TokenLitter:
		return "Litter box cleaned", models.ItemTypeLitter, nil
	case TokenPlaytime:
		return withDetail("Playtime", strings.TrimSpace(dyn.Duration)), models.ItemTypeExercise, nil
	default:
		return "", "", utils.ValidationError{Field: "items", Message: "unknown checklist item: " + dyn.Token}
	}
}

func withDetail(base, detail string) string {
	if detail == "" {
		return base
	}
	return base + ": " + detail
}
