package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
)

// legacyPet mirrors one entry of the flat-file pets.json snapshot used by
// the pre-database version of the app.
type legacyPet struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Image               string `json:"image"`
	Species             string `json:"species"`
	FeedingInstructions string `json:"feeding_instructions"`
	MedicalNotes        string `json:"medical_notes"`
	BehaviorNotes       string `json:"behavior_notes"`
	Updates             []struct {
		Date string `json:"date"`
		Time string `json:"time"`
		Note string `json:"note"`
	} `json:"updates"`
	Checklists []struct {
		Date     string `json:"date"`
		Time     string `json:"time"`
		Fed      bool   `json:"fed"`
		Meds     bool   `json:"meds"`
		Water    bool   `json:"water"`
		Playtime bool   `json:"playtime"`
		Notes    string `json:"notes"`
	} `json:"checklists"`
}

// legacyChecklistItems maps the snapshot's fixed checklist booleans onto
// item template descriptions and types.
var legacyChecklistItems = []struct {
	description string
	itemType    string
	done        func(c *legacyChecklist) bool
}{
	{"Fed", models.ItemTypeFeeding, func(c *legacyChecklist) bool { return c.Fed }},
	{"Medication given", models.ItemTypeMedication, func(c *legacyChecklist) bool { return c.Meds }},
	{"Fresh water", models.ItemTypeWater, func(c *legacyChecklist) bool { return c.Water }},
	{"Playtime", models.ItemTypeExercise, func(c *legacyChecklist) bool { return c.Playtime }},
}

type legacyChecklist struct {
	Fed      bool
	Meds     bool
	Water    bool
	Playtime bool
}

// LegacyImportService performs the one-time migration of the flat-file
// JSON snapshot into the relational schema.
type LegacyImportService struct {
	db            *database.DB
	petRepo       *repository.PetRepository
	updateRepo    *repository.UpdateRepository
	itemRepo      *repository.ItemRepository
	checklistRepo *repository.ChecklistRepository
}

// NewLegacyImportService creates a new legacy import service
func NewLegacyImportService(db *database.DB, petRepo *repository.PetRepository, updateRepo *repository.UpdateRepository, itemRepo *repository.ItemRepository, checklistRepo *repository.ChecklistRepository) *LegacyImportService {
	return &LegacyImportService{
		db:            db,
		petRepo:       petRepo,
		updateRepo:    updateRepo,
		itemRepo:      itemRepo,
		checklistRepo: checklistRepo,
	}
}

// ImportIfEmpty ingests the snapshot file when the database holds no pets.
// Idempotent: a no-op once any pet row exists, or when the file is absent.
func (s *LegacyImportService) ImportIfEmpty(path string) error {
	count, err := s.petRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("No legacy data file at %s, skipping import", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy data file: %w", err)
	}

	var legacyPets []legacyPet
	if err := json.Unmarshal(data, &legacyPets); err != nil {
		return fmt.Errorf("failed to parse legacy data file: %w", err)
	}

	imported := 0
	err = s.db.InTx(func(tx *database.Tx) error {
		for _, lp := range legacyPets {
			pet, err := s.petRepo.Create(tx, &models.Pet{
				Name:                lp.Name,
				Species:             lp.Species,
				Description:         lp.BehaviorNotes,
				FeedingInstructions: lp.FeedingInstructions,
				MedicalNotes:        lp.MedicalNotes,
				ImageURL:            lp.Image,
			})
			if err != nil {
				return err
			}

			for _, lu := range lp.Updates {
				_, err := s.updateRepo.Insert(tx, &models.PetUpdate{
					PetID:      pet.ID,
					UpdateText: lu.Note,
					UpdateDate: lu.Date,
					UpdateTime: lu.Time,
				})
				if err != nil {
					return err
				}
			}

			for _, lc := range lp.Checklists {
				checklist, err := s.checklistRepo.InsertChecklist(tx, &models.Checklist{
					PetID:          pet.ID,
					CompletionDate: lc.Date,
					CompletionTime: lc.Time,
					Notes:          lc.Notes,
				})
				if err != nil {
					return err
				}

				flags := &legacyChecklist{Fed: lc.Fed, Meds: lc.Meds, Water: lc.Water, Playtime: lc.Playtime}
				for _, li := range legacyChecklistItems {
					item, err := s.itemRepo.FindOrCreateByDescription(tx, li.description, li.itemType)
					if err != nil {
						return err
					}
					err = s.checklistRepo.InsertCompletion(tx, &models.ChecklistCompletion{
						ChecklistID:     checklist.ID,
						ChecklistItemID: item.ID,
						Completed:       li.done(flags),
					})
					if err != nil {
						return err
					}
				}
			}

			imported++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("legacy import failed: %w", err)
	}

	log.Printf("Imported %d pets from legacy data file %s", imported, path)
	return nil
}
