package service

import (
	"log"

	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
)

// SeedService creates the default checklist item templates on first run
type SeedService struct {
	db       *database.DB
	itemRepo *repository.ItemRepository
}

// NewSeedService creates a new seed service
func NewSeedService(db *database.DB, itemRepo *repository.ItemRepository) *SeedService {
	return &SeedService{db: db, itemRepo: itemRepo}
}

// SeedDefaultItems inserts the default item templates if none exist yet
func (s *SeedService) SeedDefaultItems() error {
	count, err := s.itemRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Checklist item templates already exist, skipping seed")
		return nil
	}

	items := defaultItems()

	err = s.db.InTx(func(tx *database.Tx) error {
		for i := range items {
			if _, err := s.itemRepo.Insert(tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded %d default checklist item templates", len(items))
	return nil
}

func defaultItems() []models.ChecklistItem {
	cat := "cat"
	return []models.ChecklistItem{
		// Medication
		{Description: "Morning Medication", ItemType: models.ItemTypeMedication, IsDefault: true,
			Options: `["Given","Not Required","Refused"]`, Frequency: "daily"},
		{Description: "Evening Medication", ItemType: models.ItemTypeMedication, IsDefault: true,
			Options: `["Given","Not Required","Refused"]`, Frequency: "daily"},
		{Description: "Special Medication", ItemType: models.ItemTypeMedication, IsDefault: true,
			Options: `["Given","Not Required","Refused"]`, Frequency: "as needed"},

		// Feeding
		{Description: "Morning Feed", ItemType: models.ItemTypeFeeding, IsDefault: true,
			Options: `["All Eaten","Partially Eaten","Not Eaten","Not Required"]`, Unit: "cups", Frequency: "daily"},
		{Description: "Evening Feed", ItemType: models.ItemTypeFeeding, IsDefault: true,
			Options: `["All Eaten","Partially Eaten","Not Eaten","Not Required"]`, Unit: "cups", Frequency: "daily"},
		{Description: "Treats/Supplements", ItemType: models.ItemTypeFeeding, IsDefault: true,
			Options: `["Given","Not Required"]`, Frequency: "as needed"},

		// Water
		{Description: "Water Intake", ItemType: models.ItemTypeWater, IsDefault: true,
			Options: `["Normal","Increased","Decreased","None"]`, Frequency: "daily"},
		{Description: "Water Bowl Cleaned", ItemType: models.ItemTypeWater, IsDefault: true,
			Options: `["Yes","No"]`, Frequency: "daily"},

		// Litter and bathroom
		{Description: "Litter Box Cleaned", ItemType: models.ItemTypeLitter, IsDefault: true,
			SpeciesApplicable: &cat, Options: `["Yes","No","Not Applicable"]`, Frequency: "daily"},
		{Description: "Bathroom Break", ItemType: models.ItemTypeBathroom, IsDefault: true,
			Options: `["Normal","Diarrhea","Constipation","Not Observed"]`, Frequency: "daily"},
		{Description: "Urination", ItemType: models.ItemTypeBathroom, IsDefault: true,
			Options: `["Normal","Frequent","Infrequent","Difficult","Not Observed"]`, Frequency: "daily"},

		// Exercise and enrichment
		{Description: "Exercise Session", ItemType: models.ItemTypeExercise, IsDefault: true,
			Options: `["Completed","Partial","Refused","Not Required"]`, Frequency: "daily"},
		{Description: "Enrichment Activity", ItemType: models.ItemTypeEnrichment, IsDefault: true,
			Options: `["Completed","Partial","Refused","Not Required"]`, Frequency: "daily"},

		// Grooming
		{Description: "Grooming", ItemType: models.ItemTypeGrooming, IsDefault: true,
			Options: `["Completed","Partial","Not Required"]`, Frequency: "weekly"},
	}
}
