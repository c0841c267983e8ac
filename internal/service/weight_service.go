package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pawpass/internal/ai"
	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
	"pawpass/internal/utils"
)

var (
	ErrRecordNotFound = errors.New("weight record not found")
)

// WeightService handles weight tracking business logic
type WeightService struct {
	db         *database.DB
	petRepo    *repository.PetRepository
	weightRepo *repository.WeightRepository
	analyzer   ai.TextAnalyzer
	now        func() time.Time
}

// NewWeightService creates a new weight service
func NewWeightService(db *database.DB, petRepo *repository.PetRepository, weightRepo *repository.WeightRepository, analyzer ai.TextAnalyzer, loc *time.Location) *WeightService {
	return &WeightService{
		db:         db,
		petRepo:    petRepo,
		weightRepo: weightRepo,
		analyzer:   analyzer,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// AddRecord validates and stores a weight measurement. Weight must be
// strictly positive and the date parseable; invalid input is rejected with
// the specific field error before storage is touched.
func (s *WeightService) AddRecord(petID int64, rawWeight, rawDate, volunteerName, notes string) (*models.WeightRecord, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	weight, err := utils.ParseWeight(rawWeight)
	if err != nil {
		return nil, err
	}

	recordDate, err := utils.ParseRecordDate(rawDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &models.WeightRecord{
		PetID:         petID,
		Weight:        weight,
		RecordDate:    recordDate,
		RecordTime:    now.Format(utils.TimeFormat),
		VolunteerName: strings.TrimSpace(volunteerName),
		Notes:         notes,
	}

	err = s.db.InTx(func(tx *database.Tx) error {
		_, err := s.weightRepo.Insert(tx, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	record.CreatedAt = now
	return record, nil
}

// DeleteRecord removes a weight record scoped to the owning pet. A record
// belonging to a different pet is treated as not found.
func (s *WeightService) DeleteRecord(petID, recordID int64) error {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return err
	}
	if pet == nil {
		return ErrPetNotFound
	}

	return s.db.InTx(func(tx *database.Tx) error {
		found, err := s.weightRepo.Delete(tx, recordID, petID)
		if err != nil {
			return err
		}
		if !found {
			return ErrRecordNotFound
		}
		return nil
	})
}

// Trend returns a pet's weight history, most recent first, enriched with a
// textual analysis when at least two records exist and the AI collaborator
// is available. Analysis failures degrade to an omitted field.
func (s *WeightService) Trend(ctx context.Context, petID int64) (*models.WeightTrend, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	records, err := s.weightRepo.ListByPet(petID)
	if err != nil {
		return nil, err
	}

	trend := &models.WeightTrend{Records: records}

	if len(records) >= 2 && s.analyzer.Enabled() {
		analysis, err := s.analyzer.AnalyzeText(ctx, weightTrendPrompt(pet, records))
		if err != nil {
			log.Printf("Weight trend analysis failed for pet %d: %v", petID, err)
		} else {
			trend.Analysis = analysis
		}
	}

	return trend, nil
}

func weightTrendPrompt(pet *models.Pet, records []models.WeightRecord) string {
	age := "Unknown"
	if pet.Age != nil {
		age = fmt.Sprintf("%d", *pet.Age)
	}

	var lines []string
	for _, w := range records {
		lines = append(lines, fmt.Sprintf("Date: %s - Weight: %.1fkg", w.RecordDate, w.Weight))
	}

	return fmt.Sprintf(`Please analyze the following weight records for %s, a %s (age: %s).
Provide insights on:
1. Overall weight trend (increasing, decreasing, stable)
2. Rate of change
3. Potential health implications
4. Recommendations for monitoring

Keep your response under 250 words, be factual, and highlight any concerning patterns.

WEIGHT RECORDS:
%s`, pet.Name, pet.Species, age, strings.Join(lines, "\n"))
}
