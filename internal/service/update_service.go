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
	// ErrNoRecentUpdates indicates there is nothing to summarize
	ErrNoRecentUpdates = errors.New("no recent updates found")
)

// UpdateService handles care update business logic
type UpdateService struct {
	db         *database.DB
	petRepo    *repository.PetRepository
	updateRepo *repository.UpdateRepository
	analyzer   ai.TextAnalyzer
	now        func() time.Time
}

// NewUpdateService creates a new update service
func NewUpdateService(db *database.DB, petRepo *repository.PetRepository, updateRepo *repository.UpdateRepository, analyzer ai.TextAnalyzer, loc *time.Location) *UpdateService {
	return &UpdateService{
		db:         db,
		petRepo:    petRepo,
		updateRepo: updateRepo,
		analyzer:   analyzer,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// AddUpdate records a care update for a pet, stamped with the current
// shelter-local date and time. Empty or whitespace-only text is rejected
// before touching storage.
func (s *UpdateService) AddUpdate(petID int64, text, volunteerName string) (*models.PetUpdate, error) {
	text, err := utils.ValidateUpdateText(text)
	if err != nil {
		return nil, err
	}

	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	now := s.now()
	update := &models.PetUpdate{
		PetID:         petID,
		UpdateText:    text,
		UpdateDate:    now.Format(utils.DateFormat),
		UpdateTime:    now.Format(utils.TimeFormat),
		VolunteerName: strings.TrimSpace(volunteerName),
	}

	err = s.db.InTx(func(tx *database.Tx) error {
		_, err := s.updateRepo.Insert(tx, update)
		return err
	})
	if err != nil {
		return nil, err
	}

	update.CreatedAt = now
	return update, nil
}

// ListByPet retrieves all updates for a pet, most recent first
func (s *UpdateService) ListByPet(petID int64) ([]models.PetUpdate, error) {
	return s.updateRepo.ListByPet(petID)
}

// CareSummary asks the AI collaborator to summarize the pet's updates from
// the last `days` days. Returns ErrNoRecentUpdates when there is nothing
// to analyze and ai.ErrDisabled when no analyzer is configured.
func (s *UpdateService) CareSummary(ctx context.Context, petID int64, days int) (string, error) {
	pet, err := s.petRepo.GetByID(petID)
	if err != nil {
		return "", err
	}
	if pet == nil {
		return "", ErrPetNotFound
	}

	if !s.analyzer.Enabled() {
		return "", ai.ErrDisabled
	}

	if days <= 0 {
		days = 7
	}
	cutoff := s.now().AddDate(0, 0, -days).Format(utils.DateFormat)

	updates, err := s.updateRepo.ListByPetSince(petID, cutoff)
	if err != nil {
		return "", err
	}
	if len(updates) == 0 {
		return "", ErrNoRecentUpdates
	}

	var lines []string
	for _, u := range updates {
		lines = append(lines, fmt.Sprintf("Date: %s Time: %s - %s", u.UpdateDate, u.UpdateTime, u.UpdateText))
	}

	prompt := fmt.Sprintf(`Please analyze the following updates for %s, a %s, and provide a concise care summary.
Focus on health trends, behavior patterns, medication compliance, and dietary observations.
Keep your response under 300 words and organize it by topics.

UPDATES:
%s`, pet.Name, pet.Species, strings.Join(lines, "\n"))

	summary, err := s.analyzer.AnalyzeText(ctx, prompt)
	if err != nil {
		log.Printf("Care summary analysis failed for pet %d: %v", petID, err)
		return "", err
	}
	return summary, nil
}
