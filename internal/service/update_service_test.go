package service

import (
	"context"
	"errors"
	"testing"

	"pawpass/internal/ai"
)

func TestAddUpdateRejectsEmptyText(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := env.updates.AddUpdate(pet.ID, text, "Sam"); err == nil {
			t.Errorf("expected rejection for text %q", text)
		}
	}

	count, err := env.updateRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected updates must not be stored, got count %d", count)
	}
}

func TestAddUpdateStampsDateAndTime(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	update, err := env.updates.AddUpdate(pet.ID, "  Ate all her breakfast  ", "Sam")
	if err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}

	if update.UpdateText != "Ate all her breakfast" {
		t.Errorf("expected trimmed text, got %q", update.UpdateText)
	}
	if update.UpdateDate == "" || update.UpdateTime == "" {
		t.Errorf("expected date and time stamps, got %q %q", update.UpdateDate, update.UpdateTime)
	}
}

func TestAddUpdateUnknownPet(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.updates.AddUpdate(9999, "note", ""); !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound, got %v", err)
	}
}

func TestCareSummaryDisabledAnalyzer(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	if _, err := env.updates.AddUpdate(pet.ID, "Ate well", "Sam"); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}

	_, err := env.updates.CareSummary(context.Background(), pet.ID, 7)
	if !errors.Is(err, ai.ErrDisabled) {
		t.Errorf("expected ai.ErrDisabled, got %v", err)
	}
}

type stubAnalyzer struct {
	response string
	prompts  []string
}

func (s *stubAnalyzer) AnalyzeText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, nil
}

func (s *stubAnalyzer) Enabled() bool { return true }

func TestCareSummaryUsesRecentUpdates(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")
	stub := &stubAnalyzer{response: "Luna is doing great."}
	env.updates.analyzer = stub

	if _, err := env.updates.AddUpdate(pet.ID, "Played with the feather toy", "Sam"); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}

	summary, err := env.updates.CareSummary(context.Background(), pet.ID, 7)
	if err != nil {
		t.Fatalf("CareSummary failed: %v", err)
	}
	if summary != "Luna is doing great." {
		t.Errorf("unexpected summary %q", summary)
	}
	if len(stub.prompts) != 1 {
		t.Fatalf("expected 1 analyzer call, got %d", len(stub.prompts))
	}
}

func TestCareSummaryNoRecentUpdates(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")
	env.updates.analyzer = &stubAnalyzer{response: "unused"}

	_, err := env.updates.CareSummary(context.Background(), pet.ID, 7)
	if !errors.Is(err, ErrNoRecentUpdates) {
		t.Errorf("expected ErrNoRecentUpdates, got %v", err)
	}
}
