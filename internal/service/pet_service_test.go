package service

import (
	"context"
	"errors"
	"testing"
)

func TestCreatePetValidatesRequiredFields(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.pets.CreatePet(context.Background(), CreatePetInput{Species: "cat"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := env.pets.CreatePet(context.Background(), CreatePetInput{Name: "Luna"}); err == nil {
		t.Error("expected error for missing species")
	}

	count, err := env.petRepo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected pets must not be stored, got %d", count)
	}
}

func TestGetProfileAggregatesMostRecentFirst(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	for _, text := range []string{"first note", "second note"} {
		if _, err := env.updates.AddUpdate(pet.ID, text, "Sam"); err != nil {
			t.Fatalf("AddUpdate failed: %v", err)
		}
	}

	if _, err := env.checklists.Submit(context.Background(), pet.ID, SubmitChecklistInput{
		Dynamic: []DynamicItem{{Token: TokenWaterRefill}},
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	profile, err := env.pets.GetProfile(pet.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}

	if profile.Pet.Name != "Luna" {
		t.Errorf("expected Luna, got %q", profile.Pet.Name)
	}
	if len(profile.Updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(profile.Updates))
	}
	// Same-day entries fall back to id desc, so the later note comes first
	if profile.Updates[0].UpdateText != "second note" {
		t.Errorf("expected most recent update first, got %q", profile.Updates[0].UpdateText)
	}
	if len(profile.Checklists) != 1 {
		t.Fatalf("expected 1 checklist, got %d", len(profile.Checklists))
	}
	if len(profile.Checklists[0].CompletedItems) != 1 || profile.Checklists[0].CompletedItems[0] != "Water bowl refilled" {
		t.Errorf("expected completed item descriptions, got %v", profile.Checklists[0].CompletedItems)
	}
}

func TestGetProfileUnknownPet(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.pets.GetProfile(42); !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound, got %v", err)
	}
}

func TestDeletePetRemovesEverything(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	if _, err := env.updates.AddUpdate(pet.ID, "note", "Sam"); err != nil {
		t.Fatalf("AddUpdate failed: %v", err)
	}
	if _, err := env.weights.AddRecord(pet.ID, "4.2", "2026-08-29", "Sam", ""); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	if err := env.pets.DeletePet(pet.ID); err != nil {
		t.Fatalf("DeletePet failed: %v", err)
	}

	if _, err := env.pets.GetPet(pet.ID); !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound after delete, got %v", err)
	}

	updates, err := env.updateRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if updates != 0 {
		t.Errorf("expected updates removed, got %d", updates)
	}

	weights, err := env.weightRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if weights != 0 {
		t.Errorf("expected weight records removed, got %d", weights)
	}
}

func TestDeletePetUnknown(t *testing.T) {
	env := newTestEnv(t)

	if err := env.pets.DeletePet(42); !errors.Is(err, ErrPetNotFound) {
		t.Errorf("expected ErrPetNotFound, got %v", err)
	}
}
