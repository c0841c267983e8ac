package service

import (
	"context"
	"errors"
	"testing"

	"pawpass/internal/models"
)

func TestSubmitChecklistRejectsEmptySubmission(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	if _, err := env.itemRepo.Insert(env.db, &models.ChecklistItem{
		Description: "Fresh water",
		ItemType:    models.ItemTypeWater,
		IsDefault:   true,
	}); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	_, err := env.checklists.Submit(context.Background(), pet.ID, SubmitChecklistInput{
		VolunteerName: "Sam",
	})
	if !errors.Is(err, ErrNoItemsCompleted) {
		t.Fatalf("expected ErrNoItemsCompleted, got %v", err)
	}

	// The whole submission must roll back, checklist row included
	count, err := env.checklistRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 checklists after rollback, got %d", count)
	}

	completions, err := env.checklistRepo.CountCompletions()
	if err != nil {
		t.Fatalf("CountCompletions failed: %v", err)
	}
	if completions != 0 {
		t.Errorf("expected 0 completions after rollback, got %d", completions)
	}
}

func TestSubmitChecklistRecordsSelections(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	fed, err := env.itemRepo.Insert(env.db, &models.ChecklistItem{
		Description: "Morning feeding",
		ItemType:    models.ItemTypeFeeding,
		IsDefault:   true,
		Unit:        "cups",
	})
	if err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}
	if _, err := env.itemRepo.Insert(env.db, &models.ChecklistItem{
		Description: "Fresh water",
		ItemType:    models.ItemTypeWater,
		IsDefault:   true,
	}); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	checklist, err := env.checklists.Submit(context.Background(), pet.ID, SubmitChecklistInput{
		VolunteerName: "Sam",
		Notes:         "All good",
		Selections: []ItemSelection{
			{ItemID: fed.ID, Value: "ate everything", Measurement: "1"},
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	completions, err := env.checklistRepo.ListCompletions(checklist.ID)
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	// One completion row per applicable template, done or not
	if len(completions) != 2 {
		t.Fatalf("expected 2 completion rows, got %d", len(completions))
	}

	byItem := map[int64]models.ChecklistCompletion{}
	for _, c := range completions {
		byItem[c.ChecklistItemID] = c
	}
	done := byItem[fed.ID]
	if !done.Completed {
		t.Error("selected item should be marked completed")
	}
	if done.Value != "ate everything - 1" {
		t.Errorf("expected joined value with measurement, got %q", done.Value)
	}
}

func TestSubmitChecklistDynamicTokensUpsertTemplates(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	submit := func() {
		t.Helper()
		_, err := env.checklists.Submit(context.Background(), pet.ID, SubmitChecklistInput{
			VolunteerName: "Sam",
			Dynamic: []DynamicItem{
				{Token: TokenMedication, Name: "Amoxicillin", Dose: "50mg"},
				{Token: TokenFeedingDry, Amount: "1 cup"},
			},
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	submit()

	countAfterFirst, err := env.itemRepo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if countAfterFirst != 2 {
		t.Fatalf("expected 2 upserted templates, got %d", countAfterFirst)
	}

	// A second identical submission reuses the templates
	submit()

	countAfterSecond, err := env.itemRepo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if countAfterSecond != countAfterFirst {
		t.Errorf("template count grew from %d to %d on resubmission", countAfterFirst, countAfterSecond)
	}

	// But each submission is its own checklist
	checklists, err := env.checklistRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if checklists != 2 {
		t.Errorf("expected 2 checklists, got %d", checklists)
	}
}

func TestSubmitChecklistUnknownTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	pet := env.createPet(t, "Luna", "cat")

	_, err := env.checklists.Submit(context.Background(), pet.ID, SubmitChecklistInput{
		Dynamic: []DynamicItem{{Token: "grooming_deluxe"}},
	})
	if err == nil {
		t.Fatal("expected error for unknown token")
	}

	count, err := env.checklistRepo.CountByPet(pet.ID)
	if err != nil {
		t.Fatalf("CountByPet failed: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected submission must not persist, got %d checklists", count)
	}
}

func TestComposeDynamicItemDescriptions(t *testing.T) {
	tests := []struct {
		name     string
		dyn      DynamicItem
		wantDesc string
		wantType string
	}{
		{"medication with dose", DynamicItem{Token: TokenMedication, Name: "Amoxicillin", Dose: "50mg"}, "Medication: Amoxicillin (50mg)", models.ItemTypeMedication},
		{"medication without dose", DynamicItem{Token: TokenMedication, Name: "Amoxicillin"}, "Medication: Amoxicillin", models.ItemTypeMedication},
		{"bare medication", DynamicItem{Token: TokenMedication}, "Medication", models.ItemTypeMedication},
		{"dry food with amount", DynamicItem{Token: TokenFeedingDry, Amount: "1 cup"}, "Dry food: 1 cup", models.ItemTypeFeeding},
		{"wet food bare", DynamicItem{Token: TokenFeedingWet}, "Wet food", models.ItemTypeFeeding},
		{"water refill", DynamicItem{Token: TokenWaterRefill}, "Water bowl refilled", models.ItemTypeWater},
		{"litter", DynamicItem{Token: TokenLitter}, "Litter box cleaned", models.ItemTypeLitter},
		{"playtime with duration", DynamicItem{Token: TokenPlaytime, Duration: "15 min"}, "Playtime: 15 min", models.ItemTypeExercise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, itemType, err := composeDynamicItem(tt.dyn)
			if err != nil {
				t.Fatalf("composeDynamicItem failed: %v", err)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
			if itemType != tt.wantType {
				t.Errorf("item type = %q, want %q", itemType, tt.wantType)
			}
		})
	}
}

func TestListItemsGroupedBySpecies(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createPet(t, "Luna", "cat")
	dogOnly := "dog"

	for _, item := range []*models.ChecklistItem{
		{Description: "Fresh water", ItemType: models.ItemTypeWater, IsDefault: true},
		{Description: "Morning walk", ItemType: models.ItemTypeExercise, IsDefault: true, SpeciesApplicable: &dogOnly},
		{Description: "Evening feeding", ItemType: models.ItemTypeFeeding, IsDefault: true},
	} {
		if _, err := env.itemRepo.Insert(env.db, item); err != nil {
			t.Fatalf("Failed to insert item: %v", err)
		}
	}

	groups, err := env.checklists.ListItemsGrouped(cat.ID)
	if err != nil {
		t.Fatalf("ListItemsGrouped failed: %v", err)
	}

	total := 0
	for _, g := range groups {
		for _, item := range g.Items {
			total++
			if item.ItemType != g.ItemType {
				t.Errorf("item %q grouped under %q but has type %q", item.Description, g.ItemType, item.ItemType)
			}
			if item.Description == "Morning walk" {
				t.Error("dog-scoped item offered for a cat")
			}
		}
	}
	if total != 2 {
		t.Errorf("expected 2 items for a cat, got %d", total)
	}
}
