package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"pawpass/internal/service"
	"pawpass/internal/utils"
)

// ChecklistHandler handles shift checklist HTTP requests
type ChecklistHandler struct {
	petService       *service.PetService
	checklistService *service.ChecklistService
	templates        *template.Template
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(petService *service.PetService, checklistService *service.ChecklistService, templates *template.Template) *ChecklistHandler {
	return &ChecklistHandler{
		petService:       petService,
		checklistService: checklistService,
		templates:        templates,
	}
}

// ShowChecklistForm displays the shift checklist form with the item
// templates applicable to the pet's species, grouped by type.
func (h *ChecklistHandler) ShowChecklistForm(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := loadPetOrRedirect(w, r, h.petService)
	if !ok {
		return
	}

	groups, err := h.checklistService.ListItemsGrouped(petID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading checklist items", err)
		return
	}

	h.renderForm(w, ChecklistFormViewData{
		Title:  "Shift Checklist for " + pet.Name + " - PawPass",
		Pet:    pet,
		Groups: groups,
	})
}

// SubmitChecklist records one shift checklist
func (h *ChecklistHandler) SubmitChecklist(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := loadPetOrRedirect(w, r, h.petService)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	in := parseChecklistForm(r)

	checklist, err := h.checklistService.Submit(r.Context(), petID, in)
	if err != nil {
		var vErr utils.ValidationError
		switch {
		case errors.Is(err, service.ErrNoItemsCompleted):
			h.rerenderWithError(w, petID, pet.Name, "Please complete at least one item before submitting")
		case errors.As(err, &vErr):
			h.rerenderWithError(w, petID, pet.Name, vErr.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error submitting checklist", err)
		}
		return
	}

	completed, err := h.checklistService.CompletedCount(checklist.ID)
	if err != nil {
		log.Printf("Error counting completions for checklist %d: %v", checklist.ID, err)
	}
	setFlash(w, fmt.Sprintf("Checklist completed with %d items for %s!", completed, pet.Name), "success")
	http.Redirect(w, r, "/pet/"+strconv.FormatInt(petID, 10), http.StatusSeeOther)
}

// parseChecklistForm translates the submitted form into a checklist
// submission. Template selections arrive as item_<id> values with optional
// measurement_<id> and notes_<id> companions; ad-hoc tasks arrive as
// multi-valued "items" tokens with their own auxiliary fields.
func parseChecklistForm(r *http.Request) service.SubmitChecklistInput {
	in := service.SubmitChecklistInput{
		VolunteerName: strings.TrimSpace(r.FormValue("volunteer_name")),
		Notes:         strings.TrimSpace(r.FormValue("general_notes")),
	}

	for key := range r.PostForm {
		idStr, found := strings.CutPrefix(key, "item_")
		if !found {
			continue
		}
		itemID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		in.Selections = append(in.Selections, service.ItemSelection{
			ItemID:      itemID,
			Value:       strings.TrimSpace(r.FormValue(key)),
			Measurement: strings.TrimSpace(r.FormValue("measurement_" + idStr)),
			Notes:       strings.TrimSpace(r.FormValue("notes_" + idStr)),
		})
	}

	for _, token := range r.PostForm["items"] {
		in.Dynamic = append(in.Dynamic, service.DynamicItem{
			Token:    token,
			Amount:   dynamicAmount(r, token),
			Name:     strings.TrimSpace(r.FormValue("med_name")),
			Dose:     strings.TrimSpace(r.FormValue("med_dose")),
			Duration: strings.TrimSpace(r.FormValue("play_duration")),
		})
	}

	return in
}

// dynamicAmount picks the amount field matching a feeding token
func dynamicAmount(r *http.Request, token string) string {
	switch token {
	case service.TokenFeedingDry:
		return strings.TrimSpace(r.FormValue("dry_amount"))
	case service.TokenFeedingWet:
		return strings.TrimSpace(r.FormValue("wet_amount"))
	default:
		return ""
	}
}

func (h *ChecklistHandler) rerenderWithError(w http.ResponseWriter, petID int64, petName, errMsg string) {
	pet, err := h.petService.GetPet(petID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error reloading pet", err)
		return
	}

	groups, err := h.checklistService.ListItemsGrouped(petID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading checklist items", err)
		return
	}

	h.renderForm(w, ChecklistFormViewData{
		Title:  "Shift Checklist for " + petName + " - PawPass",
		Pet:    pet,
		Groups: groups,
		Error:  errMsg,
	})
}

func (h *ChecklistHandler) renderForm(w http.ResponseWriter, data ChecklistFormViewData) {
	if err := h.templates.ExecuteTemplate(w, "checklist.tmpl", data); err != nil {
		log.Printf("Error rendering checklist template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
