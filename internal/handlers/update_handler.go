package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"pawpass/internal/ai"
	"pawpass/internal/models"
	"pawpass/internal/service"
	"pawpass/internal/utils"
)

// UpdateHandler handles care update HTTP requests
type UpdateHandler struct {
	petService    *service.PetService
	updateService *service.UpdateService
	templates     *template.Template
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(petService *service.PetService, updateService *service.UpdateService, templates *template.Template) *UpdateHandler {
	return &UpdateHandler{
		petService:    petService,
		updateService: updateService,
		templates:     templates,
	}
}

// ShowUpdateForm displays the care update form for a pet
func (h *UpdateHandler) ShowUpdateForm(w http.ResponseWriter, r *http.Request) {
	pet, _, ok := h.loadPet(w, r)
	if !ok {
		return
	}

	h.renderForm(w, UpdateFormViewData{
		Title: "Add Update for " + pet.Name + " - PawPass",
		Pet:   pet,
	})
}

// SubmitUpdate records a new care update for a pet
func (h *UpdateHandler) SubmitUpdate(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := h.loadPet(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	text := r.FormValue("update")
	volunteerName := r.FormValue("volunteer_name")

	if _, err := h.updateService.AddUpdate(petID, text, volunteerName); err != nil {
		var vErr utils.ValidationError
		if errors.As(err, &vErr) {
			h.renderForm(w, UpdateFormViewData{
				Title: "Add Update for " + pet.Name + " - PawPass",
				Pet:   pet,
				Error: vErr.Error(),
				Text:  text,
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding update", err)
		return
	}

	setFlash(w, "Update added for "+pet.Name, "success")
	http.Redirect(w, r, "/pet/"+strconv.FormatInt(petID, 10), http.StatusSeeOther)
}

// CareSummary returns an AI-generated summary of a pet's recent updates
func (h *UpdateHandler) CareSummary(w http.ResponseWriter, r *http.Request) {
	petID, err := parsePetID(r)
	if err != nil {
		respondWithJSONError(w, http.StatusBadRequest, ErrInvalidPetID, "", nil)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	summary, err := h.updateService.CareSummary(r.Context(), petID, days)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			respondWithJSONError(w, http.StatusNotFound, ErrPetNotFound, "", nil)
		case errors.Is(err, ai.ErrDisabled):
			respondWithJSONError(w, http.StatusServiceUnavailable, "AI summary is not available", "", nil)
		case errors.Is(err, service.ErrNoRecentUpdates):
			respondWithJSONError(w, http.StatusNotFound, "No recent updates to summarize", "", nil)
		default:
			respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Error generating care summary", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pet_id":  petID,
		"days":    days,
		"summary": summary,
	})
}

func (h *UpdateHandler) loadPet(w http.ResponseWriter, r *http.Request) (*models.Pet, int64, bool) {
	return loadPetOrRedirect(w, r, h.petService)
}

func (h *UpdateHandler) renderForm(w http.ResponseWriter, data UpdateFormViewData) {
	if err := h.templates.ExecuteTemplate(w, "update.tmpl", data); err != nil {
		log.Printf("Error rendering update template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
