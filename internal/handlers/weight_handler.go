package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"pawpass/internal/service"
	"pawpass/internal/utils"
)

// WeightHandler handles weight tracking HTTP requests
type WeightHandler struct {
	petService    *service.PetService
	weightService *service.WeightService
	templates     *template.Template
}

// NewWeightHandler creates a new weight handler
func NewWeightHandler(petService *service.PetService, weightService *service.WeightService, templates *template.Template) *WeightHandler {
	return &WeightHandler{
		petService:    petService,
		weightService: weightService,
		templates:     templates,
	}
}

// ShowWeightPage displays a pet's weight history and trend analysis
func (h *WeightHandler) ShowWeightPage(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := loadPetOrRedirect(w, r, h.petService)
	if !ok {
		return
	}

	trend, err := h.weightService.Trend(r.Context(), petID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading weight trend", err)
		return
	}

	h.renderPage(w, WeightViewData{
		Title: "Weight Tracking for " + pet.Name + " - PawPass",
		Pet:   pet,
		Trend: trend,
		Flash: popFlash(w, r),
	})
}

// AddWeight records a new weight measurement for a pet
func (h *WeightHandler) AddWeight(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := loadPetOrRedirect(w, r, h.petService)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	_, err := h.weightService.AddRecord(petID,
		r.FormValue("weight"),
		r.FormValue("record_date"),
		r.FormValue("volunteer_name"),
		r.FormValue("notes"))
	if err != nil {
		var vErr utils.ValidationError
		if errors.As(err, &vErr) {
			trend, terr := h.weightService.Trend(r.Context(), petID)
			if terr != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading weight trend", terr)
				return
			}
			h.renderPage(w, WeightViewData{
				Title: "Weight Tracking for " + pet.Name + " - PawPass",
				Pet:   pet,
				Trend: trend,
				Error: vErr.Error(),
			})
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding weight record", err)
		return
	}

	setFlash(w, "Weight recorded for "+pet.Name, "success")
	http.Redirect(w, r, "/pet/"+strconv.FormatInt(petID, 10)+"/weight", http.StatusSeeOther)
}

// DeleteWeight removes one weight record, scoped to the owning pet
func (h *WeightHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	pet, petID, ok := loadPetOrRedirect(w, r, h.petService)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(r.PathValue("recordID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	if err := h.weightService.DeleteRecord(petID, recordID); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			setFlash(w, "Weight record not found", "error")
			http.Redirect(w, r, "/pet/"+strconv.FormatInt(petID, 10)+"/weight", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting weight record", err)
		return
	}

	setFlash(w, "Weight record removed for "+pet.Name, "success")
	http.Redirect(w, r, "/pet/"+strconv.FormatInt(petID, 10)+"/weight", http.StatusSeeOther)
}

func (h *WeightHandler) renderPage(w http.ResponseWriter, data WeightViewData) {
	if err := h.templates.ExecuteTemplate(w, "weight.tmpl", data); err != nil {
		log.Printf("Error rendering weight template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
