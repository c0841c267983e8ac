package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pawpass/internal/service"
	"pawpass/internal/utils"
)

// APIHandler exposes the JSON mirror of the form surface. Error responses
// are structured objects; storage error detail is logged, never returned.
type APIHandler struct {
	petService       *service.PetService
	updateService    *service.UpdateService
	checklistService *service.ChecklistService
	weightService    *service.WeightService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(petService *service.PetService, updateService *service.UpdateService, checklistService *service.ChecklistService, weightService *service.WeightService) *APIHandler {
	return &APIHandler{
		petService:       petService,
		updateService:    updateService,
		checklistService: checklistService,
		weightService:    weightService,
	}
}

// ListPets returns all pets, optionally filtered by a name substring
func (h *APIHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.Search(r.URL.Query().Get("q"))
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Error searching pets", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"pets": pets})
}

// GetPet returns a pet's full profile
func (h *APIHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	profile, err := h.petService.GetProfile(petID)
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			respondWithJSONError(w, http.StatusNotFound, ErrPetNotFound, "", nil)
			return
		}
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading pet profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

type apiUpdateRequest struct {
	Update        string `json:"update"`
	VolunteerName string `json:"volunteer_name"`
}

// AddUpdate records a care update from a JSON payload
func (h *APIHandler) AddUpdate(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	var req apiUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid JSON payload", "", nil)
		return
	}

	update, err := h.updateService.AddUpdate(petID, req.Update, req.VolunteerName)
	if err != nil {
		h.writeDomainError(w, err, "Error adding update")
		return
	}

	respondWithJSON(w, http.StatusCreated, update)
}

type apiChecklistRequest struct {
	VolunteerName string `json:"volunteer_name"`
	Notes         string `json:"notes"`
	Selections    []struct {
		ItemID      int64  `json:"item_id"`
		Value       string `json:"value"`
		Measurement string `json:"measurement"`
		Notes       string `json:"notes"`
	} `json:"selections"`
	Items []struct {
		Token    string `json:"token"`
		Amount   string `json:"amount"`
		Name     string `json:"name"`
		Dose     string `json:"dose"`
		Duration string `json:"duration"`
	} `json:"items"`
}

// SubmitChecklist records a shift checklist from a JSON payload
func (h *APIHandler) SubmitChecklist(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	var req apiChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid JSON payload", "", nil)
		return
	}

	in := service.SubmitChecklistInput{
		VolunteerName: req.VolunteerName,
		Notes:         req.Notes,
	}
	for _, sel := range req.Selections {
		in.Selections = append(in.Selections, service.ItemSelection{
			ItemID:      sel.ItemID,
			Value:       sel.Value,
			Measurement: sel.Measurement,
			Notes:       sel.Notes,
		})
	}
	for _, item := range req.Items {
		in.Dynamic = append(in.Dynamic, service.DynamicItem{
			Token:    item.Token,
			Amount:   item.Amount,
			Name:     item.Name,
			Dose:     item.Dose,
			Duration: item.Duration,
		})
	}

	checklist, err := h.checklistService.Submit(r.Context(), petID, in)
	if err != nil {
		h.writeDomainError(w, err, "Error submitting checklist")
		return
	}

	respondWithJSON(w, http.StatusCreated, checklist)
}

// ListWeights returns a pet's weight history with optional trend analysis
func (h *APIHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	trend, err := h.weightService.Trend(r.Context(), petID)
	if err != nil {
		h.writeDomainError(w, err, "Error loading weight trend")
		return
	}

	respondWithJSON(w, http.StatusOK, trend)
}

type apiWeightRequest struct {
	Weight        string `json:"weight"`
	RecordDate    string `json:"record_date"`
	VolunteerName string `json:"volunteer_name"`
	Notes         string `json:"notes"`
}

// AddWeight records a weight measurement from a JSON payload
func (h *APIHandler) AddWeight(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	var req apiWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid JSON payload", "", nil)
		return
	}

	record, err := h.weightService.AddRecord(petID, req.Weight, req.RecordDate, req.VolunteerName, req.Notes)
	if err != nil {
		h.writeDomainError(w, err, "Error adding weight record")
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// DeleteWeight removes one weight record, scoped to the owning pet
func (h *APIHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	petID, ok := h.petID(w, r)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(r.PathValue("recordID"), 10, 64)
	if err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid record ID", "", nil)
		return
	}

	if err := h.weightService.DeleteRecord(petID, recordID); err != nil {
		h.writeDomainError(w, err, "Error deleting weight record")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *APIHandler) petID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	petID, err := parsePetID(r)
	if err != nil {
		respondWithJSONError(w, http.StatusBadRequest, ErrInvalidPetID, "", nil)
		return 0, false
	}
	return petID, true
}

// writeDomainError maps service errors onto the JSON error contract:
// validation failures are 400 with the field message, not-found is 404,
// anything else is a logged 500 with a generic message.
func (h *APIHandler) writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	var vErr utils.ValidationError
	switch {
	case errors.Is(err, service.ErrPetNotFound):
		respondWithJSONError(w, http.StatusNotFound, ErrPetNotFound, "", nil)
	case errors.Is(err, service.ErrRecordNotFound):
		respondWithJSONError(w, http.StatusNotFound, "Record not found", "", nil)
	case errors.Is(err, service.ErrNoItemsCompleted):
		respondWithJSONError(w, http.StatusBadRequest, service.ErrNoItemsCompleted.Error(), "", nil)
	case errors.As(err, &vErr):
		respondWithJSONError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	default:
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
