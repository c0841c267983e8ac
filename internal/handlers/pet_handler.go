package handlers

import (
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pawpass/internal/models"
	"pawpass/internal/service"
	"pawpass/internal/utils"
)

// PetHandler handles pet listing, profile, registration and removal
type PetHandler struct {
	petService    *service.PetService
	templates     *template.Template
	uploadsPath   string
	uploadMaxSize int64
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *service.PetService, templates *template.Template, uploadsPath string, uploadMaxSize int64) *PetHandler {
	return &PetHandler{
		petService:    petService,
		templates:     templates,
		uploadsPath:   uploadsPath,
		uploadMaxSize: uploadMaxSize,
	}
}

// Index lists all pets, optionally filtered by a name search
func (h *PetHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	pets, err := h.petService.Search(query)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error searching pets", err)
		return
	}

	data := IndexViewData{
		Title: "Pets - PawPass",
		Pets:  pets,
		Query: query,
		Flash: popFlash(w, r),
	}

	if err := h.templates.ExecuteTemplate(w, "index.tmpl", data); err != nil {
		log.Printf("Error rendering index template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Profile displays a pet's consolidated profile: attributes, updates and
// completed checklists, most recent first.
func (h *PetHandler) Profile(w http.ResponseWriter, r *http.Request) {
	petID, err := parsePetID(r)
	if err != nil {
		http.Error(w, ErrInvalidPetID, http.StatusBadRequest)
		return
	}

	profile, err := h.petService.GetProfile(petID)
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			setFlash(w, "Pet not found", "error")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading pet profile", err)
		return
	}

	data := PetProfileViewData{
		Title:   profile.Pet.Name + " - PawPass",
		Profile: profile,
		Flash:   popFlash(w, r),
	}

	if err := h.templates.ExecuteTemplate(w, "pet.tmpl", data); err != nil {
		log.Printf("Error rendering pet template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowNewPetForm displays the pet registration form
func (h *PetHandler) ShowNewPetForm(w http.ResponseWriter, r *http.Request) {
	h.renderNewPetForm(w, "", nil)
}

// CreatePet registers a new pet from the submitted form, storing an
// optional photo upload under the uploads directory.
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		h.renderNewPetForm(w, "Form data too large or malformed", formValues(r))
		return
	}

	imageURL, err := h.saveUploadedImage(r)
	if err != nil {
		h.renderNewPetForm(w, err.Error(), formValues(r))
		return
	}

	in := service.CreatePetInput{
		Name:                r.FormValue("name"),
		Species:             r.FormValue("species"),
		Breed:               r.FormValue("breed"),
		Gender:              r.FormValue("gender"),
		Description:         r.FormValue("description"),
		FeedingInstructions: r.FormValue("feeding_instructions"),
		MedicalNotes:        r.FormValue("medical_notes"),
		ImageURL:            imageURL,
		IsEmergency:         r.FormValue("is_emergency") != "",
	}
	if ageStr := strings.TrimSpace(r.FormValue("age")); ageStr != "" {
		age, err := strconv.Atoi(ageStr)
		if err != nil || age < 0 {
			h.renderNewPetForm(w, "Age must be a non-negative number", formValues(r))
			return
		}
		in.Age = &age
	}

	pet, err := h.petService.CreatePet(r.Context(), in)
	if err != nil {
		var vErr utils.ValidationError
		if errors.As(err, &vErr) {
			h.renderNewPetForm(w, vErr.Error(), formValues(r))
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating pet", err)
		return
	}

	setFlash(w, pet.Name+" has been added!", "success")
	http.Redirect(w, r, "/pet/"+strconv.FormatInt(pet.ID, 10), http.StatusSeeOther)
}

// DeletePet removes a pet and all of its records
func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	petID, err := parsePetID(r)
	if err != nil {
		http.Error(w, ErrInvalidPetID, http.StatusBadRequest)
		return
	}

	if err := h.petService.DeletePet(petID); err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			setFlash(w, "Pet not found", "error")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting pet", err)
		return
	}

	setFlash(w, "Pet removed", "success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// saveUploadedImage stores an optional photo upload and returns its public
// URL path. A missing file field is not an error.
func (h *PetHandler) saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", utils.ValidationError{Field: "image", Message: "could not read uploaded image"}
	}
	defer file.Close()

	name, err := utils.GenerateImageName(header.Filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(h.uploadsPath, 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(h.uploadsPath, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/static/uploads/" + name, nil
}

func (h *PetHandler) renderNewPetForm(w http.ResponseWriter, errMsg string, form map[string]string) {
	if form == nil {
		form = map[string]string{}
	}
	data := NewPetViewData{
		Title: "Add a Pet - PawPass",
		Error: errMsg,
		Form:  form,
	}
	if err := h.templates.ExecuteTemplate(w, "new_pet.tmpl", data); err != nil {
		log.Printf("Error rendering new pet template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// formValues captures the submitted fields so a rejected form can be
// redisplayed with the volunteer's input intact
func formValues(r *http.Request) map[string]string {
	values := map[string]string{}
	for _, key := range []string{"name", "species", "breed", "age", "gender", "description", "feeding_instructions", "medical_notes", "is_emergency"} {
		values[key] = r.FormValue(key)
	}
	return values
}

// parsePetID extracts the pet ID path segment
func parsePetID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// loadPetOrRedirect resolves the pet named by the request path. Unknown
// pets flash a message and redirect home; other failures return a 500.
func loadPetOrRedirect(w http.ResponseWriter, r *http.Request, petService *service.PetService) (*models.Pet, int64, bool) {
	petID, err := parsePetID(r)
	if err != nil {
		http.Error(w, ErrInvalidPetID, http.StatusBadRequest)
		return nil, 0, false
	}

	pet, err := petService.GetPet(petID)
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			setFlash(w, "Pet not found", "error")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return nil, 0, false
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading pet", err)
		return nil, 0, false
	}

	return pet, petID, true
}
