package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pawpass/internal/ai"
	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/repository"
	"pawpass/internal/service"
)

// testServer wires the full handler stack over a throwaway sqlite database
type testServer struct {
	db         *database.DB
	pets       *service.PetService
	updates    *service.UpdateService
	checklists *service.ChecklistService
	weights    *service.WeightService
	itemRepo   *repository.ItemRepository
	updateRepo *repository.UpdateRepository
	chkRepo    *repository.ChecklistRepository
	weightRepo *repository.WeightRepository
	mux        *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	templates, err := template.ParseGlob("../templates/*.tmpl")
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	petRepo := repository.NewPetRepository(db)
	updateRepo := repository.NewUpdateRepository(db)
	itemRepo := repository.NewItemRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	weightRepo := repository.NewWeightRepository(db)

	email, err := service.NewEmailService("", "", "", "")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}
	analyzer := ai.NewDisabled()

	s := &testServer{
		db:         db,
		itemRepo:   itemRepo,
		updateRepo: updateRepo,
		chkRepo:    checklistRepo,
		weightRepo: weightRepo,
	}
	s.pets = service.NewPetService(db, petRepo, updateRepo, checklistRepo, email, time.UTC)
	s.updates = service.NewUpdateService(db, petRepo, updateRepo, analyzer, time.UTC)
	s.checklists = service.NewChecklistService(db, petRepo, itemRepo, checklistRepo, email, time.UTC)
	s.weights = service.NewWeightService(db, petRepo, weightRepo, analyzer, time.UTC)

	petHandler := NewPetHandler(s.pets, templates, filepath.Join(t.TempDir(), "uploads"), 5*1024*1024)
	updateHandler := NewUpdateHandler(s.pets, s.updates, templates)
	checklistHandler := NewChecklistHandler(s.pets, s.checklists, templates)
	weightHandler := NewWeightHandler(s.pets, s.weights, templates)
	apiHandler := NewAPIHandler(s.pets, s.updates, s.checklists, s.weights)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", petHandler.Index)
	mux.HandleFunc("GET /pets", petHandler.Index)
	mux.HandleFunc("GET /pet/{id}", petHandler.Profile)
	mux.HandleFunc("POST /pet/{id}/delete", petHandler.DeletePet)
	mux.HandleFunc("GET /pet/{id}/update", updateHandler.ShowUpdateForm)
	mux.HandleFunc("POST /pet/{id}/update", updateHandler.SubmitUpdate)
	mux.HandleFunc("GET /pet/{id}/ai-summary", updateHandler.CareSummary)
	mux.HandleFunc("GET /pet/{id}/checklist", checklistHandler.ShowChecklistForm)
	mux.HandleFunc("POST /pet/{id}/checklist", checklistHandler.SubmitChecklist)
	mux.HandleFunc("GET /pet/{id}/weight", weightHandler.ShowWeightPage)
	mux.HandleFunc("POST /pet/{id}/weight", weightHandler.AddWeight)
	mux.HandleFunc("POST /pet/{id}/weight/{recordID}/delete", weightHandler.DeleteWeight)
	mux.HandleFunc("GET /api/pets", apiHandler.ListPets)
	mux.HandleFunc("GET /api/pets/{id}", apiHandler.GetPet)
	mux.HandleFunc("POST /api/pets/{id}/update", apiHandler.AddUpdate)
	mux.HandleFunc("POST /api/pets/{id}/checklist", apiHandler.SubmitChecklist)
	mux.HandleFunc("GET /api/pets/{id}/weight", apiHandler.ListWeights)
	mux.HandleFunc("POST /api/pets/{id}/weight", apiHandler.AddWeight)
	mux.HandleFunc("DELETE /api/pets/{id}/weight/{recordID}", apiHandler.DeleteWeight)
	s.mux = mux

	return s
}

func (s *testServer) createPet(t *testing.T, name, species string) *models.Pet {
	t.Helper()

	pet, err := s.pets.CreatePet(context.Background(), service.CreatePetInput{Name: name, Species: species})
	if err != nil {
		t.Fatalf("Failed to create pet %s: %v", name, err)
	}
	return pet
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.mux.ServeHTTP(recorder, req)
	return recorder
}
