package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"pawpass/internal/ai"
	"pawpass/internal/config"
	"pawpass/internal/database"
	"pawpass/internal/handlers"
	"pawpass/internal/repository"
	"pawpass/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	petRepo := repository.NewPetRepository(db)
	updateRepo := repository.NewUpdateRepository(db)
	itemRepo := repository.NewItemRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	weightRepo := repository.NewWeightRepository(db)

	// Email notifications are disabled unless sender and recipient are set
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.NotifyEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if emailService.IsEnabled() {
		log.Println("Email notifications enabled")
	} else {
		log.Println("Email notifications disabled (SES_FROM_EMAIL or NOTIFY_EMAIL not set)")
	}

	// AI text analysis is disabled unless an API key is configured
	var analyzer ai.TextAnalyzer = ai.NewDisabled()
	if cfg.AIAPIKey != "" {
		gemini, err := ai.NewGeminiAnalyzer(cfg.AIAPIKey, cfg.AIModel)
		if err != nil {
			log.Fatalf("Failed to initialize AI analyzer: %v", err)
		}
		analyzer = gemini
		log.Printf("AI analysis enabled (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI analysis disabled (AI_API_KEY not set)")
	}

	loc := cfg.ShelterLocation()

	// Initialize services
	petService := service.NewPetService(db, petRepo, updateRepo, checklistRepo, emailService, loc)
	updateService := service.NewUpdateService(db, petRepo, updateRepo, analyzer, loc)
	checklistService := service.NewChecklistService(db, petRepo, itemRepo, checklistRepo, emailService, loc)
	weightService := service.NewWeightService(db, petRepo, weightRepo, analyzer, loc)
	seedService := service.NewSeedService(db, itemRepo)
	legacyImport := service.NewLegacyImportService(db, petRepo, updateRepo, itemRepo, checklistRepo)

	// Seed default checklist item templates
	if err := seedService.SeedDefaultItems(); err != nil {
		log.Fatalf("Failed to seed default checklist items: %v", err)
	}

	// One-time legacy flat-file import, no-op once any pet exists
	if err := legacyImport.ImportIfEmpty(cfg.LegacyDataFile); err != nil {
		log.Printf("Warning: legacy data import failed: %v", err)
	}

	// Initialize handlers
	petHandler := handlers.NewPetHandler(petService, templates, cfg.UploadsPath, cfg.UploadMaxSize)
	updateHandler := handlers.NewUpdateHandler(petService, updateService, templates)
	checklistHandler := handlers.NewChecklistHandler(petService, checklistService, templates)
	weightHandler := handlers.NewWeightHandler(petService, weightService, templates)
	apiHandler := handlers.NewAPIHandler(petService, updateService, checklistService, weightService)

	// Set up routes
	mux := http.NewServeMux()

	// Static files
	fs := http.FileServer(http.Dir(cfg.StaticPath))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))

	// Pet routes
	mux.HandleFunc("GET /{$}", petHandler.Index)
	mux.HandleFunc("GET /pets", petHandler.Index)
	mux.HandleFunc("GET /pet/new", petHandler.ShowNewPetForm)
	mux.HandleFunc("POST /pet/new", petHandler.CreatePet)
	mux.HandleFunc("GET /pet/{id}", petHandler.Profile)
	mux.HandleFunc("POST /pet/{id}/delete", petHandler.DeletePet)

	// Update routes
	mux.HandleFunc("GET /pet/{id}/update", updateHandler.ShowUpdateForm)
	mux.HandleFunc("POST /pet/{id}/update", updateHandler.SubmitUpdate)
	mux.HandleFunc("GET /pet/{id}/ai-summary", updateHandler.CareSummary)

	// Checklist routes
	mux.HandleFunc("GET /pet/{id}/checklist", checklistHandler.ShowChecklistForm)
	mux.HandleFunc("POST /pet/{id}/checklist", checklistHandler.SubmitChecklist)

	// Weight routes
	mux.HandleFunc("GET /pet/{id}/weight", weightHandler.ShowWeightPage)
	mux.HandleFunc("POST /pet/{id}/weight", weightHandler.AddWeight)
	mux.HandleFunc("POST /pet/{id}/weight/{recordID}/delete", weightHandler.DeleteWeight)

	// JSON API routes
	mux.HandleFunc("GET /api/pets", apiHandler.ListPets)
	mux.HandleFunc("GET /api/pets/{id}", apiHandler.GetPet)
	mux.HandleFunc("POST /api/pets/{id}/update", apiHandler.AddUpdate)
	mux.HandleFunc("POST /api/pets/{id}/checklist", apiHandler.SubmitChecklist)
	mux.HandleFunc("GET /api/pets/{id}/weight", apiHandler.ListWeights)
	mux.HandleFunc("POST /api/pets/{id}/weight", apiHandler.AddWeight)
	mux.HandleFunc("DELETE /api/pets/{id}/weight/{recordID}", apiHandler.DeleteWeight)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	return template.ParseFiles(files...)
}
