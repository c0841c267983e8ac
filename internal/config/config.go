package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	TemplatesPath  string
	StaticPath     string
	UploadsPath    string
	UploadMaxSize  int64

	// ShelterTimezone is the local timezone used to stamp updates,
	// checklists and weight records.
	ShelterTimezone string

	// LegacyDataFile points at the flat-file pets.json snapshot from the
	// pre-database version of the app. Imported once, on an empty database.
	LegacyDataFile string

	// Email notifications (Amazon SES). Disabled when FromEmail is empty.
	AWSRegion   string
	FromEmail   string
	FromName    string
	NotifyEmail string

	// AI text analysis (Gemini). Disabled when AIAPIKey is empty.
	AIAPIKey string
	AIModel  string

	// BackupKey enables encryption of exported snapshots when set.
	// Hex-encoded 32-byte key.
	BackupKey string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./pawpass.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticPath:      getEnv("STATIC_PATH", "./static"),
		UploadsPath:     getEnv("UPLOADS_PATH", "./static/uploads"),
		UploadMaxSize:   getEnvInt64("UPLOAD_MAX_SIZE", 5*1024*1024), // 5MB
		ShelterTimezone: getEnv("SHELTER_TIMEZONE", "America/Los_Angeles"),
		LegacyDataFile:  getEnv("LEGACY_DATA_FILE", "./static/data/pets.json"),
		AWSRegion:       getEnv("AWS_REGION", "us-west-2"),
		FromEmail:       getEnv("SES_FROM_EMAIL", ""),
		FromName:        getEnv("SES_FROM_NAME", "PawPass"),
		NotifyEmail:     getEnv("NOTIFY_EMAIL", ""),
		AIAPIKey:        getEnv("AI_API_KEY", ""),
		AIModel:         getEnv("AI_MODEL", "gemini-2.0-flash"),
		BackupKey:       getEnv("BACKUP_KEY", ""),
	}
}

// ShelterLocation resolves the configured timezone, falling back to UTC if
// the name is unknown.
func (c *Config) ShelterLocation() *time.Location {
	loc, err := time.LoadLocation(c.ShelterTimezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", c.ShelterTimezone, err)
		return time.UTC
	}
	return loc
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
