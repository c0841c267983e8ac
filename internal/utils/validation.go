package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the storage format for record dates
const DateFormat = "2006-01-02"

// TimeFormat is the storage format for record times
const TimeFormat = "15:04"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUpdateText checks that an update note is non-empty after trimming
func ValidateUpdateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ValidationError{Field: "update", Message: "update cannot be empty"}
	}
	return text, nil
}

// ValidatePetName checks that a pet name is present
func ValidatePetName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Field: "name", Message: "name is required"}
	}
	return name, nil
}

// ValidateSpecies checks that a species is present
func ValidateSpecies(species string) (string, error) {
	species = strings.TrimSpace(species)
	if species == "" {
		return "", ValidationError{Field: "species", Message: "species is required"}
	}
	return species, nil
}

// ParseWeight parses a weight value and requires it to be strictly positive
func ParseWeight(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ValidationError{Field: "weight", Message: "weight is required"}
	}
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ValidationError{Field: "weight", Message: "weight must be a number"}
	}
	if weight <= 0 {
		return 0, ValidationError{Field: "weight", Message: "weight must be greater than zero"}
	}
	return weight, nil
}

// ParseRecordDate parses a YYYY-MM-DD date string
func ParseRecordDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ValidationError{Field: "record_date", Message: "date is required"}
	}
	t, err := time.Parse(DateFormat, raw)
	if err != nil {
		return "", ValidationError{Field: "record_date", Message: "date must be YYYY-MM-DD"}
	}
	return t.Format(DateFormat), nil
}
