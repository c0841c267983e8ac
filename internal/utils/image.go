package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed image extensions for pet photos
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// GenerateImageName returns a unique storage filename for an uploaded pet
// photo, preserving the original extension.
func GenerateImageName(originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !imageExtensions[ext] {
		return "", ValidationError{Field: "image", Message: "unsupported image type"}
	}
	return uuid.New().String() + ext, nil
}
