package handlers

const (
	FlashCookieName = "flash"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidPetID        = "Invalid pet ID"
	ErrPetNotFound         = "Pet not found"
	ErrInternalServerError = "Internal server error"
)
