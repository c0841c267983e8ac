package handlers

import (
	"pawpass/internal/models"
)

type IndexViewData struct {
	Title string
	Pets  []models.Pet
	Query string
	Flash *Flash
}

type PetProfileViewData struct {
	Title   string
	Profile *models.PetProfile
	Flash   *Flash
}

type NewPetViewData struct {
	Title string
	Error string
	Form  map[string]string
}

type UpdateFormViewData struct {
	Title string
	Pet   *models.Pet
	Error string
	Text  string
}

type ChecklistFormViewData struct {
	Title  string
	Pet    *models.Pet
	Groups []models.ItemGroup
	Error  string
}

type WeightViewData struct {
	Title string
	Pet   *models.Pet
	Trend *models.WeightTrend
	Error string
	Flash *Flash
}
