package pets

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

// PetDTO is the public wire shape of a pet listing.
type PetDTO struct {
	ID             uuid.UUID       `json:"id"`
	Owner          uuid.UUID       `json:"owner"`
	Name           string          `json:"name"`
	Type           enums.PetType   `json:"type"`
	Breed          *string         `json:"breed,omitempty"`
	Age            *int            `json:"age,omitempty"`
	Size           enums.PetSize   `json:"size"`
	Location       *string         `json:"location,omitempty"`
	Vaccinated     bool            `json:"vaccinated"`
	SpayedNeutered bool            `json:"spayedNeutered"`
	HealthNotes    *string         `json:"healthNotes,omitempty"`
	Color          *string         `json:"color,omitempty"`
	Nature         *string         `json:"nature,omitempty"`
	Likes          []string        `json:"likes"`
	Dislikes       []string        `json:"dislikes"`
	Images         []string        `json:"images"`
	Status         enums.PetStatus `json:"status"`
	Price          *float64        `json:"price,omitempty"`
	IsForSale      bool            `json:"isForSale"`
	Description    *string         `json:"description,omitempty"`
	ContactInfo    *string         `json:"contactInfo,omitempty"`
	Featured       bool            `json:"featured"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreatePetRequest is the body accepted when listing a pet. Owner falls back
// to the authenticated caller when omitted.
type CreatePetRequest struct {
	Owner          *string         `json:"owner,omitempty" validate:"omitempty,uuid"`
	Name           string          `json:"name" validate:"required,max=120"`
	Type           enums.PetType   `json:"type" validate:"required,enum"`
	Breed          *string         `json:"breed,omitempty" validate:"omitempty,max=120"`
	Age            *int            `json:"age,omitempty" validate:"omitempty,min=0"`
	Size           enums.PetSize   `json:"size,omitempty" validate:"omitempty,enum"`
	Location       *string         `json:"location,omitempty"`
	Vaccinated     bool            `json:"vaccinated"`
	SpayedNeutered bool            `json:"spayedNeutered"`
	HealthNotes    *string         `json:"healthNotes,omitempty"`
	Color          *string         `json:"color,omitempty"`
	Nature         *string         `json:"nature,omitempty"`
	Likes          []string        `json:"likes,omitempty"`
	Dislikes       []string        `json:"dislikes,omitempty"`
	Images         []string        `json:"images,omitempty"`
	Status         enums.PetStatus `json:"status,omitempty" validate:"omitempty,enum"`
	Price          *float64        `json:"price,omitempty" validate:"omitempty,min=0"`
	IsForSale      bool            `json:"isForSale"`
	Description    *string         `json:"description,omitempty"`
	ContactInfo    *string         `json:"contactInfo,omitempty"`
	Featured       bool            `json:"featured"`
}

// UpdatePetRequest carries a partial edit; nil fields are left untouched.
// Status may be set to any value, no transition table applies to owner edits.
type UpdatePetRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Type           *enums.PetType   `json:"type,omitempty" validate:"omitempty,enum"`
	Breed          *string          `json:"breed,omitempty" validate:"omitempty,max=120"`
	Age            *int             `json:"age,omitempty" validate:"omitempty,min=0"`
	Size           *enums.PetSize   `json:"size,omitempty" validate:"omitempty,enum"`
	Location       *string          `json:"location,omitempty"`
	Vaccinated     *bool            `json:"vaccinated,omitempty"`
	SpayedNeutered *bool            `json:"spayedNeutered,omitempty"`
	HealthNotes    *string          `json:"healthNotes,omitempty"`
	Color          *string          `json:"color,omitempty"`
	Nature         *string          `json:"nature,omitempty"`
	Likes          *[]string        `json:"likes,omitempty"`
	Dislikes       *[]string        `json:"dislikes,omitempty"`
	Images         *[]string        `json:"images,omitempty"`
	Status         *enums.PetStatus `json:"status,omitempty" validate:"omitempty,enum"`
	Price          *float64         `json:"price,omitempty" validate:"omitempty,min=0"`
	IsForSale      *bool            `json:"isForSale,omitempty"`
	Description    *string          `json:"description,omitempty"`
	ContactInfo    *string          `json:"contactInfo,omitempty"`
	Featured       *bool            `json:"featured,omitempty"`
}

// DeleteResult is returned for every delete, whether or not the pet existed.
type DeleteResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

func FromModel(p *models.Pet) *PetDTO {
	if p == nil {
		return nil
	}
	return &PetDTO{
		ID:             p.ID,
		Owner:          p.OwnerID,
		Name:           p.Name,
		Type:           p.Type,
		Breed:          p.Breed,
		Age:            p.Age,
		Size:           p.Size,
		Location:       p.Location,
		Vaccinated:     p.Vaccinated,
		SpayedNeutered: p.SpayedNeutered,
		HealthNotes:    p.HealthNotes,
		Color:          p.Color,
		Nature:         p.Nature,
		Likes:          copyStrings(p.Likes),
		Dislikes:       copyStrings(p.Dislikes),
		Images:         copyStrings(p.Images),
		Status:         p.Status,
		Price:          p.Price,
		IsForSale:      p.IsForSale,
		Description:    p.Description,
		ContactInfo:    p.ContactInfo,
		Featured:       p.Featured,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromModels(list []models.Pet) []PetDTO {
	out := make([]PetDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (r CreatePetRequest) toModel(owner uuid.UUID) *models.Pet {
	return &models.Pet{
		OwnerID:        owner,
		Name:           r.Name,
		Type:           r.Type,
		Breed:          r.Breed,
		Age:            r.Age,
		Size:           r.Size,
		Location:       r.Location,
		Vaccinated:     r.Vaccinated,
		SpayedNeutered: r.SpayedNeutered,
		HealthNotes:    r.HealthNotes,
		Color:          r.Color,
		Nature:         r.Nature,
		Likes:          copyStrings(r.Likes),
		Dislikes:       copyStrings(r.Dislikes),
		Images:         copyStrings(r.Images),
		Status:         r.Status,
		Price:          r.Price,
		IsForSale:      r.IsForSale,
		Description:    r.Description,
		ContactInfo:    r.ContactInfo,
		Featured:       r.Featured,
	}
}

func (r UpdatePetRequest) applyTo(p *models.Pet) {
	setIf(&p.Name, r.Name)
	setIf(&p.Type, r.Type)
	setIf(&p.Size, r.Size)
	setIf(&p.Vaccinated, r.Vaccinated)
	setIf(&p.SpayedNeutered, r.SpayedNeutered)
	setIf(&p.Status, r.Status)
	setIf(&p.IsForSale, r.IsForSale)
	setIf(&p.Featured, r.Featured)
	if r.Likes != nil {
		p.Likes = copyStrings(*r.Likes)
	}
	if r.Dislikes != nil {
		p.Dislikes = copyStrings(*r.Dislikes)
	}
	if r.Images != nil {
		p.Images = copyStrings(*r.Images)
	}
	if r.Breed != nil {
		p.Breed = r.Breed
	}
	if r.Age != nil {
		p.Age = r.Age
	}
	if r.Location != nil {
		p.Location = r.Location
	}
	if r.HealthNotes != nil {
		p.HealthNotes = r.HealthNotes
	}
	if r.Color != nil {
		p.Color = r.Color
	}
	if r.Nature != nil {
		p.Nature = r.Nature
	}
	if r.Price != nil {
		p.Price = r.Price
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.ContactInfo != nil {
		p.ContactInfo = r.ContactInfo
	}
}

func setIf[T any](dest *T, value *T) {
	if value != nil {
		*dest = *value
	}
}

func copyStrings(values []string) []string {
	return append([]string{}, values...)
}
