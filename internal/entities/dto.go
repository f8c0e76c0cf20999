package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
)

// EntityDTO is the public wire shape of a generic entity.
type EntityDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListFilter narrows the entity listing. Name is a case-insensitive substring.
type ListFilter struct {
	CreatedBy *uuid.UUID
	Name      string
}

// DeleteResult is returned for every delete, whether or not the entity existed.
type DeleteResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

func FromModel(e *models.Entity) *EntityDTO {
	if e == nil {
		return nil
	}
	return &EntityDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromModels(list []models.Entity) []EntityDTO {
	out := make([]EntityDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
