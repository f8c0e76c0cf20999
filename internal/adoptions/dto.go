package adoptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

// AdoptionRequestDTO is the public wire shape of an adoption request.
type AdoptionRequestDTO struct {
	ID        uuid.UUID            `json:"id"`
	Pet       uuid.UUID            `json:"pet"`
	Owner     uuid.UUID            `json:"owner"`
	Adopter   uuid.UUID            `json:"adopter"`
	Message   *string              `json:"message,omitempty"`
	Status    enums.AdoptionStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// SubmitRequest is the body accepted when an adopter expresses interest in a pet.
type SubmitRequest struct {
	Pet     string  `json:"pet" validate:"required,uuid"`
	Owner   string  `json:"owner" validate:"required,uuid"`
	Adopter string  `json:"adopter" validate:"required,uuid"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest carries the new request status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListFilter narrows the request listing; nil fields are ignored.
type ListFilter struct {
	PetID     *uuid.UUID
	OwnerID   *uuid.UUID
	AdopterID *uuid.UUID
	Status    *enums.AdoptionStatus
}

func FromModel(m *models.AdoptionRequest) *AdoptionRequestDTO {
	if m == nil {
		return nil
	}
	return &AdoptionRequestDTO{
		ID:        m.ID,
		Pet:       m.PetID,
		Owner:     m.OwnerID,
		Adopter:   m.AdopterID,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
