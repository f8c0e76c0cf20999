package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

// AdoptionRequest links an adopter to a pet and its owner.
// OwnerID is taken from the request payload and is not cross-checked against the pet.
type AdoptionRequest struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	PetID     uuid.UUID            `gorm:"column:pet_id;type:uuid;not null;index"`
	OwnerID   uuid.UUID            `gorm:"column:owner_id;type:uuid;not null;index"`
	AdopterID uuid.UUID            `gorm:"column:adopter_id;type:uuid;not null;index"`
	Message   *string              `gorm:"column:message"`
	Status    enums.AdoptionStatus `gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AdoptionRequest) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	if a.Status == "" {
		a.Status = enums.AdoptionStatusPending
	}
	return nil
}
