package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is a generic owned record listed and deleted by id.
type Entity struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Price       *float64  `gorm:"column:price"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (e *Entity) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}
