package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/angelmondragon/pawhaven-backend/pkg/types"
)

// User represents the canonical identity record.
// PasswordHash is nil for accounts created through an identity provider.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash *string        `gorm:"column:password_hash"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:adopter"`
	Age          *int           `gorm:"column:age"`
	Phone        *string        `gorm:"column:phone"`
	Address      types.Address  `gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	if u.Role == "" {
		u.Role = enums.DefaultUserRole
	}
	return nil
}
