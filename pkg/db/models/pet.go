package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

// Pet represents an adoption or marketplace listing.
// Price and IsForSale are independent: a priced pet is not necessarily for sale.
type Pet struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID        uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index"`
	Name           string          `gorm:"column:name;not null"`
	Type           enums.PetType   `gorm:"column:type;type:text;not null"`
	Breed          *string         `gorm:"column:breed"`
	Age            *int            `gorm:"column:age"`
	Size           enums.PetSize   `gorm:"column:size;type:text;not null;default:medium"`
	Location       *string         `gorm:"column:location"`
	Vaccinated     bool            `gorm:"column:vaccinated;not null;default:false"`
	SpayedNeutered bool            `gorm:"column:spayed_neutered;not null;default:false"`
	HealthNotes    *string         `gorm:"column:health_notes"`
	Color          *string         `gorm:"column:color"`
	Nature         *string         `gorm:"column:nature"`
	Likes          []string        `gorm:"column:likes;type:text;serializer:json"`
	Dislikes       []string        `gorm:"column:dislikes;type:text;serializer:json"`
	Images         []string        `gorm:"column:images;type:text;serializer:json"`
	Status         enums.PetStatus `gorm:"column:status;type:text;not null;default:available;index"`
	Price          *float64        `gorm:"column:price"`
	IsForSale      bool            `gorm:"column:is_for_sale;not null;default:false"`
	Description    *string         `gorm:"column:description"`
	ContactInfo    *string         `gorm:"column:contact_info"`
	Featured       bool            `gorm:"column:featured;not null;default:false"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Pet) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	if p.Size == "" {
		p.Size = enums.DefaultPetSize
	}
	if p.Status == "" {
		p.Status = enums.PetStatusAvailable
	}
	p.Likes = nonNilStrings(p.Likes)
	p.Dislikes = nonNilStrings(p.Dislikes)
	p.Images = nonNilStrings(p.Images)
	return nil
}
