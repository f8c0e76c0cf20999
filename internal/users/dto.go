package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/angelmondragon/pawhaven-backend/pkg/types"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      enums.UserRole `json:"role"`
	Age       *int           `json:"age,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	Address   *types.Address `json:"address,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// UserSummary is the reduced shape served by the user directory.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// A nil PasswordHash marks an identity-provider-only account.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash *string
	Role         enums.UserRole
	Age          *int
	Phone        *string
	Address      types.Address
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Age:       u.Age,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if !u.Address.IsZero() {
		address := u.Address
		dto.Address = &address
	}
	return dto
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.DefaultUserRole
	}
	return &models.User{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Age:          c.Age,
		Phone:        c.Phone,
		Address:      c.Address.Normalized(),
	}
}
