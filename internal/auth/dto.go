package auth

import (
	"github.com/angelmondragon/pawhaven-backend/internal/users"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/angelmondragon/pawhaven-backend/pkg/types"
)

// SignupRequest captures the profile and credentials for a new account.
// Admin accounts are provisioned out of band and cannot be self-assigned.
type SignupRequest struct {
	Name     string         `json:"name" validate:"required,max=120"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6,max=128"`
	Role     enums.UserRole `json:"role,omitempty" validate:"omitempty,oneof=adopter owner"`
	Age      *int           `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Phone    *string        `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address  *types.Address `json:"address,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
