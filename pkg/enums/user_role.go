package enums

import "fmt"

// UserRole tags what a user account may do in the marketplace.
type UserRole string

const (
	UserRoleAdopter UserRole = "adopter"
	UserRoleOwner   UserRole = "owner"
	UserRoleAdmin   UserRole = "admin"
)

// DefaultUserRole is applied when signup omits a role.
const DefaultUserRole = UserRoleAdopter

var validUserRoles = []UserRole{
	UserRoleAdopter,
	UserRoleOwner,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
