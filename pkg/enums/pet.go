package enums

import "fmt"

// PetType represents the species bucket of a listing.
type PetType string

const (
	PetTypeDog    PetType = "dog"
	PetTypeCat    PetType = "cat"
	PetTypeBird   PetType = "bird"
	PetTypeRabbit PetType = "rabbit"
	PetTypeOther  PetType = "other"
)

var validPetTypes = []PetType{
	PetTypeDog,
	PetTypeCat,
	PetTypeBird,
	PetTypeRabbit,
	PetTypeOther,
}

// String implements fmt.Stringer.
func (t PetType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PetType.
func (t PetType) IsValid() bool {
	for _, candidate := range validPetTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePetType converts raw input into a PetType.
func ParsePetType(value string) (PetType, error) {
	for _, candidate := range validPetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pet type %q", value)
}

// PetSize represents the size class of a listing.
type PetSize string

const (
	PetSizeSmall  PetSize = "small"
	PetSizeMedium PetSize = "medium"
	PetSizeLarge  PetSize = "large"
)

// DefaultPetSize is applied when a listing omits its size.
const DefaultPetSize = PetSizeMedium

var validPetSizes = []PetSize{
	PetSizeSmall,
	PetSizeMedium,
	PetSizeLarge,
}

// String implements fmt.Stringer.
func (s PetSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PetSize.
func (s PetSize) IsValid() bool {
	for _, candidate := range validPetSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePetSize converts raw input into a PetSize.
func ParsePetSize(value string) (PetSize, error) {
	for _, candidate := range validPetSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pet size %q", value)
}

// PetStatus tracks where a listing sits in the adoption flow.
//
//	available -> pending -> adopted | sold
//
// Owners may also overwrite the status directly; no transition table is enforced on edits.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusAdopted   PetStatus = "adopted"
	PetStatusSold      PetStatus = "sold"
)

var validPetStatuses = []PetStatus{
	PetStatusAvailable,
	PetStatusPending,
	PetStatusAdopted,
	PetStatusSold,
}

// String implements fmt.Stringer.
func (s PetStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PetStatus.
func (s PetStatus) IsValid() bool {
	for _, candidate := range validPetStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the listing has left the marketplace.
func (s PetStatus) IsTerminal() bool {
	return s == PetStatusAdopted || s == PetStatusSold
}

// ParsePetStatus converts raw input into a PetStatus.
func ParsePetStatus(value string) (PetStatus, error) {
	for _, candidate := range validPetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pet status %q", value)
}
