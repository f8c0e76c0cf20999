package types

import "strings"

// Address is the optional postal address attached to a user profile.
// Every component is optional and stored in address_* columns.
type Address struct {
	Line1 *string `gorm:"column:line1" json:"line1,omitempty"`
	City  *string `gorm:"column:city" json:"city,omitempty"`
	State *string `gorm:"column:state" json:"state,omitempty"`
	Zip   *string `gorm:"column:zip" json:"zip,omitempty"`
}

// IsZero reports whether no address component carries a value.
func (a Address) IsZero() bool {
	for _, part := range []*string{a.Line1, a.City, a.State, a.Zip} {
		if part != nil && strings.TrimSpace(*part) != "" {
			return false
		}
	}
	return true
}

// Normalized trims every component and drops the blank ones.
func (a Address) Normalized() Address {
	return Address{
		Line1: trimmedOrNil(a.Line1),
		City:  trimmedOrNil(a.City),
		State: trimmedOrNil(a.State),
		Zip:   trimmedOrNil(a.Zip),
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
