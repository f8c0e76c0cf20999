package enums

import "fmt"

// AdoptionStatus is the lifecycle of an adoption request.
// pending moves once to accepted or rejected.
type AdoptionStatus string

const (
	AdoptionStatusPending  AdoptionStatus = "pending"
	AdoptionStatusAccepted AdoptionStatus = "accepted"
	AdoptionStatusRejected AdoptionStatus = "rejected"
)

var validAdoptionStatuses = []AdoptionStatus{
	AdoptionStatusPending,
	AdoptionStatusAccepted,
	AdoptionStatusRejected,
}

// String implements fmt.Stringer.
func (s AdoptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AdoptionStatus.
func (s AdoptionStatus) IsValid() bool {
	for _, candidate := range validAdoptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the request has been decided.
func (s AdoptionStatus) IsTerminal() bool {
	return s == AdoptionStatusAccepted || s == AdoptionStatusRejected
}

// ParseAdoptionStatus converts raw input into an AdoptionStatus.
func ParseAdoptionStatus(value string) (AdoptionStatus, error) {
	for _, candidate := range validAdoptionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adoption status %q", value)
}
