package enums

// PetSort selects the ordering of pet search results.
type PetSort string

const (
	PetSortNewest    PetSort = "newest"
	PetSortOldest    PetSort = "oldest"
	PetSortPriceLow  PetSort = "price-low"
	PetSortPriceHigh PetSort = "price-high"
	PetSortName      PetSort = "name"
)

var validPetSorts = []PetSort{
	PetSortNewest,
	PetSortOldest,
	PetSortPriceLow,
	PetSortPriceHigh,
	PetSortName,
}

// String implements fmt.Stringer.
func (s PetSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PetSort.
func (s PetSort) IsValid() bool {
	for _, candidate := range validPetSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePetSortOrDefault never fails: unknown or empty values fall back to newest.
func ParsePetSortOrDefault(value string) PetSort {
	for _, candidate := range validPetSorts {
		if string(candidate) == value {
			return candidate
		}
	}
	return PetSortNewest
}
