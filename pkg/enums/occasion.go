package enums

import "fmt"

// Occasion is the reason the user is shopping.
type Occasion string

const (
	OccasionParty    Occasion = "party"
	OccasionDinner   Occasion = "dinner"
	OccasionDate     Occasion = "date"
	OccasionGift     Occasion = "gift"
	OccasionPicnic   Occasion = "picnic"
	OccasionNoReason Occasion = "no_reason"
)

var validOccasions = []Occasion{
	OccasionParty,
	OccasionDinner,
	OccasionDate,
	OccasionGift,
	OccasionPicnic,
	OccasionNoReason,
}

// String implements fmt.Stringer.
func (o Occasion) String() string {
	return string(o)
}

// IsValid reports whether the value is a known Occasion.
func (o Occasion) IsValid() bool {
	for _, candidate := range validOccasions {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOccasion converts raw input into an Occasion.
func ParseOccasion(value string) (Occasion, error) {
	for _, candidate := range validOccasions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid occasion %q", value)
}
