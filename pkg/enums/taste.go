package enums

import "fmt"

// Taste is a quiz multi-select flavor preference.
type Taste string

const (
	TasteFruity Taste = "fruity"
	TasteSweet  Taste = "sweet"
	TasteDry    Taste = "dry"
	TasteFresh  Taste = "fresh"
	TasteBitter Taste = "bitter"
	TasteSpicy  Taste = "spicy"
)

var validTastes = []Taste{
	TasteFruity,
	TasteSweet,
	TasteDry,
	TasteFresh,
	TasteBitter,
	TasteSpicy,
}

// String implements fmt.Stringer.
func (t Taste) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Taste.
func (t Taste) IsValid() bool {
	for _, candidate := range validTastes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTaste converts raw input into a Taste.
func ParseTaste(value string) (Taste, error) {
	for _, candidate := range validTastes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid taste %q", value)
}
