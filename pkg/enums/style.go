package enums

import "fmt"

// Style is the requested drink intensity.
type Style string

const (
	StyleLight    Style = "light"
	StyleModerate Style = "moderate"
	StyleIntense  Style = "intense"
)

var validStyles = []Style{
	StyleLight,
	StyleModerate,
	StyleIntense,
}

// String implements fmt.Stringer.
func (s Style) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Style.
func (s Style) IsValid() bool {
	for _, candidate := range validStyles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStyle converts raw input into a Style.
func ParseStyle(value string) (Style, error) {
	for _, candidate := range validStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid style %q", value)
}
