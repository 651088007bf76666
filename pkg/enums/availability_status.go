package enums

import "fmt"

// AvailabilityStatus mirrors the catalog's stock flag for a product.
type AvailabilityStatus string

const (
	AvailabilityInStock    AvailabilityStatus = "in_stock"
	AvailabilityOutOfStock AvailabilityStatus = "out_of_stock"
	AvailabilityPreorder   AvailabilityStatus = "preorder"
)

var validAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityInStock,
	AvailabilityOutOfStock,
	AvailabilityPreorder,
}

// String implements fmt.Stringer.
func (a AvailabilityStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AvailabilityStatus.
func (a AvailabilityStatus) IsValid() bool {
	for _, candidate := range validAvailabilityStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAvailabilityStatus converts raw input into an AvailabilityStatus.
func ParseAvailabilityStatus(value string) (AvailabilityStatus, error) {
	for _, candidate := range validAvailabilityStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability status %q", value)
}
