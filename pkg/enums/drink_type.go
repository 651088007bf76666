package enums

import "fmt"

// DrinkType is a quiz multi-select option for the kind of drink wanted.
type DrinkType string

const (
	DrinkTypeWineRed   DrinkType = "wine_red"
	DrinkTypeWineWhite DrinkType = "wine_white"
	DrinkTypeWineRose  DrinkType = "wine_rose"
	DrinkTypeSparkling DrinkType = "sparkling"
	DrinkTypeSpirits   DrinkType = "spirits"
	DrinkTypeBeer      DrinkType = "beer"
	DrinkTypeMixed     DrinkType = "mixed"
)

var validDrinkTypes = []DrinkType{
	DrinkTypeWineRed,
	DrinkTypeWineWhite,
	DrinkTypeWineRose,
	DrinkTypeSparkling,
	DrinkTypeSpirits,
	DrinkTypeBeer,
	DrinkTypeMixed,
}

// DrinkFamily groups drink types whose typical ABV sits in the same order
// of magnitude. Strength filtering uses a family-specific range table.
type DrinkFamily string

const (
	DrinkFamilyWine    DrinkFamily = "wine"
	DrinkFamilySpirits DrinkFamily = "spirits"
)

// String implements fmt.Stringer.
func (d DrinkType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DrinkType.
func (d DrinkType) IsValid() bool {
	for _, candidate := range validDrinkTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// Family returns the ABV family for the drink type. Everything that is not
// a spirit (wines, sparkling, beer, mixed) shares the low-ABV wine table.
func (d DrinkType) Family() DrinkFamily {
	if d == DrinkTypeSpirits {
		return DrinkFamilySpirits
	}
	return DrinkFamilyWine
}

// ParseDrinkType converts raw input into a DrinkType.
func ParseDrinkType(value string) (DrinkType, error) {
	for _, candidate := range validDrinkTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid drink type %q", value)
}
