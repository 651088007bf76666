package enums

import "fmt"

// BudgetBucket is the named price tier a user picks instead of a raw
// price range. The concrete price bands live in internal/recommend rules.
type BudgetBucket string

const (
	BudgetLow     BudgetBucket = "low"
	BudgetMedium  BudgetBucket = "medium"
	BudgetHigh    BudgetBucket = "high"
	BudgetPremium BudgetBucket = "premium"
)

var validBudgetBuckets = []BudgetBucket{
	BudgetLow,
	BudgetMedium,
	BudgetHigh,
	BudgetPremium,
}

// String implements fmt.Stringer.
func (b BudgetBucket) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BudgetBucket.
func (b BudgetBucket) IsValid() bool {
	for _, candidate := range validBudgetBuckets {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBudgetBucket converts raw input into a BudgetBucket.
func ParseBudgetBucket(value string) (BudgetBucket, error) {
	for _, candidate := range validBudgetBuckets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid budget bucket %q", value)
}
