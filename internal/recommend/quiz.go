package recommend

import (
	"fmt"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
)

const (
	minPeopleCount = 1
	maxPeopleCount = 50
)

// QuizAnswers is one user's complete quiz submission. It drives both the
// recommendation pipeline and the per-session quiz record.
type QuizAnswers struct {
	Occasion     enums.Occasion     `json:"occasion"`
	Style        enums.Style        `json:"style"`
	DrinkTypes   []enums.DrinkType  `json:"drink_types"`
	Tastes       []enums.Taste      `json:"tastes"`
	PeopleCount  int                `json:"people_count"`
	BudgetBucket enums.BudgetBucket `json:"budget_bucket"`
}

// Validate rejects malformed answers before any side effect runs.
func (q QuizAnswers) Validate() error {
	if !q.Occasion.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid occasion %q", q.Occasion))
	}
	if !q.Style.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid style %q", q.Style))
	}
	if len(q.DrinkTypes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one drink type is required")
	}
	for _, dt := range q.DrinkTypes {
		if !dt.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid drink type %q", dt))
		}
	}
	for _, taste := range q.Tastes {
		if !taste.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid taste %q", taste))
		}
	}
	if q.PeopleCount < minPeopleCount || q.PeopleCount > maxPeopleCount {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("people_count must be between %d and %d", minPeopleCount, maxPeopleCount))
	}
	if !q.BudgetBucket.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid budget bucket %q", q.BudgetBucket))
	}
	return nil
}
