package recommend

import (
	"github.com/cellarmate/cellarmate-backend/internal/catalog"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
)

// RelaxLevel records how far the candidate filter had to fall back to produce
// a non-empty pool. Budget is never relaxed.
type RelaxLevel string

const (
	RelaxNone     RelaxLevel = "none"
	RelaxABV      RelaxLevel = "abv"
	RelaxCategory RelaxLevel = "category"
)

// relaxLadder is the fallback order when a level yields zero candidates.
// Each step is cumulative: relaxing the category also leaves ABV relaxed.
var relaxLadder = []RelaxLevel{RelaxNone, RelaxABV, RelaxCategory}

// drinkTypePlan binds one selected drink type to the catalog query that
// fetches its candidates and the rule slice its candidates are scored with.
type drinkTypePlan struct {
	query   catalog.Query
	scoring ScoreContext
}

// buildPlans produces one catalog query per selected drink type at the given
// relaxation level. Families differ in their ABV tables, so each type gets
// its own query and its own scoring context.
func buildPlans(rules *Rules, quiz QuizAnswers, level RelaxLevel, fetchLimit int) ([]drinkTypePlan, error) {
	band, ok := rules.PriceBand(quiz.BudgetBucket)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no price band for budget bucket")
	}

	plans := make([]drinkTypePlan, 0, len(quiz.DrinkTypes))
	for _, dt := range quiz.DrinkTypes {
		abvRange, ok := rules.ABVRange(quiz.Style, dt)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "no abv range for style")
		}

		q := catalog.Query{
			PriceMin: band.Min,
			PriceMax: band.Max,
			Limit:    fetchLimit,
		}
		if level == RelaxNone {
			lo, hi := abvRange.Min, abvRange.Max
			q.ABVMin, q.ABVMax = &lo, &hi
		}
		if level != RelaxCategory {
			q.Keywords = rules.Keywords(dt)
		}

		plans = append(plans, drinkTypePlan{
			query: q,
			scoring: ScoreContext{
				Band:          band,
				ABV:           abvRange,
				Keywords:      rules.Keywords(dt),
				LooseKeywords: rules.LooseKeywords(dt),
			},
		})
	}
	return plans, nil
}
