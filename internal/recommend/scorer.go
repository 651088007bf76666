package recommend

import (
	"strings"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
)

// Sub-score weights. They sum to 1 so the composite stays in [0,1].
const (
	weightPrice        = 0.30
	weightABV          = 0.20
	weightCategory     = 0.30
	weightRating       = 0.10
	weightAvailability = 0.10

	maxRatingScale = 5.0

	partialCategoryCredit = 0.5
)

// ScoreContext carries the per-drink-type rule slice a candidate is scored
// against. Building one per selected drink type keeps the scorer itself a
// pure function.
type ScoreContext struct {
	Band          PriceBand
	ABV           ABVRange
	Keywords      []string
	LooseKeywords []string
}

// ScoredProduct pairs a catalog product with its derived relevance score.
// Transient: computed per request, never persisted.
type ScoredProduct struct {
	Product models.Product `json:"product"`
	Score   float64        `json:"relevance_score"`
}

// Score computes the composite relevance of a candidate. Deterministic: the
// same product and context always yield the same value, and the result is
// always within [0,1].
func Score(p models.Product, sc ScoreContext) float64 {
	score := weightPrice * priceScore(p, sc.Band)
	score += weightABV * abvScore(p, sc.ABV)
	score += weightCategory * categoryScore(p, sc.Keywords, sc.LooseKeywords)
	score += weightRating * ratingScore(p)
	score += weightAvailability * availabilityScore(p)
	return clamp01(score)
}

// priceScore peaks at the band midpoint and decays linearly to 0 at either
// edge (symmetric triangle over the band).
func priceScore(p models.Product, band PriceBand) float64 {
	lo, _ := band.Min.Float64()
	hi, _ := band.Max.Float64()
	half := (hi - lo) / 2
	if half <= 0 {
		return 0
	}
	price, _ := p.PriceCurrent.Float64()
	mid := (lo + hi) / 2
	return clamp01(1 - abs(price-mid)/half)
}

// abvScore peaks at the window center. Products outside the window score 0;
// they only reach the scorer when the ABV filter was relaxed. Unknown ABV
// scores 0, it is never treated as zero percent.
func abvScore(p models.Product, rng ABVRange) float64 {
	if p.ABVPercent == nil {
		return 0
	}
	abv := *p.ABVPercent
	if abv < rng.Min || abv > rng.Max {
		return 0
	}
	half := (rng.Max - rng.Min) / 2
	if half <= 0 {
		return 1
	}
	center := (rng.Min + rng.Max) / 2
	return clamp01(1 - abs(abv-center)/half)
}

// categoryScore grants full credit for a direct keyword hit, partial credit
// for a parent-category hit, and the same partial credit when no keywords are
// configured at all (the mixed drink type matches everything loosely).
func categoryScore(p models.Product, keywords, loose []string) float64 {
	if len(keywords) == 0 {
		return partialCategoryCredit
	}
	category := strings.ToLower(p.CategoryPath)
	for _, kw := range keywords {
		if strings.Contains(category, strings.ToLower(kw)) {
			return 1
		}
	}
	for _, kw := range loose {
		if strings.Contains(category, strings.ToLower(kw)) {
			return partialCategoryCredit
		}
	}
	return 0
}

// ratingScore normalizes by the catalog's 5-point scale. Missing ratings
// score 0 but never exclude the product.
func ratingScore(p models.Product) float64 {
	if p.RatingValue == nil {
		return 0
	}
	return clamp01(*p.RatingValue / maxRatingScale)
}

func availabilityScore(p models.Product) float64 {
	if p.IsAvailable() {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
