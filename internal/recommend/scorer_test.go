package recommend

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

func mediumBandContext() ScoreContext {
	rules := DefaultRules()
	band, _ := rules.PriceBand(enums.BudgetMedium)
	abv, _ := rules.ABVRange(enums.StyleModerate, enums.DrinkTypeWineRed)
	return ScoreContext{
		Band:          band,
		ABV:           abv,
		Keywords:      rules.Keywords(enums.DrinkTypeWineRed),
		LooseKeywords: rules.LooseKeywords(enums.DrinkTypeWineRed),
	}
}

func wine(sku string, priceStr string, abv float64, rating float64, available bool) models.Product {
	price, _ := decimal.NewFromString(priceStr)
	availability := enums.AvailabilityOutOfStock
	if available {
		availability = enums.AvailabilityInStock
	}
	return models.Product{
		SKU:          sku,
		Name:         "Bottle " + sku,
		CategoryPath: "Вино/Красное сухое",
		PriceCurrent: price,
		ABVPercent:   &abv,
		RatingValue:  &rating,
		RatingCount:  100,
		Availability: availability,
	}
}

func TestScore_WithinBounds(t *testing.T) {
	sc := mediumBandContext()
	products := []models.Product{
		wine("a", "1999.99", 13, 4.5, true),
		wine("b", "1000", 0, 0, false),
		wine("c", "2999.99", 20, 5, true),
		{SKU: "bare", CategoryPath: "Пиво", PriceCurrent: decimal.NewFromInt(2000)},
	}
	for _, p := range products {
		got := Score(p, sc)
		if got < 0 || got > 1 {
			t.Fatalf("score for %s out of bounds: %f", p.SKU, got)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	sc := mediumBandContext()
	p := wine("a", "1999.99", 13, 4.5, true)
	first := Score(p, sc)
	for i := 0; i < 10; i++ {
		if got := Score(p, sc); got != first {
			t.Fatalf("score not deterministic: %v vs %v", got, first)
		}
	}
}

func TestPriceScore_TriangularOverBand(t *testing.T) {
	sc := mediumBandContext()

	atMid := wine("mid", "2000", 12.5, 0, false)
	atEdge := wine("edge", "1000", 12.5, 0, false)
	nearEdge := wine("near", "1100", 12.5, 0, false)

	if got := priceScore(atMid, sc.Band); got != 1 {
		t.Fatalf("expected peak 1.0 at band midpoint, got %f", got)
	}
	if got := priceScore(atEdge, sc.Band); got != 0 {
		t.Fatalf("expected 0 at band edge, got %f", got)
	}
	lo := priceScore(nearEdge, sc.Band)
	if lo <= 0 || lo >= 1 {
		t.Fatalf("expected partial score between edges, got %f", lo)
	}
}

func TestABVScore_PeaksAtCenterAndZeroOutside(t *testing.T) {
	rng := ABVRange{Min: 11, Max: 14}

	center := wine("c", "2000", 12.5, 0, false)
	if got := abvScore(center, rng); got != 1 {
		t.Fatalf("expected 1.0 at range center, got %f", got)
	}

	outside := wine("o", "2000", 19, 0, false)
	if got := abvScore(outside, rng); got != 0 {
		t.Fatalf("expected 0 outside relaxed range, got %f", got)
	}

	unknown := models.Product{SKU: "u", PriceCurrent: decimal.NewFromInt(2000)}
	if got := abvScore(unknown, rng); got != 0 {
		t.Fatalf("expected 0 for unknown abv, got %f", got)
	}
}

func TestCategoryScore_ExactParentAndMiss(t *testing.T) {
	keywords := []string{"красное", "red"}
	loose := []string{"вино", "wine"}

	exact := models.Product{CategoryPath: "Вино/Красное сухое"}
	if got := categoryScore(exact, keywords, loose); got != 1 {
		t.Fatalf("expected 1.0 for exact keyword match, got %f", got)
	}

	parent := models.Product{CategoryPath: "Вино/Оранжевое"}
	if got := categoryScore(parent, keywords, loose); got != partialCategoryCredit {
		t.Fatalf("expected partial credit for parent category, got %f", got)
	}

	miss := models.Product{CategoryPath: "Пиво/Светлое"}
	if got := categoryScore(miss, keywords, loose); got != 0 {
		t.Fatalf("expected 0 for unrelated category, got %f", got)
	}

	mixed := models.Product{CategoryPath: "Пиво/Светлое"}
	if got := categoryScore(mixed, nil, nil); got != partialCategoryCredit {
		t.Fatalf("expected partial credit when no keywords configured, got %f", got)
	}
}

func TestRatingScore_NormalizedAndUnknownZero(t *testing.T) {
	rated := wine("r", "2000", 13, 4.5, true)
	if got := ratingScore(rated); got != 0.9 {
		t.Fatalf("expected 4.5/5 = 0.9, got %f", got)
	}

	unrated := models.Product{SKU: "u", PriceCurrent: decimal.NewFromInt(2000)}
	if got := ratingScore(unrated); got != 0 {
		t.Fatalf("expected 0 for missing rating, got %f", got)
	}
}

func TestScore_PrefersInBandMatchOverEverythingElse(t *testing.T) {
	sc := mediumBandContext()

	strong := wine("strong", "1999.99", 13, 4.5, true)
	weak := wine("weak", "1050", 19, 0, false)
	weak.CategoryPath = "Пиво/Светлое"

	if Score(strong, sc) <= Score(weak, sc) {
		t.Fatalf("expected well-matched product to outscore poor match")
	}
}
