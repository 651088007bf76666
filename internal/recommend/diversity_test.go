package recommend

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
)

func scored(sku, producer, country string, score float64, ratingCount int) ScoredProduct {
	var prodPtr, countryPtr *string
	if producer != "" {
		prodPtr = &producer
	}
	if country != "" {
		countryPtr = &country
	}
	return ScoredProduct{
		Product: models.Product{
			SKU:          sku,
			Producer:     prodPtr,
			Country:      countryPtr,
			RatingCount:  ratingCount,
			PriceCurrent: decimal.NewFromInt(1500),
		},
		Score: score,
	}
}

func TestSelectDiverse_EnforcesProducerCap(t *testing.T) {
	candidates := []ScoredProduct{
		scored("a", "bodega", "Spain", 0.9, 10),
		scored("b", "bodega", "France", 0.8, 10),
		scored("c", "bodega", "Italy", 0.7, 10),
		scored("d", "other", "Chile", 0.6, 10),
	}

	got := SelectDiverse(candidates, DiversityCaps{Producer: 2, Country: 3, Limit: 3})
	if len(got) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(got))
	}

	producerHits := 0
	for _, item := range got {
		if *item.Product.Producer == "bodega" {
			producerHits++
		}
	}
	if producerHits != 2 {
		t.Fatalf("expected producer cap of 2 to hold, got %d", producerHits)
	}
	if got[len(got)-1].Product.SKU != "d" {
		t.Fatalf("expected the capped slot to go to the other producer, got %s", got[len(got)-1].Product.SKU)
	}
}

func TestSelectDiverse_EnforcesCountryCap(t *testing.T) {
	candidates := []ScoredProduct{
		scored("a", "p1", "Spain", 0.9, 10),
		scored("b", "p2", "Spain", 0.8, 10),
		scored("c", "p3", "Spain", 0.7, 10),
		scored("d", "p4", "Spain", 0.6, 10),
		scored("e", "p5", "France", 0.5, 10),
	}

	got := SelectDiverse(candidates, DiversityCaps{Producer: 2, Country: 3, Limit: 4})
	if len(got) != 4 {
		t.Fatalf("expected 4 selections, got %d", len(got))
	}

	spain := 0
	for _, item := range got {
		if *item.Product.Country == "Spain" {
			spain++
		}
	}
	if spain != 3 {
		t.Fatalf("expected country cap of 3 to hold in diverse pass, got %d", spain)
	}
}

func TestSelectDiverse_BackfillsWhenPoolLacksDiversity(t *testing.T) {
	candidates := []ScoredProduct{
		scored("a", "bodega", "Spain", 0.9, 10),
		scored("b", "bodega", "Spain", 0.8, 10),
		scored("c", "bodega", "Spain", 0.7, 10),
		scored("d", "bodega", "Spain", 0.6, 10),
	}

	got := SelectDiverse(candidates, DiversityCaps{Producer: 2, Country: 3, Limit: 4})
	if len(got) != 4 {
		t.Fatalf("expected backfill to fill all 4 slots, got %d", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Fatalf("expected descending score order after backfill")
		}
	}
}

func TestSelectDiverse_DeterministicTieBreaks(t *testing.T) {
	candidates := []ScoredProduct{
		scored("b", "p1", "Spain", 0.8, 50),
		scored("a", "p2", "France", 0.8, 50),
		scored("c", "p3", "Italy", 0.8, 90),
	}

	got := SelectDiverse(candidates, DiversityCaps{Producer: 2, Country: 3, Limit: 3})
	want := []string{"c", "a", "b"}
	for i, sku := range want {
		if got[i].Product.SKU != sku {
			t.Fatalf("expected order %v, got %s at %d", want, got[i].Product.SKU, i)
		}
	}
}

func TestSelectDiverse_UnknownOriginNeverCapped(t *testing.T) {
	candidates := make([]ScoredProduct, 0, 5)
	for i := 0; i < 5; i++ {
		candidates = append(candidates, scored(fmt.Sprintf("sku-%d", i), "", "", 0.9-float64(i)*0.1, 10))
	}

	got := SelectDiverse(candidates, DiversityCaps{Producer: 1, Country: 1, Limit: 5})
	if len(got) != 5 {
		t.Fatalf("expected unknown producers/countries to bypass caps, got %d", len(got))
	}
}

func TestSelectDiverse_EmptyAndZeroLimit(t *testing.T) {
	if got := SelectDiverse(nil, DiversityCaps{Limit: 5}); got != nil {
		t.Fatalf("expected nil for empty pool")
	}
	if got := SelectDiverse([]ScoredProduct{scored("a", "p", "c", 0.5, 1)}, DiversityCaps{}); got != nil {
		t.Fatalf("expected nil for zero limit")
	}
}
