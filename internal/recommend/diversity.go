package recommend

import "sort"

// DiversityCaps bounds how many selected items may share a producer or a
// country, and how many items are returned overall.
type DiversityCaps struct {
	Producer int
	Country  int
	Limit    int
}

// SelectDiverse picks up to Limit items from scored candidates, skipping
// candidates whose producer or country is already at its cap. Skipped
// candidates backfill remaining slots when the diverse pass cannot fill the
// list: diversity is best-effort, never a reason to return fewer items than
// the pool allows. The result is ordered by descending score with ties broken
// by rating_count desc, then sku asc.
func SelectDiverse(candidates []ScoredProduct, caps DiversityCaps) []ScoredProduct {
	if caps.Limit <= 0 || len(candidates) == 0 {
		return nil
	}

	pool := make([]ScoredProduct, len(candidates))
	copy(pool, candidates)
	sortScored(pool)

	producerCount := map[string]int{}
	countryCount := map[string]int{}

	selected := make([]ScoredProduct, 0, caps.Limit)
	skipped := make([]ScoredProduct, 0, len(pool))

	for _, candidate := range pool {
		if len(selected) == caps.Limit {
			break
		}
		producer := deref(candidate.Product.Producer)
		country := deref(candidate.Product.Country)

		// Unknown producer/country never counts toward a cap; absence
		// means unknown, not shared origin.
		if producer != "" && caps.Producer > 0 && producerCount[producer] >= caps.Producer {
			skipped = append(skipped, candidate)
			continue
		}
		if country != "" && caps.Country > 0 && countryCount[country] >= caps.Country {
			skipped = append(skipped, candidate)
			continue
		}

		selected = append(selected, candidate)
		if producer != "" {
			producerCount[producer]++
		}
		if country != "" {
			countryCount[country]++
		}
	}

	for _, candidate := range skipped {
		if len(selected) == caps.Limit {
			break
		}
		selected = append(selected, candidate)
	}

	sortScored(selected)
	return selected
}

func sortScored(items []ScoredProduct) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Product.RatingCount != items[j].Product.RatingCount {
			return items[i].Product.RatingCount > items[j].Product.RatingCount
		}
		return items[i].Product.SKU < items[j].Product.SKU
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
