package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
)

// Attribute weights for the "you might also like" ranking.
const (
	simCategoryFamily = 3
	simColorKeyword   = 2
	simCountry        = 2
	simProducer       = 1
	simPriceNear      = 1

	simPriceNearWindow = 500
)

// TrendingScore ranks catalog popularity: rating weighted by the log of the
// review count, so a 4.5 with hundreds of reviews outranks a lone 5.0.
func TrendingScore(p models.Product) float64 {
	rating := 3.0
	if p.RatingValue != nil {
		rating = *p.RatingValue
	}
	count := p.RatingCount
	if count < 1 {
		count = 1
	}
	return rating * math.Log10(float64(count)+10)
}

// RankTrending orders products by descending trending score, ties by sku.
func RankTrending(products []models.Product, limit int) []models.Product {
	ranked := make([]models.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := TrendingScore(ranked[i]), TrendingScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].SKU < ranked[j].SKU
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SimilarityScore counts shared attributes between a source product and a
// candidate: category family, category keyword (color proxy), country,
// producer, and price proximity.
func SimilarityScore(source, candidate models.Product) int {
	score := 0

	if familyOf(source.CategoryPath) != "" && familyOf(source.CategoryPath) == familyOf(candidate.CategoryPath) {
		score += simCategoryFamily
	}
	if sharesCategoryLeaf(source.CategoryPath, candidate.CategoryPath) {
		score += simColorKeyword
	}
	if deref(source.Country) != "" && deref(source.Country) == deref(candidate.Country) {
		score += simCountry
	}
	if deref(source.Producer) != "" && deref(source.Producer) == deref(candidate.Producer) {
		score += simProducer
	}

	srcPrice, _ := source.PriceCurrent.Float64()
	candPrice, _ := candidate.PriceCurrent.Float64()
	if abs(srcPrice-candPrice) < simPriceNearWindow {
		score += simPriceNear
	}

	return score
}

// RankSimilar orders candidates by descending similarity, ties by rating desc
// then price proximity, excluding the source itself.
func RankSimilar(source models.Product, candidates []models.Product, limit int) []models.Product {
	filtered := make([]models.Product, 0, len(candidates))
	for _, c := range candidates {
		if c.SKU == source.SKU {
			continue
		}
		filtered = append(filtered, c)
	}

	srcPrice, _ := source.PriceCurrent.Float64()
	sort.SliceStable(filtered, func(i, j int) bool {
		si, sj := SimilarityScore(source, filtered[i]), SimilarityScore(source, filtered[j])
		if si != sj {
			return si > sj
		}
		ri, rj := ratingOrZero(filtered[i]), ratingOrZero(filtered[j])
		if ri != rj {
			return ri > rj
		}
		pi, _ := filtered[i].PriceCurrent.Float64()
		pj, _ := filtered[j].PriceCurrent.Float64()
		return abs(srcPrice-pi) < abs(srcPrice-pj)
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// familyOf extracts the first segment of a category path, the coarse family
// ("Вино", "Пиво", ...).
func familyOf(categoryPath string) string {
	path := strings.ToLower(strings.TrimSpace(categoryPath))
	if path == "" {
		return ""
	}
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return strings.TrimSpace(path[:idx])
	}
	return path
}

// sharesCategoryLeaf approximates a color/style match: the leaf segments of
// both paths overlap on at least one word.
func sharesCategoryLeaf(a, b string) bool {
	leafA := leafOf(a)
	leafB := leafOf(b)
	if leafA == "" || leafB == "" {
		return false
	}
	for _, word := range strings.Fields(leafA) {
		if strings.Contains(leafB, word) {
			return true
		}
	}
	return false
}

func leafOf(categoryPath string) string {
	path := strings.ToLower(strings.TrimSpace(categoryPath))
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return strings.TrimSpace(path[idx+1:])
	}
	return path
}

func ratingOrZero(p models.Product) float64 {
	if p.RatingValue == nil {
		return 0
	}
	return *p.RatingValue
}
