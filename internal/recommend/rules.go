package recommend

import (
	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// PriceBand is a half-open [Min, Max) price range for one budget bucket.
type PriceBand struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether price falls inside the band.
func (b PriceBand) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(b.Min) && price.LessThan(b.Max)
}

// ABVRange is the inclusive strength window for one style within one family.
type ABVRange struct {
	Min float64
	Max float64
}

// Rules holds the immutable rule tables driving filtering and scoring: price
// bands per budget bucket, ABV windows per style and drink family, and the
// bilingual category keyword lists per drink type. Loaded once and passed
// explicitly so scoring stays deterministic.
type Rules struct {
	priceBands    map[enums.BudgetBucket]PriceBand
	abvRanges     map[enums.DrinkFamily]map[enums.Style]ABVRange
	keywords      map[enums.DrinkType][]string
	looseKeywords map[enums.DrinkType][]string
}

// premium has no natural ceiling; the band ends where the catalog does.
const premiumCeiling = 100000

// DefaultRules returns the built-in rule tables.
func DefaultRules() *Rules {
	return &Rules{
		priceBands: map[enums.BudgetBucket]PriceBand{
			enums.BudgetLow:     {Min: decimal.NewFromInt(0), Max: decimal.NewFromInt(1000)},
			enums.BudgetMedium:  {Min: decimal.NewFromInt(1000), Max: decimal.NewFromInt(3000)},
			enums.BudgetHigh:    {Min: decimal.NewFromInt(3000), Max: decimal.NewFromInt(7000)},
			enums.BudgetPremium: {Min: decimal.NewFromInt(7000), Max: decimal.NewFromInt(premiumCeiling)},
		},
		abvRanges: map[enums.DrinkFamily]map[enums.Style]ABVRange{
			enums.DrinkFamilySpirits: {
				enums.StyleLight:    {Min: 30, Max: 40},
				enums.StyleModerate: {Min: 35, Max: 45},
				enums.StyleIntense:  {Min: 40, Max: 70},
			},
			enums.DrinkFamilyWine: {
				enums.StyleLight:    {Min: 0, Max: 12},
				enums.StyleModerate: {Min: 11, Max: 14},
				enums.StyleIntense:  {Min: 13, Max: 20},
			},
		},
		keywords: map[enums.DrinkType][]string{
			enums.DrinkTypeWineRed:   {"красное", "red"},
			enums.DrinkTypeWineWhite: {"белое", "white"},
			enums.DrinkTypeWineRose:  {"розовое", "rose", "розе"},
			enums.DrinkTypeSparkling: {"игристое", "шампанское", "sparkling", "champagne"},
			enums.DrinkTypeSpirits:   {"крепкие", "виски", "коньяк", "водка", "джин", "ром", "whisky", "cognac", "vodka"},
			enums.DrinkTypeBeer:      {"пиво", "beer"},
			enums.DrinkTypeMixed:     {},
		},
		looseKeywords: map[enums.DrinkType][]string{
			enums.DrinkTypeWineRed:   {"вино", "wine"},
			enums.DrinkTypeWineWhite: {"вино", "wine"},
			enums.DrinkTypeWineRose:  {"вино", "wine"},
			enums.DrinkTypeSparkling: {"вино", "wine"},
		},
	}
}

// PriceBand returns the band for a bucket.
func (r *Rules) PriceBand(bucket enums.BudgetBucket) (PriceBand, bool) {
	band, ok := r.priceBands[bucket]
	return band, ok
}

// ABVRange returns the strength window for a style given the drink type's family.
func (r *Rules) ABVRange(style enums.Style, drinkType enums.DrinkType) (ABVRange, bool) {
	family, ok := r.abvRanges[drinkType.Family()]
	if !ok {
		return ABVRange{}, false
	}
	rng, ok := family[style]
	return rng, ok
}

// Keywords returns the category keywords for a drink type. Empty means the
// type matches any category (mixed).
func (r *Rules) Keywords(drinkType enums.DrinkType) []string {
	return append([]string(nil), r.keywords[drinkType]...)
}

// LooseKeywords returns the parent-category keywords that earn partial
// category credit for a drink type.
func (r *Rules) LooseKeywords(drinkType enums.DrinkType) []string {
	return append([]string(nil), r.looseKeywords[drinkType]...)
}
