package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// Query narrows the catalog to candidates for one drink type.
type Query struct {
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	// nil bounds disable the ABV constraint. Products with unknown ABV are
	// never excluded by it; the scorer handles them.
	ABVMin *float64
	ABVMax *float64
	// Keywords are matched case-insensitively as substrings of
	// category_path; any match qualifies. Empty means no category filter.
	Keywords    []string
	InStockOnly bool
	Limit       int
}

// RelatedQuery fetches candidates sharing attributes with a source product.
type RelatedQuery struct {
	ExcludeSKU   string
	Country      *string
	Producer     *string
	CategoryLike string
	Limit        int
}

// Repository encapsulates read-only catalog access.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindProducts returns candidates inside the half-open price band, ordered by
// a popularity prior so the over-fetched pool skews toward well-reviewed items.
func (r *Repository) FindProducts(ctx context.Context, q Query) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("price_current >= ? AND price_current < ?", q.PriceMin, q.PriceMax)

	if len(q.Keywords) > 0 {
		conditions := make([]string, 0, len(q.Keywords))
		args := make([]any, 0, len(q.Keywords))
		for _, kw := range q.Keywords {
			conditions = append(conditions, "LOWER(category_path) LIKE ?")
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
		query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}

	if q.ABVMin != nil && q.ABVMax != nil {
		query = query.Where("(abv_percent BETWEEN ? AND ? OR abv_percent IS NULL)", *q.ABVMin, *q.ABVMax)
	}

	if q.InStockOnly {
		query = query.Where("availability_status = ?", enums.AvailabilityInStock)
	}

	query = query.
		Order("(COALESCE(rating_value, 3.5) * COALESCE(NULLIF(rating_count, 0), 1)) DESC").
		Order("price_current ASC")

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetBySKU loads one product. Callers map gorm.ErrRecordNotFound themselves.
func (r *Repository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&product).
		Error
	return product, err
}

// FindRated returns in-stock products with at least one review, optionally
// narrowed by category keywords. Ordering is a coarse popularity prior; the
// caller applies the exact trending ranking.
func (r *Repository) FindRated(ctx context.Context, keywords []string, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("availability_status = ?", enums.AvailabilityInStock).
		Where("rating_count > 0").
		Where("rating_value IS NOT NULL")

	if len(keywords) > 0 {
		conditions := make([]string, 0, len(keywords))
		args := make([]any, 0, len(keywords))
		for _, kw := range keywords {
			conditions = append(conditions, "LOWER(category_path) LIKE ?")
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
		query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}

	query = query.Order("(rating_value * rating_count) DESC").Order("sku ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindRelated returns in-stock products sharing the source's country, producer
// or category. The caller ranks them by attribute similarity.
func (r *Repository) FindRelated(ctx context.Context, q RelatedQuery) ([]models.Product, error) {
	conditions := []string{}
	args := []any{}

	if q.Country != nil && *q.Country != "" {
		conditions = append(conditions, "country = ?")
		args = append(args, *q.Country)
	}
	if q.Producer != nil && *q.Producer != "" {
		conditions = append(conditions, "producer = ?")
		args = append(args, *q.Producer)
	}
	if q.CategoryLike != "" {
		conditions = append(conditions, "LOWER(category_path) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.CategoryLike)+"%")
	}
	if len(conditions) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("sku <> ?", q.ExcludeSKU).
		Where("availability_status = ?", enums.AvailabilityInStock).
		Where("("+strings.Join(conditions, " OR ")+")", args...).
		Order("COALESCE(rating_value, 0) DESC").
		Order("sku ASC")

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
