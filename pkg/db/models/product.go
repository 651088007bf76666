package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// Product is the canonical catalog listing. The recommendation engine reads
// this table; it never mutates it.
type Product struct {
	SKU          string                   `gorm:"column:sku;primaryKey"`
	Name         string                   `gorm:"column:name;not null"`
	CategoryPath string                   `gorm:"column:category_path;not null;index:products_category_path_idx"`
	Country      *string                  `gorm:"column:country"`
	Producer     *string                  `gorm:"column:producer"`
	PriceCurrent decimal.Decimal          `gorm:"column:price_current;type:numeric(12,2);not null"`
	ABVPercent   *float64                 `gorm:"column:abv_percent;type:numeric(5,2)"`
	RatingValue  *float64                 `gorm:"column:rating_value;type:numeric(3,2)"`
	RatingCount  int                      `gorm:"column:rating_count;not null;default:0"`
	VolumeL      *float64                 `gorm:"column:volume_l;type:numeric(6,3)"`
	Availability enums.AvailabilityStatus `gorm:"column:availability_status;not null;default:'out_of_stock'"`
	ProductURL   string                   `gorm:"column:product_url"`
	ImageURL     string                   `gorm:"column:image_url"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// IsAvailable reports whether the product can be offered right now.
func (p Product) IsAvailable() bool {
	return p.Availability == enums.AvailabilityInStock
}
