package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in a session's cart. Upserting the same
// (session_id, sku) pair overwrites quantity and the captured price.
type CartLine struct {
	SessionID  uuid.UUID       `gorm:"column:session_id;type:uuid;primaryKey"`
	SKU        string          `gorm:"column:sku;primaryKey"`
	Qty        int             `gorm:"column:qty;not null"`
	PriceAtAdd decimal.Decimal `gorm:"column:price_at_add;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// LineTotal returns qty × price_at_add.
func (c CartLine) LineTotal() decimal.Decimal {
	return c.PriceAtAdd.Mul(decimal.NewFromInt(int64(c.Qty)))
}
