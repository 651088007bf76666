package sessions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// EventInput is one (sku, action) pair inside a batch.
type EventInput struct {
	SKU    string            `json:"sku"`
	Action enums.EventAction `json:"action"`
}

// EventBatchResult reports the partial-success outcome of a batch. Failure
// aggregates the per-item errors; the batch itself never aborts on one bad
// item.
type EventBatchResult struct {
	InsertedCount int   `json:"inserted_count"`
	FailedCount   int   `json:"failed_count"`
	Failure       error `json:"-"`
}

// CartItemView is one cart line as returned to the caller.
type CartItemView struct {
	SKU        string          `json:"sku"`
	Qty        int             `json:"qty"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
	LineTotal  decimal.Decimal `json:"line_total"`
	AddedAt    time.Time       `json:"added_at"`
}

// CartView aggregates a session's cart: total_price is Σ qty × price_at_add,
// computed decimal-exact.
type CartView struct {
	Items      []CartItemView  `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
