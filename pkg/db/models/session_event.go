package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// SessionEvent records the latest user reaction to a product inside a
// session. The (session_id, sku) pair is unique; a newer reaction for the
// same product overwrites the old one.
type SessionEvent struct {
	SessionID uuid.UUID         `gorm:"column:session_id;type:uuid;primaryKey"`
	SKU       string            `gorm:"column:sku;primaryKey"`
	Action    enums.EventAction `gorm:"column:action;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
