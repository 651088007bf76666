package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// Session is one guided shopping interaction from start to a terminal state.
type Session struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID          `gorm:"column:user_id;type:uuid;index:sessions_user_id_idx"`
	Status    enums.SessionStatus `gorm:"column:status;not null;default:'in_progress'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsOpen reports whether the session still accepts writes.
func (s Session) IsOpen() bool {
	return s.Status == enums.SessionStatusInProgress
}
