package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// QuizRecord stores the latest quiz answers for a session. One row per
// session; resubmission replaces the previous answers.
type QuizRecord struct {
	SessionID    uuid.UUID          `gorm:"column:session_id;type:uuid;primaryKey"`
	Occasion     enums.Occasion     `gorm:"column:occasion;not null"`
	Style        enums.Style        `gorm:"column:style;not null"`
	DrinkTypes   pq.StringArray     `gorm:"column:drink_types;type:text[];not null;default:ARRAY[]::text[]"`
	Tastes       pq.StringArray     `gorm:"column:tastes;type:text[];not null;default:ARRAY[]::text[]"`
	PeopleCount  int                `gorm:"column:people_count;not null;default:1"`
	BudgetBucket enums.BudgetBucket `gorm:"column:budget_bucket;not null"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
