package sessions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sessions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = enums.SessionStatusInProgress
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *repository) FindSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status enums.SessionStatus) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE sessions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id).
		Error
}

func (r *repository) TouchSession(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id).
		Error
}

// UpsertQuizRecord keeps one quiz row per session; resubmission overwrites
// the previous answers.
func (r *repository) UpsertQuizRecord(ctx context.Context, record *models.QuizRecord) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO quiz_records (session_id, occasion, style, drink_types, tastes, people_count, budget_bucket, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (session_id) DO UPDATE SET
  occasion = excluded.occasion,
  style = excluded.style,
  drink_types = excluded.drink_types,
  tastes = excluded.tastes,
  people_count = excluded.people_count,
  budget_bucket = excluded.budget_bucket,
  updated_at = CURRENT_TIMESTAMP`,
			record.SessionID, record.Occasion, record.Style,
			record.DrinkTypes, record.Tastes,
			record.PeopleCount, record.BudgetBucket).
		Error
}

// UpsertEvent records the latest reaction per (session_id, sku); concurrent
// batches racing on the same key are serialized by the conflict target.
func (r *repository) UpsertEvent(ctx context.Context, sessionID uuid.UUID, sku string, action enums.EventAction) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO session_events (session_id, sku, action, created_at, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (session_id, sku) DO UPDATE SET
  action = excluded.action,
  updated_at = CURRENT_TIMESTAMP`,
			sessionID, sku, action).
		Error
}

// UpsertCartLine overwrites qty and the captured price for the key, it never
// sums quantities.
func (r *repository) UpsertCartLine(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO cart_lines (session_id, sku, qty, price_at_add, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (session_id, sku) DO UPDATE SET
  qty = excluded.qty,
  price_at_add = excluded.price_at_add,
  updated_at = CURRENT_TIMESTAMP`,
			line.SessionID, line.SKU, line.Qty, line.PriceAtAdd).
		Error
}

func (r *repository) DeleteCartLine(ctx context.Context, sessionID uuid.UUID, sku string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND sku = ?", sessionID, sku).
		Delete(&models.CartLine{}).
		Error
}

func (r *repository) ListCartLines(ctx context.Context, sessionID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("sku ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
