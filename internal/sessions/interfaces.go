package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
)

// Repository defines persistence operations for sessions and the records
// they own.
type Repository interface {
	CreateSession(ctx context.Context, session *models.Session) (*models.Session, error)
	FindSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, status enums.SessionStatus) error
	TouchSession(ctx context.Context, id uuid.UUID) error
	UpsertQuizRecord(ctx context.Context, record *models.QuizRecord) error
	UpsertEvent(ctx context.Context, sessionID uuid.UUID, sku string, action enums.EventAction) error
	UpsertCartLine(ctx context.Context, line *models.CartLine) error
	DeleteCartLine(ctx context.Context, sessionID uuid.UUID, sku string) error
	ListCartLines(ctx context.Context, sessionID uuid.UUID) ([]models.CartLine, error)
}

// CatalogReader resolves skus referenced by cart writes.
type CatalogReader interface {
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
}
