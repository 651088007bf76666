package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/cellarmate/cellarmate-backend/internal/recommend"
	"github.com/cellarmate/cellarmate-backend/pkg/db"
	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
)

// Service exposes the session lifecycle and the per-session records it owns.
// All write operations require the session to be in_progress; reads stay
// available after the session closes.
type Service interface {
	Start(ctx context.Context, userID *uuid.UUID) (*models.Session, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*models.Session, error)
	UpsertQuiz(ctx context.Context, sessionID uuid.UUID, quiz recommend.QuizAnswers) error
	RecordEvents(ctx context.Context, sessionID uuid.UUID, events []EventInput) (EventBatchResult, error)
	AddToCart(ctx context.Context, sessionID uuid.UUID, sku string, qty int, priceAtAdd decimal.Decimal) error
	RemoveFromCart(ctx context.Context, sessionID uuid.UUID, sku string) error
	GetCart(ctx context.Context, sessionID uuid.UUID) (CartView, error)
	Complete(ctx context.Context, sessionID uuid.UUID) error
	Abandon(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	repo    Repository
	catalog CatalogReader
}

// NewService builds the sessions service.
func NewService(repo Repository, catalog CatalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

// Start opens a new session in the in_progress state. userID is optional:
// anonymous shoppers get a session too.
func (s *service) Start(ctx context.Context, userID *uuid.UUID) (*models.Session, error) {
	session := &models.Session{
		UserID: userID,
		Status: enums.SessionStatusInProgress,
	}
	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "session already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find session")
	}
	return session, nil
}

// UpsertQuiz validates and stores the answers for an open session. One quiz
// row per session: resubmission overwrites.
func (s *service) UpsertQuiz(ctx context.Context, sessionID uuid.UUID, quiz recommend.QuizAnswers) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	if _, err := s.openSession(ctx, sessionID); err != nil {
		return err
	}

	record := &models.QuizRecord{
		SessionID:    sessionID,
		Occasion:     quiz.Occasion,
		Style:        quiz.Style,
		DrinkTypes:   toStringArray(quiz.DrinkTypes),
		Tastes:       tastesToStringArray(quiz.Tastes),
		PeopleCount:  quiz.PeopleCount,
		BudgetBucket: quiz.BudgetBucket,
	}
	if err := s.repo.UpsertQuizRecord(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert quiz record")
	}
	return s.touch(ctx, sessionID)
}

// RecordEvents applies a batch of (sku, action) upserts in order. Items are
// isolated: one bad item fails alone and the rest still land. Duplicate skus
// within the batch resolve last-wins because writes run sequentially.
func (s *service) RecordEvents(ctx context.Context, sessionID uuid.UUID, events []EventInput) (EventBatchResult, error) {
	if _, err := s.openSession(ctx, sessionID); err != nil {
		return EventBatchResult{}, err
	}

	var result EventBatchResult
	for _, event := range events {
		if err := validateEvent(event); err != nil {
			result.FailedCount++
			result.Failure = multierr.Append(result.Failure, err)
			continue
		}
		if err := s.repo.UpsertEvent(ctx, sessionID, event.SKU, event.Action); err != nil {
			result.FailedCount++
			// An FK violation means the sku does not exist; anything else
			// is a storage problem.
			if db.IsForeignKeyViolation(err) {
				result.Failure = multierr.Append(result.Failure,
					pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sku %s", event.SKU)))
			} else {
				result.Failure = multierr.Append(result.Failure,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("event %s", event.SKU)))
			}
			continue
		}
		result.InsertedCount++
	}

	if result.InsertedCount > 0 {
		if err := s.touch(ctx, sessionID); err != nil {
			return result, err
		}
	}
	return result, nil
}

// AddToCart upserts the line with the price the caller saw at add time.
// Re-adding the same sku overwrites both qty and price_at_add.
func (s *service) AddToCart(ctx context.Context, sessionID uuid.UUID, sku string, qty int, priceAtAdd decimal.Decimal) error {
	if sku == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if priceAtAdd.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price_at_add must not be negative")
	}
	if _, err := s.openSession(ctx, sessionID); err != nil {
		return err
	}

	if _, err := s.catalog.GetBySKU(ctx, sku); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "unknown product")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}

	line := &models.CartLine{
		SessionID:  sessionID,
		SKU:        sku,
		Qty:        qty,
		PriceAtAdd: priceAtAdd,
	}
	if err := s.repo.UpsertCartLine(ctx, line); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart line")
	}
	return s.touch(ctx, sessionID)
}

// RemoveFromCart deletes the line if present. Removing an absent sku is a
// no-op, not an error.
func (s *service) RemoveFromCart(ctx context.Context, sessionID uuid.UUID, sku string) error {
	if sku == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if _, err := s.openSession(ctx, sessionID); err != nil {
		return err
	}
	if err := s.repo.DeleteCartLine(ctx, sessionID, sku); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	return s.touch(ctx, sessionID)
}

// GetCart returns the cart with decimal-exact totals. Reads are allowed on
// closed sessions.
func (s *service) GetCart(ctx context.Context, sessionID uuid.UUID) (CartView, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return CartView{}, err
	}

	lines, err := s.repo.ListCartLines(ctx, sessionID)
	if err != nil {
		return CartView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}

	view := CartView{Items: make([]CartItemView, 0, len(lines))}
	for _, line := range lines {
		total := line.LineTotal()
		view.Items = append(view.Items, CartItemView{
			SKU:        line.SKU,
			Qty:        line.Qty,
			PriceAtAdd: line.PriceAtAdd,
			LineTotal:  total,
			AddedAt:    line.CreatedAt,
		})
		view.TotalItems += line.Qty
		view.TotalPrice = view.TotalPrice.Add(total)
	}
	return view, nil
}

func (s *service) Complete(ctx context.Context, sessionID uuid.UUID) error {
	return s.close(ctx, sessionID, enums.SessionStatusCompleted)
}

func (s *service) Abandon(ctx context.Context, sessionID uuid.UUID) error {
	return s.close(ctx, sessionID, enums.SessionStatusAbandoned)
}

func (s *service) close(ctx context.Context, sessionID uuid.UUID, target enums.SessionStatus) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.Status.CanTransitionTo(target) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("session is %s and cannot become %s", session.Status, target))
	}
	if err := s.repo.UpdateSessionStatus(ctx, sessionID, target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update session status")
	}
	return nil
}

// openSession loads the session and rejects writes once it has closed.
func (s *service) openSession(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "session closed")
	}
	return session, nil
}

func (s *service) touch(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.TouchSession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch session")
	}
	return nil
}

func validateEvent(event EventInput) error {
	if event.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "event sku is required")
	}
	if !event.Action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid event action %q for sku %s", event.Action, event.SKU))
	}
	return nil
}

func toStringArray(types []enums.DrinkType) pq.StringArray {
	out := make(pq.StringArray, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}

func tastesToStringArray(tastes []enums.Taste) pq.StringArray {
	out := make(pq.StringArray, 0, len(tastes))
	for _, t := range tastes {
		out = append(out, t.String())
	}
	return out
}
