package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/api/responses"
	"github.com/cellarmate/cellarmate-backend/api/validators"
	"github.com/cellarmate/cellarmate-backend/internal/recommend"
	"github.com/cellarmate/cellarmate-backend/internal/sessions"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
	"github.com/cellarmate/cellarmate-backend/pkg/logger"
)

type startSessionRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

type sessionResponse struct {
	ID     uuid.UUID           `json:"id"`
	UserID *uuid.UUID          `json:"user_id,omitempty"`
	Status enums.SessionStatus `json:"status"`
}

// SessionStart opens a new in_progress session.
func SessionStart(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload startSessionRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		session, err := svc.Start(r.Context(), payload.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{
			ID:     session.ID,
			UserID: session.UserID,
			Status: session.Status,
		})
	}
}

// SessionQuizUpsert stores (or replaces) the session's quiz answers.
func SessionQuizUpsert(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var quiz recommend.QuizAnswers
		if err := validators.DecodeJSONBody(r, &quiz); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpsertQuiz(r.Context(), sessionID, quiz); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "stored"})
	}
}

type eventBatchRequest struct {
	Events []sessions.EventInput `json:"events" validate:"required"`
}

// SessionEvents applies a batch of product reactions. Partial failure is a
// 200 with counts, not an error.
func SessionEvents(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RecordEvents(r.Context(), sessionID, payload.Events)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Failure != nil && logg != nil {
			ctx := logg.WithSessionID(r.Context(), sessionID.String())
			logg.Warn(ctx, "event batch partially failed")
		}

		responses.WriteSuccess(w, result)
	}
}

type addToCartRequest struct {
	SKU        string  `json:"sku" validate:"required"`
	Qty        int     `json:"qty" validate:"required,min=1"`
	PriceAtAdd float64 `json:"price_at_add" validate:"min=0"`
}

// SessionCartAdd upserts one cart line with the price the caller saw.
func SessionCartAdd(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddToCart(r.Context(), sessionID, payload.SKU, payload.Qty, decimal.NewFromFloat(payload.PriceAtAdd)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "stored"})
	}
}

// SessionCartGet returns the cart with decimal-exact totals. Works on
// closed sessions too.
func SessionCartGet(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetCart(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// SessionCartRemove deletes one line; removing an absent sku succeeds.
func SessionCartRemove(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := chi.URLParam(r, "sku")
		if err := svc.RemoveFromCart(r.Context(), sessionID, sku); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// SessionComplete transitions the session to completed.
func SessionComplete(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionClose(svc, logg, enums.SessionStatusCompleted)
}

// SessionAbandon transitions the session to abandoned.
func SessionAbandon(svc sessions.Service, logg *logger.Logger) http.HandlerFunc {
	return sessionClose(svc, logg, enums.SessionStatusAbandoned)
}

func sessionClose(svc sessions.Service, logg *logger.Logger, target enums.SessionStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch target {
		case enums.SessionStatusCompleted:
			err = svc.Complete(r.Context(), sessionID)
		case enums.SessionStatusAbandoned:
			err = svc.Abandon(r.Context(), sessionID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": string(target)})
	}
}

func sessionIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionId")
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return sessionID, nil
}
