package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cellarmate/cellarmate-backend/api/responses"
	"github.com/cellarmate/cellarmate-backend/api/validators"
	"github.com/cellarmate/cellarmate-backend/internal/recommend"
	"github.com/cellarmate/cellarmate-backend/pkg/config"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
	"github.com/cellarmate/cellarmate-backend/pkg/logger"
)

const maxResultLimit = 50

// Recommendations runs the quiz through the full pipeline.
func Recommendations(svc recommend.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		var quiz recommend.QuizAnswers
		if err := validators.DecodeJSONBody(r, &quiz); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Recommend(r.Context(), quiz)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Trending lists popularity-ranked in-stock products, optionally narrowed
// to one drink type.
func Trending(svc recommend.Service, cfg config.RecommendConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.TrendingLimit, 1, maxResultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var drinkType *enums.DrinkType
		if raw := strings.TrimSpace(r.URL.Query().Get("drink_type")); raw != "" {
			parsed, parseErr := enums.ParseDrinkType(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid drink_type"))
				return
			}
			drinkType = &parsed
		}

		products, err := svc.Trending(r.Context(), drinkType, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// Similar lists products related to the given sku by shared attributes.
func Similar(svc recommend.Service, cfg config.RecommendConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.SimilarLimit, 1, maxResultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := chi.URLParam(r, "sku")
		products, err := svc.Similar(r.Context(), sku, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}
