package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cellarmate/cellarmate-backend/api/controllers"
	"github.com/cellarmate/cellarmate-backend/api/middleware"
	"github.com/cellarmate/cellarmate-backend/internal/recommend"
	"github.com/cellarmate/cellarmate-backend/internal/sessions"
	"github.com/cellarmate/cellarmate-backend/pkg/config"
	"github.com/cellarmate/cellarmate-backend/pkg/logger"
	pkgredis "github.com/cellarmate/cellarmate-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config           *config.Config
	Logger           *logger.Logger
	Recommendations  recommend.Service
	Sessions         sessions.Service
	IdempotencyStore pkgredis.IdempotencyStore
	MetricsGatherer  prometheus.Gatherer
	Pingers          []controllers.Dependency
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers...))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", controllers.Recommendations(deps.Recommendations, logg))
		r.Get("/recommendations/trending", controllers.Trending(deps.Recommendations, cfg.Recommend, logg))
		r.Get("/products/{sku}/similar", controllers.Similar(deps.Recommendations, cfg.Recommend, logg))

		r.Route("/sessions", func(r chi.Router) {
			r.Use(middleware.Idempotency(deps.IdempotencyStore, logg, cfg.Eventing.IdempotencyTTL))

			r.Post("/", controllers.SessionStart(deps.Sessions, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Put("/quiz", controllers.SessionQuizUpsert(deps.Sessions, logg))
				r.Post("/events", controllers.SessionEvents(deps.Sessions, logg))
				r.Post("/cart", controllers.SessionCartAdd(deps.Sessions, logg))
				r.Get("/cart", controllers.SessionCartGet(deps.Sessions, logg))
				r.Delete("/cart/{sku}", controllers.SessionCartRemove(deps.Sessions, logg))
				r.Post("/complete", controllers.SessionComplete(deps.Sessions, logg))
				r.Post("/abandon", controllers.SessionAbandon(deps.Sessions, logg))
			})
		})
	})

	return r
}
