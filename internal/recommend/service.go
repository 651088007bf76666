package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cellarmate/cellarmate-backend/internal/catalog"
	"github.com/cellarmate/cellarmate-backend/pkg/config"
	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgerrors "github.com/cellarmate/cellarmate-backend/pkg/errors"
	"github.com/cellarmate/cellarmate-backend/pkg/metrics"
)

// Catalog is the read-only product store the pipeline consumes.
type Catalog interface {
	FindProducts(ctx context.Context, q catalog.Query) ([]models.Product, error)
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
	FindRated(ctx context.Context, keywords []string, limit int) ([]models.Product, error)
	FindRelated(ctx context.Context, q catalog.RelatedQuery) ([]models.Product, error)
}

// Recommendation is the full pipeline output: ordered offers, the relaxation
// level that produced them, and the quiz echoed back. An empty offer list is
// a valid result, not an error.
type Recommendation struct {
	Offers  []ScoredProduct `json:"offers"`
	Relaxed RelaxLevel      `json:"relaxed"`
	Quiz    QuizAnswers     `json:"quiz"`
}

// Service exposes the recommendation operations.
type Service interface {
	Recommend(ctx context.Context, quiz QuizAnswers) (Recommendation, error)
	Trending(ctx context.Context, drinkType *enums.DrinkType, limit int) ([]models.Product, error)
	Similar(ctx context.Context, sku string, limit int) ([]models.Product, error)
}

type service struct {
	catalog Catalog
	rules   *Rules
	cfg     config.RecommendConfig
	metrics *metrics.RecommendationMetrics
}

// NewService builds the recommendation service. Metrics may be nil in tests.
func NewService(cat Catalog, rules *Rules, cfg config.RecommendConfig, m *metrics.RecommendationMetrics) (Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if rules == nil {
		return nil, fmt.Errorf("rules required")
	}
	if cfg.ResultLimit <= 0 {
		return nil, fmt.Errorf("result limit must be positive")
	}
	return &service{catalog: cat, rules: rules, cfg: cfg, metrics: m}, nil
}

// Recommend runs filter → score → diversify. The filter walks the relaxation
// ladder until a level yields candidates; budget constraints survive every
// level. Performs no writes, so caller cancellation has no side effects.
func (s *service) Recommend(ctx context.Context, quiz QuizAnswers) (Recommendation, error) {
	if err := quiz.Validate(); err != nil {
		return Recommendation{}, err
	}

	started := time.Now()
	fetchLimit := s.cfg.ResultLimit * s.cfg.FetchMultiplier

	var (
		candidates []ScoredProduct
		level      RelaxLevel
	)
	for _, level = range relaxLadder {
		pool, err := s.fetchScored(ctx, quiz, level, fetchLimit)
		if err != nil {
			return Recommendation{}, err
		}
		if len(pool) > 0 {
			candidates = pool
			break
		}
	}

	s.metrics.ObserveCandidates(len(candidates))
	s.metrics.IncRequest(string(level))
	s.metrics.ObserveDuration(string(level), time.Since(started))

	if len(candidates) == 0 {
		s.metrics.IncEmpty()
		return Recommendation{Offers: []ScoredProduct{}, Relaxed: level, Quiz: quiz}, nil
	}

	offers := SelectDiverse(candidates, DiversityCaps{
		Producer: s.cfg.ProducerCap,
		Country:  s.cfg.CountryCap,
		Limit:    s.cfg.ResultLimit,
	})

	return Recommendation{Offers: offers, Relaxed: level, Quiz: quiz}, nil
}

// fetchScored queries the catalog once per selected drink type and merges the
// pools by sku, keeping each product's best score across types.
func (s *service) fetchScored(ctx context.Context, quiz QuizAnswers, level RelaxLevel, fetchLimit int) ([]ScoredProduct, error) {
	plans, err := buildPlans(s.rules, quiz, level, fetchLimit)
	if err != nil {
		return nil, err
	}

	bySKU := map[string]ScoredProduct{}
	order := []string{}
	for _, plan := range plans {
		products, err := s.catalog.FindProducts(ctx, plan.query)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find candidates")
		}
		for _, p := range products {
			scored := ScoredProduct{Product: p, Score: Score(p, plan.scoring)}
			existing, seen := bySKU[p.SKU]
			if !seen {
				order = append(order, p.SKU)
			}
			if !seen || scored.Score > existing.Score {
				bySKU[p.SKU] = scored
			}
		}
	}

	merged := make([]ScoredProduct, 0, len(order))
	for _, sku := range order {
		merged = append(merged, bySKU[sku])
	}
	return merged, nil
}

// Trending returns popularity-ranked in-stock products, optionally narrowed
// to a drink type. Products without reviews never trend.
func (s *service) Trending(ctx context.Context, drinkType *enums.DrinkType, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = s.cfg.TrendingLimit
	}

	var keywords []string
	if drinkType != nil && *drinkType != enums.DrinkTypeMixed {
		if !drinkType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid drink type %q", *drinkType))
		}
		keywords = s.rules.Keywords(*drinkType)
	}

	pool, err := s.catalog.FindRated(ctx, keywords, limit*3)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rated products")
	}
	return RankTrending(pool, limit), nil
}

// Similar returns products sharing attributes with the source sku, never
// including the source itself.
func (s *service) Similar(ctx context.Context, sku string, limit int) ([]models.Product, error) {
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if limit <= 0 {
		limit = s.cfg.SimilarLimit
	}

	source, err := s.catalog.GetBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load source product")
	}

	pool, err := s.catalog.FindRelated(ctx, catalog.RelatedQuery{
		ExcludeSKU:   source.SKU,
		Country:      source.Country,
		Producer:     source.Producer,
		CategoryLike: familyOf(source.CategoryPath),
		Limit:        limit * 5,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find related products")
	}
	return RankSimilar(source, pool, limit), nil
}
