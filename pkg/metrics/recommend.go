package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecommendationMetrics records pipeline outcomes for recommendation requests.
type RecommendationMetrics struct {
	duration   *prometheus.HistogramVec
	requests   *prometheus.CounterVec
	empty      prometheus.Counter
	candidates prometheus.Histogram
}

// NewRecommendationMetrics registers the pipeline metrics on the provided registerer.
func NewRecommendationMetrics(reg prometheus.Registerer) *RecommendationMetrics {
	if reg == nil {
		return &RecommendationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_duration_seconds",
		Help:    "Duration of recommendation pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"relaxed"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Recommendation requests partitioned by applied relaxation level.",
	}, []string{"relaxed"})
	empty := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_empty_total",
		Help: "Recommendation requests that returned no offers.",
	})
	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_candidates",
		Help:    "Catalog candidates fetched per recommendation request.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	reg.MustRegister(duration, requests, empty, candidates)
	return &RecommendationMetrics{
		duration:   duration,
		requests:   requests,
		empty:      empty,
		candidates: candidates,
	}
}

// ObserveDuration records how long a pipeline run took for the given relaxation level.
func (r *RecommendationMetrics) ObserveDuration(relaxed string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(relaxed)).Observe(duration.Seconds())
}

// IncRequest counts a completed request for the given relaxation level.
func (r *RecommendationMetrics) IncRequest(relaxed string) {
	if r == nil || r.requests == nil {
		return
	}
	r.requests.WithLabelValues(normalizeLabel(relaxed)).Inc()
}

// IncEmpty counts a request that produced zero offers.
func (r *RecommendationMetrics) IncEmpty() {
	if r == nil || r.empty == nil {
		return
	}
	r.empty.Inc()
}

// ObserveCandidates records the candidate pool size for one request.
func (r *RecommendationMetrics) ObserveCandidates(count int) {
	if r == nil || r.candidates == nil {
		return
	}
	r.candidates.Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
