package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cellarmate/cellarmate-backend/api/controllers"
	"github.com/cellarmate/cellarmate-backend/internal/recommend"
	"github.com/cellarmate/cellarmate-backend/internal/sessions"
	"github.com/cellarmate/cellarmate-backend/pkg/config"
	"github.com/cellarmate/cellarmate-backend/pkg/db/models"
	"github.com/cellarmate/cellarmate-backend/pkg/enums"
	pkgredis "github.com/cellarmate/cellarmate-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubRecommendService struct{}

func (stubRecommendService) Recommend(_ context.Context, quiz recommend.QuizAnswers) (recommend.Recommendation, error) {
	return recommend.Recommendation{Offers: []recommend.ScoredProduct{}, Relaxed: recommend.RelaxNone, Quiz: quiz}, nil
}

func (stubRecommendService) Trending(_ context.Context, _ *enums.DrinkType, _ int) ([]models.Product, error) {
	return nil, nil
}

func (stubRecommendService) Similar(_ context.Context, _ string, _ int) ([]models.Product, error) {
	return nil, nil
}

type stubSessionsService struct{}

func (stubSessionsService) Start(_ context.Context, userID *uuid.UUID) (*models.Session, error) {
	return &models.Session{ID: uuid.New(), UserID: userID, Status: enums.SessionStatusInProgress}, nil
}

func (stubSessionsService) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	return &models.Session{ID: id, Status: enums.SessionStatusInProgress}, nil
}

func (stubSessionsService) UpsertQuiz(_ context.Context, _ uuid.UUID, _ recommend.QuizAnswers) error {
	return nil
}

func (stubSessionsService) RecordEvents(_ context.Context, _ uuid.UUID, events []sessions.EventInput) (sessions.EventBatchResult, error) {
	return sessions.EventBatchResult{InsertedCount: len(events)}, nil
}

func (stubSessionsService) AddToCart(_ context.Context, _ uuid.UUID, _ string, _ int, _ decimal.Decimal) error {
	return nil
}

func (stubSessionsService) RemoveFromCart(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (stubSessionsService) GetCart(_ context.Context, _ uuid.UUID) (sessions.CartView, error) {
	return sessions.CartView{Items: []sessions.CartItemView{}}, nil
}

func (stubSessionsService) Complete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (stubSessionsService) Abandon(_ context.Context, _ uuid.UUID) error {
	return nil
}

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	str, _ := value.(string)
	m.data[key] = str
	return nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	m.data[key] = str
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("test:%s:%s", scope, id)
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func newTestRouter() http.Handler {
	return newTestRouterWithStore(nil)
}

func newTestRouterWithStore(store pkgredis.IdempotencyStore) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Eventing.IdempotencyTTL = time.Hour
	cfg.Recommend = config.RecommendConfig{
		ResultLimit:     10,
		ProducerCap:     2,
		CountryCap:      3,
		FetchMultiplier: 5,
		SimilarLimit:    6,
		TrendingLimit:   10,
	}
	return NewRouter(Dependencies{
		Config:           cfg,
		Recommendations:  stubRecommendService{},
		Sessions:         stubSessionsService{},
		IdempotencyStore: store,
		Pingers: []controllers.Dependency{
			{Name: "db", Pinger: stubPinger{}},
			{Name: "redis", Pinger: stubPinger{}},
		},
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
	}
}

func TestRecommendationsRoute(t *testing.T) {
	router := newTestRouter()

	body := `{"occasion":"dinner","style":"moderate","drink_types":["wine_red"],"tastes":[],"people_count":2,"budget_bucket":"medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionRoutesWired(t *testing.T) {
	router := newTestRouter()
	sessionID := uuid.New().String()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/v1/sessions", "", http.StatusCreated},
		{http.MethodPut, "/api/v1/sessions/" + sessionID + "/quiz", `{"occasion":"dinner","style":"light","drink_types":["beer"],"tastes":[],"people_count":1,"budget_bucket":"low"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/events", `{"events":[{"sku":"a","action":"like"}]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/cart", `{"sku":"a","qty":1,"price_at_add":1200.0}`, http.StatusOK},
		{http.MethodGet, "/api/v1/sessions/" + sessionID + "/cart", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/sessions/" + sessionID + "/cart/a", "", http.StatusOK},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/complete", "", http.StatusOK},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/abandon", "", http.StatusOK},
	}

	for _, tt := range tests {
		var req *http.Request
		if tt.body != "" {
			req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tt.method, tt.path, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s %s: expected %d got %d: %s", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
		}
	}
}

func TestSessionWritesRequireIdempotencyKey(t *testing.T) {
	router := newTestRouterWithStore(newMemoryStore())
	sessionID := uuid.New().String()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/v1/sessions", ""},
		{http.MethodPut, "/api/v1/sessions/" + sessionID + "/quiz", `{"occasion":"dinner","style":"light","drink_types":["beer"],"tastes":[],"people_count":1,"budget_bucket":"low"}`},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/events", `{"events":[{"sku":"a","action":"like"}]}`},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/cart", `{"sku":"a","qty":1,"price_at_add":1200.0}`},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/complete", ""},
		{http.MethodPost, "/api/v1/sessions/" + sessionID + "/abandon", ""},
	}

	for _, tt := range tests {
		var req *http.Request
		if tt.body != "" {
			req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tt.method, tt.path, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400 without Idempotency-Key, got %d: %s", tt.method, tt.path, rec.Code, rec.Body.String())
		}
	}
}

func TestSessionWriteReplaysThroughRouter(t *testing.T) {
	store := newMemoryStore()
	router := newTestRouterWithStore(store)
	sessionID := uuid.New().String()
	path := "/api/v1/sessions/" + sessionID + "/events"
	body := `{"events":[{"sku":"a","action":"like"}]}`

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "evt-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", first.Code, first.Body.String())
	}
	if len(store.data) != 1 {
		t.Fatalf("expected one stored response, got %d", len(store.data))
	}

	replay := send()
	if replay.Code != http.StatusOK {
		t.Fatalf("expected replayed 200 got %d", replay.Code)
	}
	if replay.Body.String() != first.Body.String() {
		t.Fatalf("replay body diverged: %s vs %s", replay.Body.String(), first.Body.String())
	}
}

func TestCartReadSkipsIdempotencyCheck(t *testing.T) {
	router := newTestRouterWithStore(newMemoryStore())
	sessionID := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
