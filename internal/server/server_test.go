package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/handlers"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/models"
)

type memoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memoryCounter) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

type okAuth struct{}

func (okAuth) VerifyPIN(context.Context, string) (*auth.Session, error) {
	return &auth.Session{Token: "tok"}, nil
}

type fixedStats struct{}

func (fixedStats) Stats(context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{TotalInvoices: 2, TotalRevenue: invoicecalc.NumberFromInt(1180)}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, Environment: "development", Version: "test"},
		Auth:   config.AuthConfig{RateLimitMax: 2, RateLimitWindow: time.Minute},
		Features: config.FeatureFlags{
			EnableRateLimit: true,
		},
	}
}

func newTestServer(cfg *config.Config, opts Options) http.Handler {
	gin.SetMode(gin.TestMode)
	h := handlers.NewHandlers(handlers.Services{
		Auth:      okAuth{},
		Dashboard: fixedStats{},
	}, cfg, nil)
	return New(h, cfg, opts).Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(testConfig(), Options{})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w = serve(srv, req)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(testConfig(), Options{})

	serve(srv, httptest.NewRequest(http.MethodGet, "/live", nil))
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "billing_http_requests_total")
}

func TestVerifyPIN_RateLimited(t *testing.T) {
	store := newMemoryCounter()
	srv := newTestServer(testConfig(), Options{RateStore: store})

	pin := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-pin", strings.NewReader(`{"pin":"1234"}`))
		req.Header.Set("Content-Type", "application/json")
		return serve(srv, req).Code
	}

	assert.Equal(t, http.StatusOK, pin())
	assert.Equal(t, http.StatusOK, pin())
	assert.Equal(t, http.StatusTooManyRequests, pin())

	for key, ttl := range store.expires {
		assert.True(t, strings.HasPrefix(key, "ratelimit:verify-pin:"))
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestVerifyPIN_RateLimiterFailsOpen(t *testing.T) {
	store := newMemoryCounter()
	store.err = redis.ErrClosed
	srv := newTestServer(testConfig(), Options{RateStore: store})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-pin", strings.NewReader(`{"pin":"1234"}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusOK, serve(srv, req).Code)
	}
}

func TestRequireAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Features.RequireAuth = true
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	srv := newTestServer(cfg, Options{Tokens: tokens})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(srv, req).Code)

	session, err := tokens.Issue("owner")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = serve(srv, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_invoices":2`)

	// login and probes stay open
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-pin", strings.NewReader(`{"pin":"1234"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusOK, serve(srv, req).Code)
	assert.Equal(t, http.StatusOK, serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
}

func TestCORS(t *testing.T) {
	t.Run("development allows any origin", func(t *testing.T) {
		srv := newTestServer(testConfig(), Options{})

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/invoices", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := serve(srv, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("production uses the allowlist", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.Environment = "production"
		cfg.CORS.AllowedOrigins = []string{"https://billing.spm.in"}
		srv := newTestServer(cfg, Options{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://billing.spm.in")
		w := serve(srv, req)
		assert.Equal(t, "https://billing.spm.in", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = serve(srv, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
