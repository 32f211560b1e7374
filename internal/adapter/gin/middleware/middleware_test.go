package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveRateLimited(route string) {
	m.Called(route)
}

func (m *mockRecorder) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status, duration)
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/user/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func doRequest(r http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_WithinLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 5}, nil, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequest(r, "/", "192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
}

func TestRateLimiter_ExceedLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	rec := new(mockRecorder)
	rec.On("ObserveRateLimited", "/").Once()
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 0.1, BurstCapacity: 2}, rec, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)

	w := doRequest(r, "/", "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	rec.AssertExpectations(t)
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 0.1, BurstCapacity: 1}, nil, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "/", "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.2:1234").Code)
}

func TestRateLimiter_BucketPerRouteTemplate(t *testing.T) {
	client, _ := setupTestRedis(t)
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 0.1, BurstCapacity: 1}, nil, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(r, "/user/1", "192.0.2.1:1234").Code)
	// Same route template, different id
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "/user/2", "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
}

func TestRateLimiter_Refill(t *testing.T) {
	client, mr := setupTestRedis(t)
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1}, nil, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mr.SetTime(start)
	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "/", "192.0.2.1:1234").Code)

	mr.SetTime(start.Add(2 * time.Second))
	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
}

func TestRateLimiter_FailOpen(t *testing.T) {
	client, mr := setupTestRedis(t)
	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 0.1, BurstCapacity: 1}, nil, zaptest.NewLogger(t))
	r := newLimitedRouter(rl)

	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
	}
}

func TestRateLimiter_NilPassesThrough(t *testing.T) {
	var rl *RateLimiter
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(r, "/", "192.0.2.1:1234").Code)
}

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	doRequest(r, "/ok?q=a", "192.0.2.1:1234")
	doRequest(r, "/missing", "192.0.2.1:1234")
	doRequest(r, "/broken", "192.0.2.1:1234")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "q=a", entries[0].ContextMap()["query"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := doRequest(r, "/panic", "192.0.2.1:1234")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	rec := new(mockRecorder)
	rec.On("ObserveRequest", http.MethodGet, "/user/:id", http.StatusOK, mock.Anything).Once()
	rec.On("ObserveRequest", http.MethodGet, "unmatched", http.StatusNotFound, mock.Anything).Once()

	r := gin.New()
	r.Use(Metrics(rec))
	r.GET("/user/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	doRequest(r, "/user/7", "192.0.2.1:1234")
	doRequest(r, "/nope", "192.0.2.1:1234")

	rec.AssertExpectations(t)
}
