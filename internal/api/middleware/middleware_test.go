package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── RateLimit ──

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func rateLimitedRouter(limiter RateLimiter) *gin.Engine {
	r := gin.New()
	r.GET("/:token", RateLimit(limiter, 10, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	w := httptest.NewRecorder()
	rateLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, limiter.keys, 1)
	assert.True(t, strings.HasSuffix(limiter.keys[0], ":/:token"), "key should use the route template, got %s", limiter.keys[0])
}

func TestRateLimit_RejectedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	rateLimitedRouter(&fakeLimiter{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/abc", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":10004`)
}

func TestRateLimit_RejectedHTML(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	rateLimitedRouter(&fakeLimiter{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Trop de requêtes")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	for name, limiter := range map[string]RateLimiter{
		"nil limiter":   nil,
		"limiter error": &fakeLimiter{err: errors.New("connection refused")},
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rateLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/abc", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36, "oversized ids are replaced by a uuid")
}

// ── Metrics ──

type observation struct {
	method, route, status string
}

type fakeObserver struct {
	seen []observation
}

func (f *fakeObserver) ObserveRequest(method, route, status string, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetrics_RouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/:token", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/secret-token", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a/b/c", nil))

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{"GET", "/:token", "404"}, obs.seen[0])
	assert.Equal(t, "unmatched", obs.seen[1].route)
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		var form struct {
			Value string `form:"value"`
		}
		if err := c.ShouldBind(&form); err != nil {
			_ = c.Error(err)
			return
		}
		c.String(http.StatusOK, form.Value)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("value="+strings.Repeat("a", 64)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":10005`)
}

// ── SecurityHeaders ──

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
