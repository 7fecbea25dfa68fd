package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(t, 3, time.Minute)

	for i := 2; i >= 0; i-- {
		ok, remaining := rl.Allow("10.0.0.1")
		assert.True(t, ok)
		assert.Equal(t, i, remaining)
	}
	ok, remaining := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)

	// other clients are independent
	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok)

	// a new window refills the bucket
	*now = now.Add(time.Minute)
	ok, remaining = rl.Allow("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 2, remaining)
}

func TestRateLimiter_Evict(t *testing.T) {
	rl, now := newTestLimiter(t, 1, time.Second)
	rl.Allow("a")
	*now = now.Add(3 * time.Second)
	rl.Allow("b")

	rl.evict()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestNewRateLimiter_ZeroWindow(t *testing.T) {
	var rl *RateLimiter
	require.NotPanics(t, func() { rl = NewRateLimiter(2, 0) })
	defer rl.Stop()
	assert.Equal(t, DefaultRateLimitWindow, rl.window)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)

	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/v1/sessions/:id/checkout", RateLimitByKey(rl, func(c *gin.Context) string {
		return c.Param("id")
	}), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(session string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+session+"/checkout", nil))
		return w
	}

	w := send("s1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusCreated, send("s1").Code)

	w = send("s1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, send("s2").Code)
}

func TestRateLimit_ByClientIP(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
