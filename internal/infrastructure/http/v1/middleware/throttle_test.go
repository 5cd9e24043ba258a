package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/throttle"
	infrathrottle "backoffice/internal/infrastructure/throttle"
)

func newThrottledRouter(limit throttle.Limit) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Throttle(infrathrottle.NewMemoryThrottler(), limit))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func TestThrottle_AllowsUnderLimit(t *testing.T) {
	limit, err := throttle.New(60, 2)
	require.NoError(t, err)

	r := newThrottledRouter(limit)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(HeaderRateLimitLimit))
	assert.Equal(t, "1", w.Header().Get(HeaderRateLimitRemaining))
}

func TestThrottle_RejectsOverLimit(t *testing.T) {
	limit, err := throttle.New(60, 2)
	require.NoError(t, err)

	r := newThrottledRouter(limit)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get(HeaderRetryAfter))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestThrottle_SeparateClients(t *testing.T) {
	limit, err := throttle.New(60, 1)
	require.NoError(t, err)

	r := newThrottledRouter(limit)

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same client again: over the limit.
	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, second)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Different client is unaffected.
	third := httptest.NewRequest(http.MethodGet, "/ping", nil)
	third.Header.Set("X-Forwarded-For", "10.0.0.2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, third)
	assert.Equal(t, http.StatusOK, w.Code)
}
