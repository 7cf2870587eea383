package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedEcho(rl *RateLimiter) *echo.Echo {
	e := echo.New()
	g := e.Group("/api", Authenticate(nil), rl.Middleware())
	g.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func ping(e *echo.Echo, actor string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	if actor != "" {
		req.Header.Set(ActorHeader, actor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterKeysOnAuthenticatedActor(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	e := limitedEcho(rl)

	assert.Equal(t, http.StatusOK, ping(e, "7"))
	assert.Equal(t, http.StatusTooManyRequests, ping(e, "7"))
	assert.Equal(t, http.StatusTooManyRequests, ping(e, " 7 "))
	assert.Equal(t, http.StatusOK, ping(e, "8"))

	for i := range 500 {
		assert.Equal(t, http.StatusUnauthorized, ping(e, fmt.Sprintf("spoof-%d", i)))
	}
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiterCleanupDropsIdleKeys(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	require.True(t, rl.limiter("user:1").Allow())
	now = now.Add(20 * time.Minute)
	require.True(t, rl.limiter("user:2").Allow())

	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	assert.Equal(t, 1, rl.Len())

	// An evicted client starts over with a full bucket.
	assert.True(t, rl.limiter("user:1").Allow())
	assert.False(t, rl.limiter("user:2").Allow())
}
