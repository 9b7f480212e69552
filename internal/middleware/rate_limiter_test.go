package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveFrom(t *testing.T, e *echo.Echo, mw echo.MiddlewareFunc, remoteAddr string) int {
	t.Helper()

	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()

	// rejections are written by SendError, so the handler still returns nil
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec.Code
}

func TestRateLimiterWithConfig_BurstThenReject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	mw := RateLimiterWithConfig(ctx, 2, 4)

	for i := 0; i < 4; i++ {
		assert.Equal(t, http.StatusOK, serveFrom(t, e, mw, "192.168.1.2:12345"))
	}
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(t, e, mw, "192.168.1.2:12345"))
}

func TestRateLimiter_IndependentPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	mw := RateLimiter(ctx)

	for _, ip := range []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"} {
		for i := 0; i < defaultBurstSize; i++ {
			assert.Equal(t, http.StatusOK, serveFrom(t, e, mw, ip), "request %d for %s", i, ip)
		}
	}
}

func TestRateLimiter_InstancesDoNotShareBuckets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	strict := RateLimiterWithConfig(ctx, 1, 1)
	loose := RateLimiterWithConfig(ctx, 100, 100)

	assert.Equal(t, http.StatusOK, serveFrom(t, e, strict, "10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(t, e, strict, "10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, serveFrom(t, e, loose, "10.0.0.1:1"))
}

func TestNewVisitorStore_Defaults(t *testing.T) {
	store := newVisitorStore(0, -1)

	assert.Equal(t, float64(defaultRequestsPerSecond), float64(store.limit))
	assert.Equal(t, defaultBurstSize, store.burst)
}

func TestVisitorStore_EvictIdle(t *testing.T) {
	store := newVisitorStore(5, 10)
	store.get("old_ip")
	store.get("new_ip")

	store.mu.Lock()
	store.visitors["old_ip"].lastSeen = time.Now().Add(-5 * time.Minute)
	store.mu.Unlock()

	store.evictIdle(time.Now())

	assert.Equal(t, 1, store.size())
	store.mu.Lock()
	_, oldExists := store.visitors["old_ip"]
	_, newExists := store.visitors["new_ip"]
	store.mu.Unlock()
	assert.False(t, oldExists)
	assert.True(t, newExists)
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"X-Forwarded-For header", map[string]string{"X-Forwarded-For": "192.168.1.1"}, "127.0.0.1:12345", "192.168.1.1"},
		{"X-Real-IP header", map[string]string{"X-Real-IP": "192.168.1.2"}, "127.0.0.1:12345", "192.168.1.2"},
		{"X-Forwarded-For takes precedence", map[string]string{"X-Forwarded-For": "192.168.1.1", "X-Real-IP": "192.168.1.2"}, "127.0.0.1:12345", "192.168.1.1"},
		{"Falls back to RealIP", map[string]string{}, "192.168.1.3:12345", "192.168.1.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.expected, getIP(e.NewContext(req, httptest.NewRecorder())))
		})
	}
}

func TestRateLimiter_Concurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	mw := RateLimiter(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := serveFrom(t, e, mw, "192.168.1.100:12345")
			mu.Lock()
			codes[code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Greater(t, codes[http.StatusOK], 0)
	assert.Greater(t, codes[http.StatusTooManyRequests], 0)
	assert.Equal(t, 20, codes[http.StatusOK]+codes[http.StatusTooManyRequests])
}
