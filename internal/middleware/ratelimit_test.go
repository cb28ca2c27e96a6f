package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun5711/taskflow/internal/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	var buf bytes.Buffer
	rl := NewRateLimiter(rdb, 1, time.Minute, logger.NewWithWriter("test", &buf, logger.DEBUG))
	h := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	}
	assert.Contains(t, buf.String(), "Rate limiter unavailable")
}

func TestRateLimiter_KeyIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(nil, 1, time.Minute, logger.NewWithWriter("test", &bytes.Buffer{}, logger.DEBUG))
	trust, err := NewProxyTrust([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	var keys []string
	h := trust.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, rl.key(r))
	}))
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3, 4.4.4.4"} {
		h.ServeHTTP(httptest.NewRecorder(), newRequest("203.0.113.9:4000", spoofed, spoofed))
	}

	assert.Equal(t, []string{
		"ratelimit:auth:203.0.113.9",
		"ratelimit:auth:203.0.113.9",
		"ratelimit:auth:203.0.113.9",
	}, keys)
}

// Needs a live Redis: REDIS_TEST_ADDR=localhost:6379.
func TestRateLimiter_SpoofedHeadersShareBucket(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	rl := NewRateLimiter(rdb, 2, time.Minute, logger.NewWithWriter("test", &bytes.Buffer{}, logger.DEBUG))
	rl.keyPrefix = "ratelimit:test:" + time.Now().Format(time.RFC3339Nano) + ":"
	h := (*ProxyTrust)(nil).Middleware(rl.Middleware(okHandler()))

	codes := make([]int, 3)
	for i, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newRequest("198.51.100.8:5000", spoofed, ""))
		codes[i] = rec.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	require.NoError(t, rdb.Del(context.Background(), rl.keyPrefix+"198.51.100.8").Err())
}

// Needs a live Redis: REDIS_TEST_ADDR=localhost:6379.
func TestRateLimiter_Limits(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	rl := NewRateLimiter(rdb, 2, time.Minute, logger.NewWithWriter("test", &bytes.Buffer{}, logger.DEBUG))
	rl.keyPrefix = "ratelimit:test:" + time.Now().Format(time.RFC3339Nano) + ":"
	h := rl.Middleware(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	require.NoError(t, rdb.Del(context.Background(), rl.keyPrefix+"198.51.100.7").Err())
}
