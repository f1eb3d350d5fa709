package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

type resolverFunc func(ctx context.Context, cookie string) (uint64, error)

func (f resolverFunc) Authenticate(ctx context.Context, cookie string) (uint64, error) {
	return f(ctx, cookie)
}

var knownCookie = resolverFunc(func(_ context.Context, cookie string) (uint64, error) {
	switch cookie {
	case "good":
		return 7, nil
	case "broken-store":
		return 0, errors.New("db down")
	}
	return 0, &service.Error{Kind: service.ErrUnauthorized, Msg: "invalid session"}
})

func serve(t *testing.T, cookie string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, uint64) {
	t.Helper()
	e := echo.New()
	var seen uint64
	e.GET("/", func(c echo.Context) error {
		seen = UserID(c)
		return c.NoContent(http.StatusOK)
	}, mws...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestLoadSession(t *testing.T) {
	for _, tc := range []struct {
		cookie string
		want   uint64
	}{
		{"good", 7},
		{"forged", 0},
		{"broken-store", 0},
		{"", 0},
	} {
		rec, uid := serve(t, tc.cookie, LoadSession(knownCookie, zerolog.Nop()))
		assert.Equal(t, http.StatusOK, rec.Code, tc.cookie)
		assert.Equal(t, tc.want, uid, tc.cookie)
	}
}

func TestRequireSession(t *testing.T) {
	rec, _ := serve(t, "forged", LoadSession(knownCookie, zerolog.Nop()), RequireSession())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"login required"}`, rec.Body.String())

	rec, uid := serve(t, "good", LoadSession(knownCookie, zerolog.Nop()), RequireSession())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), uid)
}

func TestTokenBucketWithoutRedisPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1}
	for i := 0; i < 3; i++ {
		rec, _ := serve(t, "", NewTokenBucket(cfg, nil, zerolog.Nop()))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/reservations")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /reservations", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:anon", buildRateKey(cfg, c))
	c.Set(UserIDKey, uint64(7))
	assert.Equal(t, "rl:user:7", buildRateKey(cfg, c))
}

func TestParseBucketResult(t *testing.T) {
	res, err := parseBucketResult([]int64{1, 4, 0})
	assert.NoError(t, err)
	assert.True(t, res.allowed)
	assert.Equal(t, int64(4), res.remaining)

	res, err = parseBucketResult([]int64{0, 0, 1500})
	assert.NoError(t, err)
	assert.False(t, res.allowed)
	assert.Equal(t, 1500*time.Millisecond, res.retry)

	_, err = parseBucketResult([]int64{1})
	assert.Error(t, err)
}

func TestTokenBucketBlocksWhenDrained(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
	mw := NewTokenBucket(cfg, rdb, zerolog.Nop())

	var codes []int
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last, _ = serve(t, "", mw)
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "3600", last.Header().Get("Retry-After"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `{"message":"too many requests, try again later","retry_after":3600}`, last.Body.String())

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "rl:ip:192.0.2.1:route:GET /", keys[0])
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"}
	for i := 0; i < 3; i++ {
		rec, _ := serve(t, "", NewTokenBucket(cfg, rdb, zerolog.Nop()))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
