package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
)

// Options carries what New needs to build the global middleware chain.
type Options struct {
	CORSOrigins []string
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client // nil disables rate limiting
	Sessions    middleware.SessionResolver
	Log         zerolog.Logger
}

// New returns an Echo instance with the global middleware installed:
// panic recovery, request ids, access logging, CORS with credentials,
// session resolution and the token bucket limiter.  Sessions are loaded
// before the limiter so per-user keys see the caller.
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	if opts.Sessions != nil {
		e.Use(middleware.LoadSession(opts.Sessions, opts.Log))
	}
	e.Use(middleware.NewTokenBucket(opts.RateLimit, opts.Redis, opts.Log))
	return e
}

// RegisterRoutes registers routes that do not belong to a feature group.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers signup, login, logout and the profile endpoint.
// Logout is open to anonymous callers so a stale cookie can always be
// cleared.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/signup", a.Signup)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout)
	e.GET("/me", a.Me, middleware.RequireSession())
}
