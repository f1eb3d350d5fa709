package middleware // middleware provides shared request processing for handlers

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/restaurant-reservation/internal/service"
)

// SessionCookie is the name of the cookie carrying the signed session id.
const SessionCookie = "session"

// SessionResolver maps a cookie value to a user id.  *service.AuthService
// implements it.
type SessionResolver interface {
    Authenticate(ctx context.Context, cookie string) (uint64, error)
}

// LoadSession resolves the session cookie, when present, and stores the
// user id under UserIDKey.  A missing or dead session leaves the request
// anonymous; it is up to the route to decide whether that is acceptable.
func LoadSession(r SessionResolver, log zerolog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ck, err := c.Cookie(SessionCookie)
            if err != nil || ck.Value == "" {
                return next(c)
            }
            ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
            defer cancel()
            uid, err := r.Authenticate(ctx, ck.Value)
            if err != nil {
                if !errors.Is(err, service.ErrUnauthorized) {
                    log.Warn().Err(err).Msg("session lookup failed")
                }
                return next(c)
            }
            c.Set(UserIDKey, uid)
            return next(c)
        }
    }
}

// RequireSession rejects anonymous callers with 401.  It must run after
// LoadSession.
func RequireSession() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if UserID(c) == 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "login required"})
            }
            return next(c)
        }
    }
}
