package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/restaurant-reservation/internal/middleware"
    "github.com/iliyamo/restaurant-reservation/internal/model"
    "github.com/iliyamo/restaurant-reservation/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Auth         *service.AuthService
    CookieSecure bool
    Log          zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, cookieSecure bool, log zerolog.Logger) *AuthHandler {
    return &AuthHandler{Auth: auth, CookieSecure: cookieSecure, Log: log}
}

// ----- DTOs -----

type signupReq struct {
    Username string `json:"username" validate:"required"`
    Password string `json:"password" validate:"required"`
    Name     string `json:"name" validate:"required"`
}
type loginReq struct {
    Username string `json:"username" validate:"required"`
    Password string `json:"password" validate:"required"`
}

type userResp struct {
    ID       uint64 `json:"id"`
    Username string `json:"username"`
    Name     string `json:"name"`
}

func toUserResp(u model.User) userResp {
    return userResp{ID: u.ID, Username: u.Username, Name: u.Name}
}

// Signup: create the account.  The client logs in separately.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req signupReq
    if msg := bindAndValidate(c, &req); msg != "" {
        return badRequest(c, msg)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Auth.Signup(ctx, strings.TrimSpace(req.Username), req.Password, strings.TrimSpace(req.Name))
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "user created",
        "user":    toUserResp(u),
    })
}

// Login: verify credentials and set the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if msg := bindAndValidate(c, &req); msg != "" {
        return badRequest(c, msg)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, tok, err := h.Auth.Login(ctx, strings.TrimSpace(req.Username), req.Password)
    if err != nil {
        return fail(c, h.Log, err)
    }
    c.SetCookie(h.cookie(tok.Signed, tok.Exp))
    return c.JSON(http.StatusOK, echo.Map{
        "message": "logged in",
        "user":    toUserResp(u),
    })
}

// Logout: revoke the current session, if any, and clear the cookie.
// Calling it twice is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
    if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
        defer cancel()
        if err := h.Auth.Logout(ctx, ck.Value); err != nil {
            return fail(c, h.Log, err)
        }
    }
    expired := h.cookie("", time.Unix(0, 0))
    expired.MaxAge = -1
    c.SetCookie(expired)
    return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Auth.CurrentUser(ctx, middleware.UserID(c))
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, toUserResp(u))
}

func (h *AuthHandler) cookie(value string, exp time.Time) *http.Cookie {
    return &http.Cookie{
        Name:     middleware.SessionCookie,
        Value:    value,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        Secure:   h.CookieSecure,
        SameSite: http.SameSiteLaxMode,
    }
}
