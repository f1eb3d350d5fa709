package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/restaurant-reservation/internal/service"
)

// statusOf maps a service error kind to its HTTP status.  Errors without
// a kind are server faults.
func statusOf(err error) int {
    switch {
    case errors.Is(err, service.ErrBadRequest):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrUnauthorized):
        return http.StatusUnauthorized
    case errors.Is(err, service.ErrForbidden):
        return http.StatusForbidden
    case errors.Is(err, service.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, service.ErrConflict):
        return http.StatusConflict
    }
    return http.StatusInternalServerError
}

// fail writes err as a {"message": ...} body.  Internal errors are logged
// and hidden from the client.
func fail(c echo.Context, log zerolog.Logger, err error) error {
    status := statusOf(err)
    if status == http.StatusInternalServerError {
        log.Error().Err(err).
            Str("method", c.Request().Method).
            Str("path", c.Path()).
            Msg("request failed")
        return c.JSON(status, echo.Map{"message": "internal error"})
    }
    msg := err.Error()
    var se *service.Error
    if errors.As(err, &se) {
        msg = se.Msg
    }
    return c.JSON(status, echo.Map{"message": msg})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}
