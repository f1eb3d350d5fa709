package middleware

// identity.go holds the request-scoped identity helpers.  The session
// middleware stores the caller's user id in the echo context under
// UserIDKey; everything downstream reads it through UserID.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

// UserID returns the authenticated user id, or 0 for an anonymous caller.
func UserID(c echo.Context) uint64 {
    if id, ok := c.Get(UserIDKey).(uint64); ok {
        return id
    }
    return 0
}

// userKey renders the caller for rate-limit keys: the user id or "anon".
func userKey(c echo.Context) string {
    if id := UserID(c); id != 0 {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
