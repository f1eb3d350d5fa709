package model

import "time"

// User represents an application user record as stored in the
// `users` table.  The json tags are omitted because handlers define
// their own response shapes; PasswordHash must never leave the server.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username (unique)
    PasswordHash string    // users.password_hash (bcrypt)
    Name         string    // users.name
    CreatedAt    time.Time // users.created_at
}

// Session models a row in the `sessions` table.  The opaque session id
// handed to the client is not stored; only its SHA-256 hash.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    TokenHash string     // sessions.token_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}

// Active reports whether the session can still authenticate at now.
func (s Session) Active(now time.Time) bool {
    return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
