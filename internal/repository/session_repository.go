package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// SessionRepo persists login sessions by the SHA-256 hash of their id.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp.UTC())
	return err
}

// Validate returns the owning user id if a non-revoked, non-expired
// session exists.  Anything else is ErrNotFound.
func (r *SessionRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	sess := model.Session{TokenHash: tokenHash}
	var revokedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&sess.UserID, &sess.ExpiresAt, &revokedAt)
	if err != nil {
		return 0, notFound(err)
	}
	if revokedAt.Valid {
		sess.RevokedAt = &revokedAt.Time
	}
	if !sess.Active(time.Now().UTC()) {
		return 0, ErrNotFound
	}
	return sess.UserID, nil
}

// Revoke marks a session as revoked.  Revoking an unknown or already
// revoked session is not an error.
func (r *SessionRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

