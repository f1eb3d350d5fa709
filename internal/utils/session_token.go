package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for session ids
    "encoding/hex"  // hex encoding and decoding functions
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for signing the session cookie
)

// ErrInvalidSessionToken is returned when a cookie value is not a token
// this server signed, or it has expired.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken is a freshly issued login session.  Raw is the opaque id;
// only HashSessionID(Raw) is stored server side.  Signed is the cookie
// value handed to the client.
type SessionToken struct {
    Raw    string
    Signed string
    Exp    time.Time
}

// NewSessionToken generates a random session id and wraps it in an HS256
// JWT whose jti is the id.  The signature keeps clients from presenting
// guessed ids; revocation still goes through the server-side row.
func NewSessionToken(secret string, ttl time.Duration) (SessionToken, error) {
    raw, err := randomHex(48) // 48 bytes -> 96 hex chars
    if err != nil {
        return SessionToken{}, err
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.RegisteredClaims{
        ID:        raw,
        IssuedAt:  jwt.NewNumericDate(now),
        ExpiresAt: jwt.NewNumericDate(exp),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Raw: raw, Signed: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a cookie value and returns the session id it
// carries.
func ParseSessionToken(secret, signed string) (string, error) {
    var claims jwt.RegisteredClaims
    tok, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid || claims.ID == "" {
        return "", ErrInvalidSessionToken
    }
    return claims.ID, nil
}

// HashSessionID returns the SHA‑256 hash of a session id as a hex string.
// Storing only the hash keeps a leaked sessions table from being replayed.
func HashSessionID(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
