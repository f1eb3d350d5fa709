package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

// AuthConfig carries the knobs AuthService needs from config.Config.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int
}

// AuthService handles signup, login and the server-side session that
// identifies a caller on later requests.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	cfg      AuthConfig
}

func NewAuthService(users UserStore, sessions SessionStore, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, sessions: sessions, cfg: cfg}
}

// Signup creates a user.  A taken username is a conflict whether it is
// seen up front or only by the unique key on insert.
func (s *AuthService) Signup(ctx context.Context, username, password, name string) (model.User, error) {
	if username == "" || password == "" || name == "" {
		return model.User{}, fail(ErrBadRequest, "username, password and name are required")
	}
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return model.User{}, fail(ErrConflict, "username already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return model.User{}, err
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	id, err := s.users.Create(ctx, username, hash, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, fail(ErrConflict, "username already exists")
		}
		return model.User{}, err
	}
	return model.User{ID: id, Username: username, Name: name}, nil
}

// Login checks the credentials and opens a session.  The returned token's
// Signed value is what the client keeps in its cookie.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.User, utils.SessionToken, error) {
	if username == "" || password == "" {
		return model.User{}, utils.SessionToken{}, fail(ErrBadRequest, "username and password are required")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, utils.SessionToken{}, fail(ErrNotFound, "user does not exist")
		}
		return model.User{}, utils.SessionToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, utils.SessionToken{}, fail(ErrUnauthorized, "wrong password")
	}

	tok, err := utils.NewSessionToken(s.cfg.SessionSecret, s.cfg.SessionTTL)
	if err != nil {
		return model.User{}, utils.SessionToken{}, err
	}
	if err := s.sessions.Create(ctx, u.ID, utils.HashSessionID(tok.Raw), tok.Exp); err != nil {
		return model.User{}, utils.SessionToken{}, err
	}
	return u, tok, nil
}

// Authenticate resolves a cookie value to the user id of a live session.
// A bad or dead session is ErrUnauthorized; store failures come back
// unwrapped.
func (s *AuthService) Authenticate(ctx context.Context, cookie string) (uint64, error) {
	raw, err := utils.ParseSessionToken(s.cfg.SessionSecret, cookie)
	if err != nil {
		return 0, fail(ErrUnauthorized, "invalid session")
	}
	uid, err := s.sessions.Validate(ctx, utils.HashSessionID(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fail(ErrUnauthorized, "session expired")
		}
		return 0, err
	}
	return uid, nil
}

// Logout revokes the session behind cookie.  An empty, forged or already
// revoked cookie is not an error.
func (s *AuthService) Logout(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	raw, err := utils.ParseSessionToken(s.cfg.SessionSecret, cookie)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, utils.HashSessionID(raw))
}

// CurrentUser returns the profile of an authenticated caller.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (model.User, error) {
	if userID == 0 {
		return model.User{}, fail(ErrUnauthorized, "login required")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, fail(ErrUnauthorized, "login required")
		}
		return model.User{}, err
	}
	return u, nil
}
