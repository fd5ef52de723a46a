package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/restaurant-admin/internal/backend"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// Authenticator checks operator credentials against the backend.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (backend.LoginResult, error)
}

type Manager struct {
	log   *logger.Logger
	store Store
	auth  Authenticator
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(log *logger.Logger, store Store, auth Authenticator, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		log:   log.With("service", "SessionManager"),
		store: store,
		auth:  auth,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Login authenticates against the backend and opens a session. The session
// ends at the backend token's expiry or after the configured TTL, whichever
// comes first.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		switch backend.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("backend login: %w", err)
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	if exp, ok := tokenExpiry(res.Token); ok {
		if !exp.After(now) {
			return nil, fmt.Errorf("%w: backend token already expired", ErrInvalidCredentials)
		}
		if exp.Before(expiresAt) {
			expiresAt = exp
		}
	}

	s := &Session{
		ID:          uuid.New().String(),
		Token:       res.Token,
		User:        res.User,
		Permissions: res.User.Actions(),
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.log.Info("session opened", "session_id", s.ID, "user_id", s.User.ID.String(), "expires_at", s.ExpiresAt)
	return s, nil
}

// Get returns a live session. Expired sessions are deleted and reported as
// ErrExpired.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Warn("delete expired session failed", "session_id", id, "error", err)
		}
		return nil, ErrExpired
	}
	return s, nil
}

// Logout ends a session. Ending an unknown session is not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	m.log.Info("session closed", "session_id", id)
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend owns the signing key and rejects bad tokens itself.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time.UTC(), true
}
