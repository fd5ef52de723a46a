// Package session owns the lifecycle of an operator's console session:
// created on login, looked up on every request, dropped on logout or expiry.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

var (
	ErrNotFound           = errors.New("session not found")
	ErrExpired            = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Wildcard grants every action, or every operation of a module as
// "<module>:*".
const Wildcard = "*"

type Session struct {
	ID          string      `json:"id"`
	Token       string      `json:"token"`
	User        domain.User `json:"user"`
	Permissions []string    `json:"permissions"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Can reports whether the session grants action. Matches are exact, by
// "<module>:*", or by the global "*".
func (s *Session) Can(action string) bool {
	if s == nil {
		return false
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return true
	}
	module, _ := domain.SplitAction(action)
	for _, p := range s.Permissions {
		switch p {
		case Wildcard, action:
			return true
		case module + domain.ActionSeparator + Wildcard:
			return true
		}
	}
	return false
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
