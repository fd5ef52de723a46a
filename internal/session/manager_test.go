package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/restaurant-admin/internal/backend"
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type fakeAuth struct {
	result backend.LoginResult
	err    error
	calls  int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (backend.LoginResult, error) {
	f.calls++
	return f.result, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func operator() domain.User {
	return domain.User{
		ID:    "1",
		Email: "owner@example.com",
		Role: &domain.Role{ID: "1", Name: "Manager", Permissions: []domain.Permission{
			{ID: "1", Action: "orders:view"},
			{ID: "2", Action: "menu:*"},
		}},
	}
}

func TestLoginUsesEarlierOfTokenExpiryAndTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		token func(t *testing.T) string
		want  time.Time
	}{
		{"token expires first", func(t *testing.T) string { return signedToken(t, now.Add(time.Hour)) }, now.Add(time.Hour)},
		{"ttl expires first", func(t *testing.T) string { return signedToken(t, now.Add(48*time.Hour)) }, now.Add(12 * time.Hour)},
		{"opaque token", func(t *testing.T) string { return "opaque-token" }, now.Add(12 * time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &fakeAuth{result: backend.LoginResult{Token: tc.token(t), User: operator()}}
			m := NewManager(logger.NewNop(), NewMemoryStore(), auth, 12*time.Hour)
			m.now = func() time.Time { return now }

			s, err := m.Login(context.Background(), "owner@example.com", "pw")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if !s.ExpiresAt.Equal(tc.want) {
				t.Fatalf("ExpiresAt: got=%v want=%v", s.ExpiresAt, tc.want)
			}
			if len(s.Permissions) != 2 {
				t.Fatalf("permissions: got=%v", s.Permissions)
			}
		})
	}
}

func TestLoginRejectsCredentials(t *testing.T) {
	m := NewManager(logger.NewNop(), NewMemoryStore(), &fakeAuth{}, time.Hour)
	if _, err := m.Login(context.Background(), "", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty email: got=%v", err)
	}

	auth := &fakeAuth{err: &backend.Error{Status: http.StatusUnauthorized, Message: "bad password"}}
	m = NewManager(logger.NewNop(), NewMemoryStore(), auth, time.Hour)
	if _, err := m.Login(context.Background(), "owner@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("401: got=%v", err)
	}

	auth = &fakeAuth{err: &backend.Error{Status: http.StatusInternalServerError}}
	m = NewManager(logger.NewNop(), NewMemoryStore(), auth, time.Hour)
	_, err := m.Login(context.Background(), "owner@example.com", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("500: got=%v want upstream error", err)
	}
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	now := time.Now()
	auth := &fakeAuth{result: backend.LoginResult{Token: signedToken(t, now.Add(-time.Minute)), User: operator()}}
	m := NewManager(logger.NewNop(), NewMemoryStore(), auth, time.Hour)
	if _, err := m.Login(context.Background(), "owner@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got=%v want ErrInvalidCredentials", err)
	}
}

func TestGetExpiresAndLogout(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	auth := &fakeAuth{result: backend.LoginResult{Token: "opaque", User: operator()}}
	m := NewManager(logger.NewNop(), store, auth, time.Hour)
	m.now = func() time.Time { return now }

	s, err := m.Login(context.Background(), "owner@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := m.Get(context.Background(), s.ID); err != nil {
		t.Fatalf("Get live: %v", err)
	}

	m.now = func() time.Time { return now.Add(time.Hour) }
	if _, err := m.Get(context.Background(), s.ID); !errors.Is(err, ErrExpired) {
		t.Fatalf("Get expired: got=%v", err)
	}
	if _, err := store.Load(context.Background(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session still stored: %v", err)
	}

	m.now = func() time.Time { return now }
	s, _ = m.Login(context.Background(), "owner@example.com", "pw")
	if err := m.Logout(context.Background(), s.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := m.Logout(context.Background(), s.ID); err != nil {
		t.Fatalf("Logout twice: %v", err)
	}
	if _, err := m.Get(context.Background(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after logout: got=%v", err)
	}
}

func TestSessionCan(t *testing.T) {
	s := &Session{Permissions: []string{"orders:view", "menu:*"}}
	cases := map[string]bool{
		"orders:view": true,
		"orders:edit": false,
		"menu:delete": true,
		"menuitems:x": false,
		"users:view":  false,
		"":            true,
	}
	for action, want := range cases {
		if got := s.Can(action); got != want {
			t.Fatalf("Can(%q): got=%v want=%v", action, got, want)
		}
	}
	if !(&Session{Permissions: []string{"*"}}).Can("anything:at-all") {
		t.Fatalf("global wildcard should grant everything")
	}
	var nilSession *Session
	if nilSession.Can("orders:view") {
		t.Fatalf("nil session should grant nothing")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis session store tests")
	}
	store, err := NewRedisStore(logger.NewNop(), RedisConfig{Addr: addr, Prefix: "test:admin:session:"})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	s := &Session{ID: "redis-1", Token: "tok", User: operator(), ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "tok" || got.User.Email != "owner@example.com" {
		t.Fatalf("Load: got=%+v", got)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after delete: got=%v", err)
	}
}

func TestMemoryStoreDropsExpiredSessionsOnSave(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore().(*memoryStore)
	store.now = func() time.Time { return now }
	auth := &fakeAuth{result: backend.LoginResult{Token: "opaque", User: operator()}}
	m := NewManager(logger.NewNop(), store, auth, time.Minute)
	m.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		if _, err := m.Login(context.Background(), "owner@example.com", "pw"); err != nil {
			t.Fatalf("Login %d: %v", i, err)
		}
	}
	if len(store.sessions) != 1000 {
		t.Fatalf("live sessions: got=%d want=1000", len(store.sessions))
	}

	now = now.Add(time.Hour)
	s, err := m.Login(context.Background(), "owner@example.com", "pw")
	if err != nil {
		t.Fatalf("Login after ttl: %v", err)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("sessions after ttl: got=%d want=1", len(store.sessions))
	}
	if _, err := store.Load(context.Background(), s.ID); err != nil {
		t.Fatalf("fresh session dropped: %v", err)
	}
}
