package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.NewNop(), Config{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "data": data, "message": msg})
}

func TestGetListDecodesAndForwardsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/branches" {
			t.Errorf("path: got=%q", r.URL.Path)
		}
		if got := r.URL.Query().Get("restaurant_id"); got != "3" {
			t.Errorf("query: got=%q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("authorization: got=%q", got)
		}
		if got := r.Header.Get("X-Request-Id"); got != "req-1" {
			t.Errorf("request id: got=%q", got)
		}
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{"id": 1, "name": "Downtown", "is_active": true},
			{"id": "b-2", "name": "Airport"},
		}, "")
	})

	ctx := ctxutil.WithAuthData(context.Background(), &ctxutil.AuthData{BackendToken: "tok-1"})
	ctx = ctxutil.WithTraceData(ctx, &ctxutil.TraceData{RequestID: "req-1"})

	branches := NewResources(c).Branches
	got, err := branches.List(ctx, url.Values{"restaurant_id": {"3"}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "b-2" || !got[0].IsActive {
		t.Fatalf("List: got=%+v", got)
	}
}

func TestGetListNullDataIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, nil, "")
	})
	got, err := GetList[domain.Branch](context.Background(), c, PathBranches, nil)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("GetList: got=%#v want empty slice", got)
	}
}

func TestGetListRejectsMalformed(t *testing.T) {
	cases := map[string]any{
		"missing name": []map[string]any{{"id": 1}},
		"wrong shape":  map[string]any{"id": 1},
		"bad id":       []map[string]any{{"id": true, "name": "x"}},
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, true, data, "")
			})
			_, err := GetList[domain.Branch](context.Background(), c, PathBranches, nil)
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("got err=%v want ErrMalformedPayload", err)
			}
		})
	}
}

func TestUnsuccessfulEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, nil, "branch limit reached")
	})
	_, err := NewResources(c).Branches.Create(context.Background(), map[string]string{"name": "x"})
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("got err=%v want *Error", err)
	}
	if be.Message != "branch limit reached" || be.Method != http.MethodPost {
		t.Fatalf("error: got=%+v", be)
	}
}

func TestNon2xxStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, nil, "order not found")
	})
	_, err := NewResources(c).Orders.Get(context.Background(), "42")
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("status: got=%d err=%v", StatusOf(err), err)
	}
}

func TestNon2xxWithoutEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	err := NewResources(c).Users.Delete(context.Background(), "9")
	if StatusOf(err) != http.StatusBadGateway {
		t.Fatalf("status: got=%d err=%v", StatusOf(err), err)
	}
}

func TestUpdateSendsBodyToItemPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/menu-items/5" {
			t.Errorf("request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeEnvelope(w, http.StatusOK, true, map[string]any{"id": 5, "name": body["name"], "price": 250}, "")
	})
	got, err := NewResources(c).MenuItems.Update(context.Background(), "5", map[string]any{"name": "Margherita"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Margherita" || got.Price != 250 {
		t.Fatalf("Update: got=%+v", got)
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path: got=%q", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, true, map[string]any{
			"token": "backend-token",
			"user": map[string]any{
				"id": 1, "name": "Owner", "email": "owner@example.com",
				"role": map[string]any{"id": 1, "name": "Admin", "permissions": []map[string]any{{"id": 1, "action": "orders:view"}}},
			},
		}, "")
	})
	res, err := c.Login(context.Background(), "owner@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "backend-token" || len(res.User.Actions()) != 1 {
		t.Fatalf("Login: got=%+v", res)
	}
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative"} {
		if _, err := NewClient(logger.NewNop(), Config{BaseURL: raw}); err == nil {
			t.Fatalf("%q: want error", raw)
		}
	}
}
