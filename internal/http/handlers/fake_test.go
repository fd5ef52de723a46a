package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/domain"
)

type fakeUpstream[T domain.Record] struct {
	list    []T
	listErr error
	one     map[string]T
	getErr  error
	sent    T
	sendErr error

	bodies  []any
	deleted []string
}

func (f *fakeUpstream[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeUpstream[T]) Get(ctx context.Context, id string) (T, error) {
	if f.getErr != nil {
		var zero T
		return zero, f.getErr
	}
	return f.one[id], nil
}

func (f *fakeUpstream[T]) Create(ctx context.Context, body any) (T, error) {
	f.bodies = append(f.bodies, body)
	return f.sent, f.sendErr
}

func (f *fakeUpstream[T]) Update(ctx context.Context, id string, body any) (T, error) {
	f.bodies = append(f.bodies, body)
	return f.sent, f.sendErr
}

func (f *fakeUpstream[T]) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type stubUploader struct {
	url string
	err error
	got []byte
}

func (s *stubUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	b, _ := io.ReadAll(file)
	s.got = b
	return s.url, s.err
}

// openGate lets every request through and records the actions asked for.
func openGate(seen *[]string) Gate {
	return func(action string) gin.HandlerFunc {
		*seen = append(*seen, action)
		return func(c *gin.Context) { c.Next() }
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v body=%s", err, rec.Body.String())
		}
	}
	return rec, env
}
