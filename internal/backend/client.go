// Package backend talks to the restaurant platform's REST API.
//
// Every upstream response is an envelope:
//
//	{"success": true, "data": <payload>, "message": "optional"}
//
// Payloads are decoded into domain types and validated before they are
// returned; a payload that does not decode or validate is reported as
// ErrMalformedPayload and never handed to a caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/restaurant-admin/internal/observability"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

const maxResponseBytes = 8 << 20

// ErrMalformedPayload is wrapped when an upstream payload cannot be decoded
// into its typed record or fails validation.
var ErrMalformedPayload = errors.New("malformed payload")

// Error is a request the backend answered but refused: a non-2xx status or an
// envelope with success=false.
type Error struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// StatusOf returns the upstream status carried by err, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}

// Envelope is the wire wrapper around every upstream response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides the default instrumented transport. Tests use it.
	Transport http.RoundTripper
}

type Client struct {
	log     *logger.Logger
	baseURL *url.URL
	http    *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", raw)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	return &Client{
		log:     log.With("client", "BackendClient"),
		baseURL: base,
		http:    &http.Client{Timeout: timeout, Transport: transport},
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one call and returns the raw envelope data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := ctxutil.BackendToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if rid := ctxutil.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.Current().ObserveUpstream(method, resourceOf(path), "error", time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	observability.Current().ObserveUpstream(method, resourceOf(path), strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.log.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var env Envelope[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Method: method, Path: path, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s %s: envelope: %v", ErrMalformedPayload, method, path, decodeErr)
	}
	if !env.Success {
		return nil, &Error{Status: resp.StatusCode, Method: method, Path: path, Message: env.Message}
	}
	return env.Data, nil
}

// resourceOf keeps the collection segment of path for metric labels.
func resourceOf(path string) string {
	first, _, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")
	return "/" + first
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}
