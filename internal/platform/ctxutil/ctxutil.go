package ctxutil

import "context"

type (
	traceDataKey struct{}
	authDataKey  struct{}
)

// TraceData correlates log lines and upstream calls for one request.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// RequestID returns the request ID on ctx, or "".
func RequestID(ctx context.Context) string {
	if td := GetTraceData(ctx); td != nil {
		return td.RequestID
	}
	return ""
}

// AuthData identifies the operator behind a request and the token used when
// talking to the upstream backend on their behalf.
type AuthData struct {
	SessionID    string
	UserID       string
	BackendToken string
}

func WithAuthData(ctx context.Context, ad *AuthData) context.Context {
	return context.WithValue(ctx, authDataKey{}, ad)
}

func GetAuthData(ctx context.Context) *AuthData {
	if ad, ok := ctx.Value(authDataKey{}).(*AuthData); ok {
		return ad
	}
	return nil
}

// BackendToken returns the upstream bearer token on ctx, or "".
func BackendToken(ctx context.Context) string {
	if ad := GetAuthData(ctx); ad != nil {
		return ad.BackendToken
	}
	return ""
}

// OperatorID returns the operator's user ID on ctx, or "".
func OperatorID(ctx context.Context) string {
	if ad := GetAuthData(ctx); ad != nil {
		return ad.UserID
	}
	return ""
}
