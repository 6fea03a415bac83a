package httpx

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated user's id, set by AuthnMiddleware.
	CtxKeyUserID ctxKey = "user_id"
)

// Middleware is a standard http.Handler wrapper.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h in declaration order (the first middleware
// listed is the outermost one).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// UserIDFromContext returns the authenticated user id, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ContextWithUserID attaches an authenticated user id for downstream
// handlers. Exposed for tests.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}
