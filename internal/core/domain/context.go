package domain

import "context"

type contextKey struct{ name string }

var sessionIDKey = contextKey{"session_id"}

// WithSessionID attaches the gateway session id to the context so that layers
// below the HTTP boundary (upstream client, 401 policy) can reach it.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sid)
}

// SessionIDFromContext returns the gateway session id, if one was attached.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok && sid != ""
}
