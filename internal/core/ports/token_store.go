package ports

import (
	"context"
	"time"
)

// TokenStore holds the durable copy of the bearer token, keyed by the gateway
// session id. The cookie copy is derived from it at the HTTP boundary; the two
// are written and cleared in lockstep.
type TokenStore interface {
	Set(ctx context.Context, sid, token string, ttl time.Duration) error
	// Get returns the stored token, or domain.ErrTokenNotFound when absent.
	Get(ctx context.Context, sid string) (string, error)
	Clear(ctx context.Context, sid string) error
}
