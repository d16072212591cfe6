package ports

import (
	"context"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

// AuthService orchestrates the session lifecycle. It is the only component
// that mutates the TokenStore and SessionRepository; the HTTP layer mirrors
// its mutations into the cookie copies.
type AuthService interface {
	SignIn(ctx context.Context, sid, username, password string) (*domain.Session, error)
	PrivateSignIn(ctx context.Context, sid, key string) (*domain.Session, error)
	SignUp(ctx context.Context, sid string, in SignUpInput) (*domain.Session, error)
	// SignOut clears both stores. Idempotent: signing out an absent session
	// is not an error.
	SignOut(ctx context.Context, sid string) error
	// Refresh re-fetches the profile for an existing token. When no token is
	// stored it is a no-op and returns (nil, nil).
	Refresh(ctx context.Context, sid string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, sid string, patch map[string]any) (*domain.Session, error)
	// Hydrate restores the session from storage without contacting the
	// network. Anonymous or unrecoverable state yields (nil, nil).
	Hydrate(ctx context.Context, sid string) (*domain.Session, error)
	// Invalidate is the global authorization-loss policy hook: it destroys
	// the stored session unconditionally.
	Invalidate(ctx context.Context, sid string) error
}
