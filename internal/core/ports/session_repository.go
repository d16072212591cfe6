package ports

import (
	"context"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

// SessionRepository persists the last-known session record per gateway
// session id.
type SessionRepository interface {
	Save(ctx context.Context, sid string, sess *domain.Session) error
	// Load returns domain.ErrSessionNotFound when no record exists and
	// domain.ErrSessionCorrupt when the stored record cannot be decoded.
	Load(ctx context.Context, sid string) (*domain.Session, error)
	Clear(ctx context.Context, sid string) error
}
