package ports

import (
	"context"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

// AuditRepository persists auth trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.AuthEvent) error
}

// AuditService processes a single auth event end to end.
type AuditService interface {
	Process(ctx context.Context, ev domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous processing. Record never blocks
// the caller beyond the dispatcher's channel buffer.
type AuditSink interface {
	Record(ev domain.AuthEvent)
}
