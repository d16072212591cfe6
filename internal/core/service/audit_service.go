package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// repository and counts them per kind.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single auth event.
func (s *auditService) Process(ctx context.Context, ev domain.AuthEvent) error {
	if ev.Kind == "" {
		return fmt.Errorf("process auth event: missing kind")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("process auth event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	s.log.Debug().Str("kind", string(ev.Kind)).Str("subject", ev.Subject).Msg("auth event recorded")
	return nil
}
