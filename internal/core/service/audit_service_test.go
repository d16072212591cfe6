package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

type stubAuditRepo struct {
	inserted []*domain.AuthEvent
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, ev *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, ev)
	return nil
}

func TestAuditProcess_Persists(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ev := domain.AuthEvent{Kind: domain.EventSignIn, Subject: "alice", UserID: 7}
	if err := svc.Process(context.Background(), ev); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.Kind != domain.EventSignIn || got.Subject != "alice" {
		t.Fatalf("unexpected stored event: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("OccurredAt must be defaulted when missing")
	}
}

func TestAuditProcess_KeepsExplicitTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := svc.Process(context.Background(), domain.AuthEvent{Kind: domain.EventSignOut, Subject: "bob", OccurredAt: at}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !repo.inserted[0].OccurredAt.Equal(at) {
		t.Fatalf("explicit timestamp overwritten: %v", repo.inserted[0].OccurredAt)
	}
}

func TestAuditProcess_MissingKind(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.AuthEvent{Subject: "alice"}); err == nil {
		t.Fatalf("expected an error for an event without a kind")
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("invalid event must not be persisted")
	}
}
