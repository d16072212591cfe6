package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

type captureService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	seen   chan struct{}
}

func newCaptureService(expected int) *captureService {
	return &captureService{seen: make(chan struct{}, expected)}
}

func (s *captureService) Process(_ context.Context, ev domain.AuthEvent) error {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	s.seen <- struct{}{}
	return nil
}

func (s *captureService) wait(t *testing.T, n int) []domain.AuthEvent {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuthEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newCaptureService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuthEvent{Kind: domain.EventSignIn, Subject: "alice"})
	d.Record(domain.AuthEvent{Kind: domain.EventSignOut, Subject: "bob"})
	d.Record(domain.AuthEvent{Kind: domain.EventSignUp, Subject: "carol"})

	events := svc.wait(t, 3)
	kinds := map[domain.AuthEventKind]bool{}
	for _, ev := range events {
		kinds[ev.Kind] = true
	}
	for _, want := range []domain.AuthEventKind{domain.EventSignIn, domain.EventSignOut, domain.EventSignUp} {
		if !kinds[want] {
			t.Fatalf("event %s never delivered, got %v", want, events)
		}
	}
}

func TestDispatcher_SameSubjectStaysOrdered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 20
	svc := newCaptureService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < n; i++ {
		kind := domain.EventSignIn
		if i%2 == 1 {
			kind = domain.EventSignOut
		}
		d.Record(domain.AuthEvent{Kind: kind, Subject: "alice", UserID: int64(i)})
	}

	events := svc.wait(t, n)
	for i, ev := range events {
		if ev.UserID != int64(i) {
			t.Fatalf("events for one subject reordered: position %d carries id %d", i, ev.UserID)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())
	for _, subject := range []string{"alice", "bob", "", "sid-1234"} {
		a := d.shardIndex(subject)
		b := d.shardIndex(subject)
		if a != b {
			t.Fatalf("subject %q mapped to both %d and %d", subject, a, b)
		}
		if a < 0 || a >= len(d.workers) {
			t.Fatalf("subject %q mapped out of range: %d", subject, a)
		}
	}
}
