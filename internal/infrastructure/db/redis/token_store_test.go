package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

func testStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStore_RoundTrip(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", "tok-1", time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	token, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("got token %q, want tok-1", token)
	}
}

func TestTokenStore_MissingToken(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.Get(context.Background(), "sid-missing"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestTokenStore_Clear(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", "tok-1", time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound after clear, got %v", err)
	}

	// Clearing again is harmless.
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("repeated Clear returned error: %v", err)
	}
}

func TestTokenStore_TTLExpiry(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", "tok-1", time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected the token to expire with its key, got %v", err)
	}
}
