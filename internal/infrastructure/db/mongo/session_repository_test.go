package mongo

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

func TestDecodeSession_RoundTrip(t *testing.T) {
	in := &domain.Session{
		Profile: domain.Profile{
			ID:         7,
			Username:   "alice",
			FirstName:  "Alice",
			IsComplete: true,
		},
		Token:         "tok-1",
		Authenticated: true,
		ExpiresAt:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out, err := decodeSession(payload)
	if err != nil {
		t.Fatalf("decodeSession returned error: %v", err)
	}
	if out.Profile.Username != "alice" || out.Token != "tok-1" || !out.Authenticated {
		t.Fatalf("unexpected decoded session: %+v", out)
	}
	if !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("expiry drifted: %v", out.ExpiresAt)
	}
}

func TestSessionTTLIndex(t *testing.T) {
	idx := sessionTTLIndex(7 * 24 * time.Hour)

	keys, ok := idx.Keys.(bson.D)
	if !ok || len(keys) != 1 || keys[0].Key != "updated_at" {
		t.Fatalf("ttl index must key on updated_at, got %+v", idx.Keys)
	}
	if idx.Options == nil || idx.Options.ExpireAfterSeconds == nil {
		t.Fatalf("ttl index must set an expiry")
	}
	if got := *idx.Options.ExpireAfterSeconds; got != 7*24*60*60 {
		t.Fatalf("expiry is %d seconds, want the token ttl", got)
	}
}

func TestDecodeSession_CorruptPayload(t *testing.T) {
	for _, payload := range []string{
		"",
		"{not json",
		`"just a string with the wrong shape and type"`,
	} {
		if _, err := decodeSession([]byte(payload)); !errors.Is(err, domain.ErrSessionCorrupt) {
			t.Fatalf("payload %q: expected ErrSessionCorrupt, got %v", payload, err)
		}
	}
}
