package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

// Key format: token:<sid>
const tokenKeyPrefix = "token:"

// TokenStore is the durable backend of the bearer token store. Tokens expire
// with the key TTL, so an abandoned session cannot outlive its token.
type TokenStore struct {
	client *redis.Client
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Set(ctx context.Context, sid, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sid), token, ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, sid string) (string, error) {
	token, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("token get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}

func (s *TokenStore) key(sid string) string {
	return tokenKeyPrefix + sid
}
