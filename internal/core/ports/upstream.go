package ports

import (
	"context"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

// SignUpInput carries the registration payload forwarded to the platform API.
type SignUpInput struct {
	Username         string
	FirstName        string
	LastName         string
	Email            string
	Password         string
	BrandPreferences []string
}

// Upstream is the platform API as consumed by the gateway. Credential
// rejections map to domain.ErrInvalidCredentials, authorization loss on
// authenticated calls to domain.ErrUnauthorized, and transport failures to
// domain.ErrUpstreamUnavailable. No call is retried.
type Upstream interface {
	Login(ctx context.Context, username, password string) (string, error)
	PrivateLogin(ctx context.Context, key string) (string, error)
	CreateUser(ctx context.Context, in SignUpInput) error
	FetchProfile(ctx context.Context, token string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, token string, patch map[string]any) (*domain.Profile, error)
}
