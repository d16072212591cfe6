// Package upstream implements the HTTP client for the Courtside platform API.
// Every authenticated call carries the bearer token; any 401 triggers the
// global session-invalidation policy regardless of call site.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

const (
	loginPath        = "/api/amateur-login"
	privateLoginPath = "/api/private-login"
	createUserPath   = "/api/create-user"
	profilePath      = "/api/user/profile"
)

// Config captures the settings for reaching the platform API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the ports.Upstream implementation. The zero value is not usable;
// construct with NewClient.
type Client struct {
	base           string
	http           *http.Client
	log            zerolog.Logger
	onUnauthorized func(ctx context.Context)
}

var _ ports.Upstream = (*Client)(nil)

// NewClient builds a Client with a fixed request timeout. Exceeding it
// surfaces as domain.ErrUpstreamUnavailable; there are no retries.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// SetOnUnauthorized installs the authorization-loss hook. It runs before any
// 401 from an authenticated call is returned to the caller; callers cannot
// opt out. Wired after construction to break the client/service cycle.
func (c *Client) SetOnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	return c.exchangeToken(ctx, "login", loginPath, body)
}

func (c *Client) PrivateLogin(ctx context.Context, key string) (string, error) {
	body := map[string]string{"private_key": key}
	return c.exchangeToken(ctx, "private_login", privateLoginPath, body)
}

func (c *Client) CreateUser(ctx context.Context, in ports.SignUpInput) error {
	body := map[string]any{
		"username":          in.Username,
		"first_name":        in.FirstName,
		"last_name":         in.LastName,
		"email":             in.Email,
		"password":          in.Password,
		"brand_preferences": in.BrandPreferences,
	}

	resp, err := c.do(ctx, "create_user", http.MethodPost, createUserPath, "", body)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrUserExists
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return domain.ErrInvalidCredentials
	case resp.StatusCode >= 500:
		return fmt.Errorf("create user: upstream status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}
	return nil
}

func (c *Client) FetchProfile(ctx context.Context, token string) (*domain.Profile, error) {
	resp, err := c.do(ctx, "profile", http.MethodGet, profilePath, token, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkAuthenticated(ctx, resp, "fetch profile"); err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("fetch profile: decode: %w", err)
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, patch map[string]any) (*domain.Profile, error) {
	resp, err := c.do(ctx, "profile", http.MethodPut, profilePath, token, patch)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := c.checkAuthenticated(ctx, resp, "update profile"); err != nil {
		return nil, err
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("update profile: decode: %w", err)
	}
	return &profile, nil
}

// exchangeToken posts credentials and extracts the access token. Non-2xx is a
// credential rejection; the caller never learns anything finer-grained.
func (c *Client) exchangeToken(ctx context.Context, name, path string, body any) (string, error) {
	resp, err := c.do(ctx, name, http.MethodPost, path, "", body)
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("%s: upstream status %d: %w", name, resp.StatusCode, domain.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrInvalidCredentials
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode: %w", name, err)
	}
	if out.AccessToken == "" {
		return "", domain.ErrInvalidCredentials
	}
	return out.AccessToken, nil
}

// checkAuthenticated applies the global 401 policy for authenticated calls.
func (c *Client) checkAuthenticated(ctx context.Context, resp *http.Response, op string) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.log.Warn().Str("op", op).Msg("upstream rejected bearer token")
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return domain.ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: upstream status %d: %w", op, resp.StatusCode, domain.ErrUpstreamUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s: upstream status %d", op, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, name, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(name, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s: %w: %v", name, domain.ErrUpstreamUnavailable, err)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(name, statusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())

	return resp, nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
