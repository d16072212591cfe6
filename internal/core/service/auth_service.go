package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthService implements the session lifecycle over the token store, session
// repository, and upstream platform API. It holds no per-session state of its
// own: every operation derives the current state from storage, which keeps
// the gateway stateless across instances.
type AuthService struct {
	tokens   ports.TokenStore
	sessions ports.SessionRepository
	upstream ports.Upstream
	audit    ports.AuditSink
	tokenTTL time.Duration
	flight   singleflight.Group
	log      zerolog.Logger
}

func NewAuthService(
	tokens ports.TokenStore,
	sessions ports.SessionRepository,
	upstream ports.Upstream,
	audit ports.AuditSink,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		tokens:   tokens,
		sessions: sessions,
		upstream: upstream,
		audit:    audit,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// SignIn exchanges credentials for a token, then builds and persists the
// session record. The token write always precedes the profile fetch; if the
// fetch fails the token is rolled back so no partial session survives.
func (s *AuthService) SignIn(ctx context.Context, sid, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.upstream.Login(ctx, username, password)
	if err != nil {
		s.log.Debug().Str("username", username).Err(err).Msg("sign-in rejected")
		return nil, err
	}

	sess, err := s.establish(ctx, sid, token)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEvent{Kind: domain.EventSignIn, Subject: username, UserID: sess.Profile.ID})
	return sess, nil
}

// PrivateSignIn authenticates with an opaque private-access key. Concurrent
// duplicate calls for the same key share a single upstream exchange rather
// than relying on caller discipline. Only the exchange is deduplicated: each
// caller persists the shared token under its own sid, so every successful
// call leaves a session that hydrates.
func (s *AuthService) PrivateSignIn(ctx context.Context, sid, key string) (*domain.Session, error) {
	if key == "" {
		return nil, domain.ErrInvalidCredentials
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		return s.upstream.PrivateLogin(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	token := v.(string)

	sess, err := s.establish(ctx, sid, token)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEvent{Kind: domain.EventPrivateSignIn, Subject: sess.Profile.Username, UserID: sess.Profile.ID})
	return sess, nil
}

// SignUp registers the user upstream and immediately signs in with the
// just-registered credentials.
func (s *AuthService) SignUp(ctx context.Context, sid string, in ports.SignUpInput) (*domain.Session, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.upstream.CreateUser(ctx, in); err != nil {
		return nil, err
	}

	sess, err := s.SignIn(ctx, sid, in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEvent{Kind: domain.EventSignUp, Subject: in.Username, UserID: sess.Profile.ID})
	return sess, nil
}

// SignOut destroys both stored copies. Calling it with no session present
// produces the same end state.
func (s *AuthService) SignOut(ctx context.Context, sid string) error {
	subject := sid
	if sess, err := s.sessions.Load(ctx, sid); err == nil && sess.Valid() {
		subject = sess.Profile.Username
	}

	if err := s.clear(ctx, sid); err != nil {
		return err
	}

	s.record(domain.AuthEvent{Kind: domain.EventSignOut, Subject: subject})
	return nil
}

// Refresh re-fetches the authoritative profile for the stored token and
// overwrites the session record. Without a token it is a no-op.
func (s *AuthService) Refresh(ctx context.Context, sid string) (*domain.Session, error) {
	token, err := s.tokens.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("refresh: read token: %w", err)
	}

	profile, err := s.upstream.FetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	sess := s.buildSession(profile, token)
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		return nil, fmt.Errorf("refresh: save session: %w", err)
	}
	return sess, nil
}

// UpdateProfile forwards a partial profile edit upstream, then refreshes the
// stored record so the gateway reflects authoritative server state rather
// than the optimistic edit.
func (s *AuthService) UpdateProfile(ctx context.Context, sid string, patch map[string]any) (*domain.Session, error) {
	token, err := s.tokens.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update profile: read token: %w", err)
	}

	profile, err := s.upstream.UpdateProfile(ctx, token, patch)
	if err != nil {
		return nil, err
	}

	sess := s.buildSession(profile, token)
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		return nil, fmt.Errorf("update profile: save session: %w", err)
	}
	return sess, nil
}

// Hydrate restores the session from storage, trusting cached data without a
// network round trip. A stale token is revealed by the first authenticated
// call through the 401 policy. Corrupt or half-present state is cleared and
// treated as anonymous.
func (s *AuthService) Hydrate(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}

	sess, err := s.sessions.Load(ctx, sid)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil, nil
	case errors.Is(err, domain.ErrSessionCorrupt):
		s.log.Warn().Str("sid", sid).Msg("corrupt session record, clearing")
		if clearErr := s.clear(ctx, sid); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("hydrate: %w", err)
	}

	token, err := s.tokens.Get(ctx, sid)
	if err != nil || token == "" || !sess.Valid() {
		// Half-authenticated state does not survive: drop the record so the
		// session is fully absent.
		if clearErr := s.clear(ctx, sid); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	return sess, nil
}

// Invalidate implements the authorization-loss policy: any 401 destroys the
// session regardless of which call triggered it.
func (s *AuthService) Invalidate(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.clear(ctx, sid); err != nil {
		return err
	}
	s.record(domain.AuthEvent{Kind: domain.EventTokenRejected, Subject: sid})
	return nil
}

// establish runs the token-then-profile sequence shared by all sign-in
// variants, moving the session from pending to present.
func (s *AuthService) establish(ctx context.Context, sid, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ttl := tokenTTL(token, s.tokenTTL)
	if err := s.tokens.Set(ctx, sid, token, ttl); err != nil {
		return nil, fmt.Errorf("establish: persist token: %w", err)
	}

	profile, err := s.upstream.FetchProfile(ctx, token)
	if err != nil {
		_ = s.tokens.Clear(ctx, sid)
		return nil, err
	}

	sess := s.buildSession(profile, token)
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		_ = s.tokens.Clear(ctx, sid)
		return nil, fmt.Errorf("establish: save session: %w", err)
	}

	s.log.Info().Str("username", profile.Username).Int64("user_id", profile.ID).
		Bool("complete", profile.IsComplete).Msg("session established")
	return sess, nil
}

func (s *AuthService) buildSession(profile *domain.Profile, token string) *domain.Session {
	return &domain.Session{
		Profile:       *profile,
		Token:         token,
		Authenticated: true,
		ExpiresAt:     time.Now().UTC().Add(tokenTTL(token, s.tokenTTL)),
	}
}

// clear removes both stored copies together, keeping them in lockstep.
func (s *AuthService) clear(ctx context.Context, sid string) error {
	if err := s.tokens.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *AuthService) record(ev domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	s.audit.Record(ev)
}
