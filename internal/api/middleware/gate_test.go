package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

// stubAuthService only hydrates; the rest of the interface is unused by the
// gate.
type stubAuthService struct {
	sessions map[string]*domain.Session
	err      error
}

func (s *stubAuthService) SignIn(context.Context, string, string, string) (*domain.Session, error) {
	panic("not used")
}
func (s *stubAuthService) PrivateSignIn(context.Context, string, string) (*domain.Session, error) {
	panic("not used")
}
func (s *stubAuthService) SignUp(context.Context, string, ports.SignUpInput) (*domain.Session, error) {
	panic("not used")
}
func (s *stubAuthService) SignOut(context.Context, string) error { panic("not used") }
func (s *stubAuthService) Refresh(context.Context, string) (*domain.Session, error) {
	panic("not used")
}
func (s *stubAuthService) UpdateProfile(context.Context, string, map[string]any) (*domain.Session, error) {
	panic("not used")
}
func (s *stubAuthService) Invalidate(context.Context, string) error { panic("not used") }

func (s *stubAuthService) Hydrate(_ context.Context, sid string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[sid], nil
}

func sessionWith(complete bool) *domain.Session {
	return &domain.Session{
		Profile:       domain.Profile{ID: 7, Username: "alice", IsComplete: complete},
		Token:         "tok-1",
		Authenticated: true,
	}
}

func runGate(t *testing.T, svc ports.AuthService, req *http.Request) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reachedNext := false
	handler := CompletionGate(svc, zerolog.Nop())(func(c echo.Context) error {
		reachedNext = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec, c, reachedNext
}

func TestGate_IncompleteProfileRedirects(t *testing.T) {
	svc := &stubAuthService{sessions: map[string]*domain.Session{"sid-1": sessionWith(false)}}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})

	rec, _, reachedNext := runGate(t, svc, req)
	if reachedNext {
		t.Fatalf("incomplete profile must be redirected, not passed through")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != domain.CompletionPath {
		t.Fatalf("got %d %q, want 302 %s", rec.Code, rec.Header().Get("Location"), domain.CompletionPath)
	}
}

func TestGate_CompletionPageNeverLoops(t *testing.T) {
	svc := &stubAuthService{sessions: map[string]*domain.Session{"sid-1": sessionWith(false)}}

	req := httptest.NewRequest(http.MethodGet, domain.CompletionPath, nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})

	_, _, reachedNext := runGate(t, svc, req)
	if !reachedNext {
		t.Fatalf("the completion page itself must always render")
	}
}

func TestGate_CompleteProfilePasses(t *testing.T) {
	svc := &stubAuthService{sessions: map[string]*domain.Session{"sid-1": sessionWith(true)}}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})

	_, c, reachedNext := runGate(t, svc, req)
	if !reachedNext {
		t.Fatalf("complete profile must pass through")
	}

	sess, ok := SessionFromContext(c)
	if !ok || sess.Profile.Username != "alice" {
		t.Fatalf("hydrated session must be available to handlers")
	}
}

func TestGate_AnonymousPasses(t *testing.T) {
	svc := &stubAuthService{sessions: map[string]*domain.Session{}}

	// No sid cookie at all.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	_, c, reachedNext := runGate(t, svc, req)
	if !reachedNext {
		t.Fatalf("anonymous request must pass through")
	}
	if _, ok := SessionFromContext(c); ok {
		t.Fatalf("no session must be set for anonymous requests")
	}

	// A sid cookie pointing at nothing hydrates as anonymous.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-gone"})
	if _, _, reachedNext := runGate(t, svc, req); !reachedNext {
		t.Fatalf("stale sid must hydrate as anonymous and pass through")
	}
}

func TestGate_HydrationFailureDegradesOpen(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrUpstreamUnavailable}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})

	_, _, reachedNext := runGate(t, svc, req)
	if !reachedNext {
		t.Fatalf("a storage failure must not block page traffic")
	}
}

func TestGate_SkipsNonPageTraffic(t *testing.T) {
	svc := &stubAuthService{sessions: map[string]*domain.Session{"sid-1": sessionWith(false)}}

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})

	_, _, reachedNext := runGate(t, svc, req)
	if !reachedNext {
		t.Fatalf("API traffic must bypass the gate")
	}
}
