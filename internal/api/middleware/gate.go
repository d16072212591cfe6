package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

// SessionCookieName identifies the gateway session. It is minted on
// successful auth and keys both stored copies of the session.
const SessionCookieName = "sid"

// sessionContextKey is where the gate leaves the hydrated session for page
// handlers (pro-public enrichment).
const sessionContextKey = "session"

// CompletionGate hydrates the session from storage and redirects
// authenticated-but-incomplete profiles to the completion flow. The
// completion path itself always passes, so the redirect fires at most once
// per navigation. This is the authoritative check behind the best-effort
// edge guard.
func CompletionGate(svc ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if domain.GuardSkipped(path) {
				return next(c)
			}

			sid := SessionIDFromRequest(c)
			if sid == "" {
				return next(c)
			}

			ctx := domain.WithSessionID(c.Request().Context(), sid)
			sess, err := svc.Hydrate(ctx, sid)
			if err != nil {
				log.Warn().Err(err).Str("sid", sid).Msg("session hydration failed")
				return next(c)
			}
			if sess == nil {
				return next(c)
			}

			log.Debug().Str("sid", sid).Str("state", string(domain.StateOf(sess))).Msg("session hydrated")
			c.Set(sessionContextKey, sess)

			if sess.Authenticated && !sess.Profile.IsComplete && path != domain.CompletionPath {
				metrics.GateRedirectsTotal.Inc()
				return c.Redirect(http.StatusFound, domain.CompletionPath)
			}

			return next(c)
		}
	}
}

// SessionIDFromRequest returns the gateway session id cookie value, or "".
func SessionIDFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionFromContext returns the session hydrated by the gate, if any.
func SessionFromContext(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(*domain.Session)
	return sess, ok && sess != nil
}
