package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/core/domain"
)

// TokenCookieName is the browser-facing copy of the bearer token. The guard
// only ever reads this copy; the authoritative copy lives in the token store.
const TokenCookieName = "access_token"

// Guard is the edge route guard. It inspects only request metadata (path,
// token presence, referrer) and short-circuits redirects before any page
// handling runs:
//
//   - public path + token present        → redirect to the application root
//   - protected path + no token + no
//     Referer header (direct navigation) → redirect to sign-in
//   - anything else                      → pass through
//
// The referrer heuristic is best effort: client-side navigations inside an
// already-loaded app are policed by the in-app completion gate instead, which
// avoids a redirect loop when the session exists but the edge cannot see it.
func Guard(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if domain.GuardSkipped(path) {
				return next(c)
			}

			hasToken := BearerFromRequest(c) != ""

			switch domain.Classify(path) {
			case domain.RoutePublic:
				if hasToken {
					log.Debug().Str("path", path).Msg("authenticated user on public page, redirecting to root")
					metrics.GuardRedirectsTotal.WithLabelValues("authenticated_public").Inc()
					return c.Redirect(http.StatusFound, domain.RootPath)
				}
			case domain.RouteProPublic:
				// Viewable anonymously; enrichment happens in-app.
			default:
				if !hasToken && c.Request().Header.Get("Referer") == "" {
					log.Debug().Str("path", path).Msg("direct anonymous navigation, redirecting to sign-in")
					metrics.GuardRedirectsTotal.WithLabelValues("anonymous_direct").Inc()
					return c.Redirect(http.StatusFound, domain.SignInPath)
				}
			}

			return next(c)
		}
	}
}

// BearerFromRequest extracts the token from the access_token cookie, falling
// back to the Authorization header.
func BearerFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
