package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/auth-gateway/internal/api/middleware"
)

// writeAuthCookies mirrors a freshly established session into the browser:
// the sid cookie keys the stored copies, the access_token cookie is the
// derived copy the edge guard reads. Both are written together so the pair
// stays in lockstep with the stores.
func writeAuthCookies(c echo.Context, sid, token string, expires time.Time) {
	secure := c.Request().TLS != nil || c.Scheme() == "https"

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sid,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both cookies together.
func clearAuthCookies(c echo.Context) {
	for _, name := range []string{middleware.SessionCookieName, middleware.TokenCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
