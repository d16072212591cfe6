package handler

import (
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/api/middleware"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

// NewAPIProxy reverse-proxies /api/* to the platform API, injecting the
// stored bearer token for the caller's session. A 401 coming back runs the
// same global invalidation policy as the typed client and forces navigation
// to the sign-in entry point — callers cannot opt out.
func NewAPIProxy(target *url.URL, tokens ports.TokenStore, svc ports.AuthService, log zerolog.Logger) echo.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(target)

	proxy.ModifyResponse = func(resp *http.Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}

		ctx := resp.Request.Context()
		sid, ok := domain.SessionIDFromContext(ctx)
		if ok {
			if err := svc.Invalidate(ctx, sid); err != nil {
				log.Error().Err(err).Str("sid", sid).Msg("session invalidation failed")
			}
			metrics.SessionInvalidationsTotal.WithLabelValues("token_rejected").Inc()
		}

		// Replace the upstream body with a bare redirect and expire both
		// cookies so the browser lands on sign-in with a clean slate.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(strings.NewReader(""))
		resp.ContentLength = 0
		resp.Header = http.Header{}
		resp.Header.Set("Location", domain.SignInPath)
		resp.Header.Set("Content-Length", "0")
		expireCookieHeader(resp.Header, middleware.SessionCookieName)
		expireCookieHeader(resp.Header, middleware.TokenCookieName)
		resp.StatusCode = http.StatusFound
		resp.Status = http.StatusText(http.StatusFound)
		return nil
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("api proxy error")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	}

	return func(c echo.Context) error {
		req := c.Request()
		sid := middleware.SessionIDFromRequest(c)
		ctx := domain.WithSessionID(req.Context(), sid)

		// Never forward browser-supplied Authorization; the stored token is
		// authoritative.
		req.Header.Del("Authorization")
		if sid != "" {
			if token, err := tokens.Get(ctx, sid); err == nil {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		proxy.ServeHTTP(c.Response(), req.WithContext(ctx))
		return nil
	}
}

func expireCookieHeader(h http.Header, name string) {
	cookie := http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	h.Add("Set-Cookie", cookie.String())
}
