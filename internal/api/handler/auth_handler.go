package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/courtside/auth-gateway/internal/api/metrics"
	"github.com/courtside/auth-gateway/internal/api/middleware"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

type AuthHandler struct {
	svc ports.AuthService
}

func NewAuthHandler(svc ports.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignIn authenticates with username and password.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A fresh sid per authentication; an old anonymous id never becomes an
	// authenticated one.
	sid := uuid.NewString()
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.SignIn(ctx, sid, req.Username, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("password", signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("password", "success").Inc()

	writeAuthCookies(c, sid, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

// PrivateSignIn authenticates with an opaque private-access key. This is the
// same-origin proxy for the private-login flow: the key never goes to the
// platform API directly from the browser.
//
// @Summary      Private-link sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      privateSignInRequest  true  "Private access key"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/private [post]
func (h *AuthHandler) PrivateSignIn(c echo.Context) error {
	var req privateSignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sid := uuid.NewString()
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.PrivateSignIn(ctx, sid, req.PrivateKey)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("private", signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("private", "success").Inc()

	writeAuthCookies(c, sid, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

// SignUp registers a new account and signs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sid := uuid.NewString()
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.SignUp(ctx, sid, ports.SignUpInput{
		Username:         req.Username,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         req.Password,
		BrandPreferences: req.BrandPreferences,
	})
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("signup", signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("signup", "success").Inc()

	writeAuthCookies(c, sid, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusCreated, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

// SignOut destroys the session. Idempotent: succeeds with or without one.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204  "session destroyed"
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	sid := middleware.SessionIDFromRequest(c)
	if sid != "" {
		ctx := domain.WithSessionID(c.Request().Context(), sid)
		if err := h.svc.SignOut(ctx, sid); err != nil {
			return err
		}
		metrics.SessionInvalidationsTotal.WithLabelValues("sign_out").Inc()
	}

	clearAuthCookies(c)
	return c.NoContent(http.StatusNoContent)
}

// Refresh re-fetches the authoritative profile. Without a stored token it is
// a no-op returning 204.
//
// @Summary      Refresh session profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Success      204  "no session to refresh"
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	sid := middleware.SessionIDFromRequest(c)
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.Refresh(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			clearAuthCookies(c)
		}
		return err
	}
	if sess == nil {
		return c.NoContent(http.StatusNoContent)
	}

	writeAuthCookies(c, sid, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

// UpdateProfile forwards a partial profile edit upstream and refreshes the
// stored record.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Partial profile"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var patch updateProfileRequest
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sid := middleware.SessionIDFromRequest(c)
	if sid == "" {
		return domain.ErrSessionNotFound
	}
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.UpdateProfile(ctx, sid, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			clearAuthCookies(c)
		}
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

// Session returns the hydrated session for the current sid without touching
// the network.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sid := middleware.SessionIDFromRequest(c)
	ctx := domain.WithSessionID(c.Request().Context(), sid)

	sess, err := h.svc.Hydrate(ctx, sid)
	if err != nil {
		return err
	}
	if sess == nil {
		clearAuthCookies(c)
		return domain.ErrSessionNotFound
	}

	return c.JSON(http.StatusOK, sessionResponse{User: sess.Profile, Complete: sess.Profile.IsComplete})
}

func signInResult(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "upstream_error"
}
