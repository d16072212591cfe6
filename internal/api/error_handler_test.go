package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/courtside/auth-gateway/internal/core/domain"
)

func handleErr(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return rec, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "session expired"},
		{domain.ErrSessionNotFound, http.StatusUnauthorized, "not authenticated"},
		{domain.ErrTokenNotFound, http.StatusUnauthorized, "not authenticated"},
		{domain.ErrSessionCorrupt, http.StatusUnauthorized, "not authenticated"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrUpstreamUnavailable, http.StatusBadGateway, "upstream unavailable"},
	}

	for _, tc := range cases {
		rec, msg := handleErr(t, tc.err)
		if rec.Code != tc.wantCode || msg != tc.wantMsg {
			t.Fatalf("%v: got (%d, %q), want (%d, %q)", tc.err, rec.Code, msg, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("fetch profile: %w", domain.ErrUnauthorized)
	rec, msg := handleErr(t, wrapped)
	if rec.Code != http.StatusUnauthorized || msg != "session expired" {
		t.Fatalf("wrapped error not unwrapped: got (%d, %q)", rec.Code, msg)
	}
}

func TestErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec, msg := handleErr(t, echo.NewHTTPError(http.StatusBadRequest, "username is required"))
	if rec.Code != http.StatusBadRequest || msg != "username is required" {
		t.Fatalf("got (%d, %q), want (400, username is required)", rec.Code, msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, msg := handleErr(t, errors.New("redis connection pool exhausted"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}
