package handler

import "github.com/courtside/auth-gateway/internal/core/domain"

// --- Request / Response types ---

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type privateSignInRequest struct {
	PrivateKey string `json:"private_key" validate:"required"`
}

type signUpRequest struct {
	Username         string   `json:"username"   validate:"required,min=3,max=30"`
	FirstName        string   `json:"first_name" validate:"required"`
	LastName         string   `json:"last_name"  validate:"required"`
	Email            string   `json:"email"      validate:"required,email"`
	Password         string   `json:"password"   validate:"required,min=8"`
	BrandPreferences []string `json:"brand_preferences,omitempty"`
}

type updateProfileRequest map[string]any

// sessionResponse is returned by every operation that yields a live session.
// Complete tells the caller whether to route into the main app or into the
// profile-completion flow.
type sessionResponse struct {
	User     domain.Profile `json:"user"`
	Complete bool           `json:"complete"`
}
