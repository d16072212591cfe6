package domain

import (
	"errors"
	"time"
)

// SessionState represents the lifecycle state of a gateway session.
type SessionState string

const (
	StateAbsent  SessionState = "absent"
	StatePending SessionState = "pending"
	StatePresent SessionState = "present"
)

// validTransitions defines the allowed session state machine transitions.
var validTransitions = map[SessionState][]SessionState{
	StateAbsent:  {StatePending},
	StatePending: {StatePresent, StateAbsent},
	StatePresent: {StatePending, StateAbsent},
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthorized = errors.New("session no longer authorized")
var ErrTokenNotFound = errors.New("token not found")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionCorrupt = errors.New("stored session is corrupt")
var ErrUserExists = errors.New("user already exists")
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Address is the profile's physical location sub-record.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// Profile is the denormalized user record returned by the platform API.
type Profile struct {
	ID                   int64          `json:"id"`
	Username             string         `json:"username"`
	FirstName            string         `json:"first_name"`
	LastName             string         `json:"last_name"`
	Email                string         `json:"email,omitempty"`
	IsPro                bool           `json:"is_pro"`
	IsCenterAdmin        bool           `json:"is_center_admin"`
	IsTournamentDirector bool           `json:"is_tournament_director"`
	IsComplete           bool           `json:"is_complete"`
	Stats                map[string]any `json:"stats,omitempty"`
	MediaURLs            []string       `json:"media_urls,omitempty"`
	Address              *Address       `json:"address,omitempty"`
	BrandPreferences     []string       `json:"brand_preferences,omitempty"`
}

// Session is the authenticated identity mirrored to persistent storage.
// A session is either fully absent (anonymous) or fully populated: an
// authenticated session always carries a non-empty bearer token.
type Session struct {
	Profile       Profile   `json:"profile"`
	Token         string    `json:"token"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Valid reports whether the session satisfies the populated-session invariant.
func (s *Session) Valid() bool {
	return s != nil && s.Authenticated && s.Token != ""
}

// StateOf classifies a hydrated session record.
func StateOf(s *Session) SessionState {
	if s.Valid() {
		return StatePresent
	}
	return StateAbsent
}
