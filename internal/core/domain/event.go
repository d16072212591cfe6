package domain

import "time"

// AuthEventKind labels an entry in the auth audit trail.
type AuthEventKind string

const (
	EventSignIn        AuthEventKind = "sign_in"
	EventPrivateSignIn AuthEventKind = "private_sign_in"
	EventSignUp        AuthEventKind = "sign_up"
	EventSignOut       AuthEventKind = "sign_out"
	EventTokenRejected AuthEventKind = "token_rejected"
)

// AuthEvent records a single auth lifecycle occurrence. Events are written
// asynchronously; losing one never affects the auth outcome itself.
type AuthEvent struct {
	Kind       AuthEventKind `json:"kind"`
	Subject    string        `json:"subject"` // username, or session id when anonymous
	UserID     int64         `json:"user_id,omitempty"`
	Source     string        `json:"source,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
