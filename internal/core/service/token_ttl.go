package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL derives the storage lifetime for a bearer token. The platform's
// tokens are opaque to the gateway, but when one happens to be a JWT its exp
// claim caps the lifetime so the stored copy never outlives the token. The
// parse is unverified: only the claim is read, nothing is trusted from it
// beyond shortening the TTL.
func tokenTTL(token string, fallback time.Duration) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	ttl := time.Until(exp.Time)
	if ttl <= 0 || ttl > fallback {
		return fallback
	}
	return ttl
}
