package service

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for any token that cannot be accepted: malformed
// input, bad signature, expiry reached, or missing subject. The reasons are
// deliberately not distinguished to callers.
var ErrInvalidToken = errors.New("invalid token")

// TokenService defines the interface for issuing and validating session tokens.
// Implementations are stateless; the only shared state is the read-only signing
// secret, so concurrent use needs no synchronization.
type TokenService interface {
	// Issue creates a signed token binding subject and expiry = now + ttl.
	Issue(subject string, ttl time.Duration) (string, error)

	// Validate verifies the signature and expiry and returns the subject.
	// Expiry is exclusive: a token presented at the exact expiry instant is
	// already expired. Returns ErrInvalidToken on any failure.
	Validate(token string) (string, error)

	// AccessTokenTTL returns the configured lifetime for session tokens.
	AccessTokenTTL() time.Duration
}
