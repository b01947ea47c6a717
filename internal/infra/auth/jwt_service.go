// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"mechalung/config"
	"mechalung/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   []byte        // Symmetric HS256 signing secret, read-only after construction.
	tokenTTL time.Duration // Lifetime of issued session tokens.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:   []byte(cfg.SecretKey.Token),
		tokenTTL: cfg.Auth.TokenTTL,
	}, nil
}

// Issue creates a signed token binding the subject and an absolute expiry.
func (s *jwtService) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate verifies the signature and expiry of a token and returns its subject.
// All failure modes collapse into service.ErrInvalidToken.
func (s *jwtService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", service.ErrInvalidToken
	}

	// The jwt library allows a token at its exact expiry instant; the contract
	// here is strict less-than, so re-check the claim explicitly.
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return "", service.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", service.ErrInvalidToken
	}

	return claims.Subject, nil
}

// AccessTokenTTL returns the configured lifetime for session tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.tokenTTL
}
