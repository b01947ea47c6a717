// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"mechalung/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new doctor account.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required for a doctor to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// DoctorOutput is the caller-safe view of a doctor account. It never carries
// the password hash.
type DoctorOutput struct {
	ID        uuid.UUID
	Username  string
	IsActive  bool
	CreatedAt time.Time
}

// LoginOutput returns the issued session token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	Doctor      *DoctorOutput
}

// AccountUsecase defines the interface for doctor account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new doctor account with a hashed password.
	Register(ctx context.Context, input RegisterInput) (*DoctorOutput, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Authenticate resolves a bearer token to the doctor it was issued to.
	// Any failure, including a deactivated account, reports an invalid token.
	Authenticate(ctx context.Context, token string) (*entity.Doctor, error)

	// ListDoctors returns all registered doctor accounts.
	ListDoctors(ctx context.Context) ([]*DoctorOutput, error)
}
