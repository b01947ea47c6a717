// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"mechalung/internal/domain/entity"
)

// ErrDoctorNotFound is a domain-specific error returned when a doctor is not found.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository defines the standard operations for doctor persistence.
// The application layer will depend on this interface, not the concrete implementation.
type DoctorRepository interface {
	// Create persists a new doctor. Returns a conflict error when the username
	// is already taken.
	Create(ctx context.Context, doctor *entity.Doctor) error

	// FindByUsername retrieves a single doctor by username (case-sensitive).
	FindByUsername(ctx context.Context, username string) (*entity.Doctor, error)

	// List returns all registered doctors.
	List(ctx context.Context) ([]*entity.Doctor, error)
}
