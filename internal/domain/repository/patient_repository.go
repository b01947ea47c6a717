package repository

import (
	"context"
	"errors"

	"mechalung/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when a patient record does not exist for the
// given doctor. A record owned by another doctor yields the same error, so the
// caller cannot tell "absent" from "not yours".
var ErrRecordNotFound = errors.New("patient record not found")

// PatientRepository defines the standard operations for patient record
// persistence. Every read and write is scoped to an owning doctor id.
type PatientRepository interface {
	// Create persists a new patient record tagged with its owning doctor.
	Create(ctx context.Context, record *entity.PatientRecord) error

	// FindByID retrieves a record by id, restricted to the given owner.
	FindByID(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error)

	// FindByIDForUpdate is FindByID holding a row lock until the surrounding
	// transaction ends, so concurrent read-merge-write sequences serialize
	// instead of overwriting each other. Only meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error)

	// ListByDoctor retrieves all records owned by the given doctor.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.PatientRecord, error)

	// Save overwrites an existing record in full.
	Save(ctx context.Context, record *entity.PatientRecord) error

	// Delete removes a record by id, restricted to the given owner.
	// Deletion is immediate and unrecoverable.
	Delete(ctx context.Context, id, doctorID uuid.UUID) error
}
