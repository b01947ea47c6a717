// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the tenant identity of the system. Every patient record belongs to
// exactly one doctor, and a doctor can only ever see records it owns.
type Doctor struct {
	ID           uuid.UUID // Unique identifier for the doctor account.
	Username     string    // Login identifier. Case-sensitive, unique, immutable once created.
	PasswordHash string    // bcrypt hash of the password. Never serialized to callers.
	IsActive     bool      // Deactivated accounts cannot log in. Doctors are never hard-deleted.
	CreatedAt    time.Time // Timestamp of registration.
}
