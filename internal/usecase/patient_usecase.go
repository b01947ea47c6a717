package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PatientInput defines the data required to create a patient record. All
// fields are mandatory on create.
type PatientInput struct {
	Name                 string
	Age                  int
	BiologicalGender     bool
	Smoking              bool
	YellowFingers        bool
	Anxiety              bool
	PeerPressure         bool
	ChronicDisease       bool
	Fatigue              bool
	Allergy              bool
	Wheezing             bool
	Alcohol              bool
	Coughing             bool
	ShortnessOfBreath    bool
	SwallowingDifficulty bool
	ChestPain            bool
}

// PatientPatch defines a partial update. Nil fields keep their stored value.
// If any clinical field is present, the record is re-classified against the
// fully merged feature set before the update is committed.
type PatientPatch struct {
	Name                 *string
	Age                  *int
	BiologicalGender     *bool
	Smoking              *bool
	YellowFingers        *bool
	Anxiety              *bool
	PeerPressure         *bool
	ChronicDisease       *bool
	Fatigue              *bool
	Allergy              *bool
	Wheezing             *bool
	Alcohol              *bool
	Coughing             *bool
	ShortnessOfBreath    *bool
	SwallowingDifficulty *bool
	ChestPain            *bool
}

// HasClinicalField reports whether the patch touches any field the risk model
// consumes. Name-only patches do not trigger re-classification.
func (p PatientPatch) HasClinicalField() bool {
	return p.Age != nil || p.BiologicalGender != nil ||
		p.Smoking != nil || p.YellowFingers != nil || p.Anxiety != nil ||
		p.PeerPressure != nil || p.ChronicDisease != nil || p.Fatigue != nil ||
		p.Allergy != nil || p.Wheezing != nil || p.Alcohol != nil ||
		p.Coughing != nil || p.ShortnessOfBreath != nil ||
		p.SwallowingDifficulty != nil || p.ChestPain != nil
}

// PatientOutput is the decrypted, caller-facing view of a patient record.
// Name holds the decrypted plaintext, or a fixed placeholder when the stored
// ciphertext can no longer be decrypted.
type PatientOutput struct {
	ID                   uuid.UUID
	Name                 string
	Age                  int
	BiologicalGender     bool
	Smoking              bool
	YellowFingers        bool
	Anxiety              bool
	PeerPressure         bool
	ChronicDisease       bool
	Fatigue              bool
	Allergy              bool
	Wheezing             bool
	Alcohol              bool
	Coughing             bool
	ShortnessOfBreath    bool
	SwallowingDifficulty bool
	ChestPain            bool
	LungCancer           bool
	PredictionConfidence *float64
	DoctorID             uuid.UUID
	CreatedAt            time.Time
}

// PatientUsecase defines the interface for patient record operations. Every
// operation is scoped to the calling doctor; a record owned by someone else is
// indistinguishable from a missing one.
type PatientUsecase interface {
	// Create encrypts the name, classifies the clinical features, and persists
	// the record under the calling doctor.
	Create(ctx context.Context, doctorID uuid.UUID, input PatientInput) (*PatientOutput, error)

	// Get retrieves a single owned record with the name decrypted.
	Get(ctx context.Context, doctorID, id uuid.UUID) (*PatientOutput, error)

	// List retrieves all records owned by the doctor.
	List(ctx context.Context, doctorID uuid.UUID) ([]*PatientOutput, error)

	// Update applies a partial update atomically, re-classifying when clinical
	// fields change.
	Update(ctx context.Context, doctorID, id uuid.UUID, patch PatientPatch) (*PatientOutput, error)

	// Delete permanently removes an owned record.
	Delete(ctx context.Context, doctorID, id uuid.UUID) error
}
