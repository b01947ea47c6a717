package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalFeatures is the full set of patient fields the risk model consumes.
// BiologicalGender is true for male, matching the training data encoding.
type ClinicalFeatures struct {
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

// PatientRecord is a single patient's intake data plus the derived risk
// classification. The patient name is held only as ciphertext; plaintext never
// reaches durable storage.
type PatientRecord struct {
	ID            uuid.UUID
	NameCiphertext string // Opaque authenticated-encrypted blob, base64-encoded.
	ClinicalFeatures

	// LungCancer and PredictionConfidence are written together, atomically with
	// the feature change that triggered classification. PredictionConfidence is
	// nil only before the first classification has run.
	LungCancer           bool
	PredictionConfidence *float64

	DoctorID  uuid.UUID // Owning doctor. Records are never shared across tenants.
	CreatedAt time.Time
}
