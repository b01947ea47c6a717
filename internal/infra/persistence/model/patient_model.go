package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientRecordModel mirrors the 'patient_records' table. The name column
// holds ciphertext only; DoctorID is an indexed owner foreign key so all
// queries can be scoped by tenant.
type PatientRecordModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	NameEncrypted string    `gorm:"column:name_encrypted;type:text;not null"`

	Age                  int  `gorm:"not null"`
	BiologicalGender     bool `gorm:"not null"`
	Smoking              bool `gorm:"not null"`
	YellowFingers        bool `gorm:"not null"`
	Anxiety              bool `gorm:"not null"`
	PeerPressure         bool `gorm:"not null"`
	ChronicDisease       bool `gorm:"not null"`
	Fatigue              bool `gorm:"not null"`
	Allergy              bool `gorm:"not null"`
	Wheezing             bool `gorm:"not null"`
	Alcohol              bool `gorm:"not null"`
	Coughing             bool `gorm:"not null"`
	ShortnessOfBreath    bool `gorm:"not null"`
	SwallowingDifficulty bool `gorm:"not null"`
	ChestPain            bool `gorm:"not null"`

	LungCancer           bool `gorm:"not null"`
	PredictionConfidence *float64

	DoctorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PatientRecordModel) TableName() string {
	return "patient_records"
}
