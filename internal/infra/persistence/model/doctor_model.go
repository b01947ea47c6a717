package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorModel mirrors the 'doctors' table.
type DoctorModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time

	PatientRecords []PatientRecordModel `gorm:"foreignKey:DoctorID"`
}

// TableName explicitly sets the table name for GORM.
func (DoctorModel) TableName() string {
	return "doctors"
}
