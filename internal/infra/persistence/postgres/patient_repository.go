package postgres

import (
	"context"

	"mechalung/internal/domain/entity"
	domainerrors "mechalung/internal/domain/errors"
	"mechalung/internal/domain/repository"
	"mechalung/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// patientRepository implements the domain.PatientRepository interface using GORM.
// Every query carries the owning doctor id in its WHERE clause, so a record
// owned by another doctor behaves exactly like one that does not exist.
type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository is the constructor for patientRepository.
func NewPatientRepository(db *gorm.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

// Create persists a new patient record tagged with its owning doctor.
func (repo *patientRepository) Create(ctx context.Context, record *entity.PatientRecord) error {
	recordM := fromPatientDomain(record)
	if recordM.ID == uuid.Nil {
		recordM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required patient information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create patient record")
	}

	record.ID = recordM.ID
	record.CreatedAt = recordM.CreatedAt

	return nil
}

// FindByID retrieves a record by id, restricted to the given owner.
func (repo *patientRepository) FindByID(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error) {
	var recordM model.PatientRecordModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&recordM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find patient record by id")
	}

	return toPatientDomain(&recordM), nil
}

// FindByIDForUpdate retrieves a record with SELECT ... FOR UPDATE. The row
// lock is released when the surrounding transaction commits or rolls back.
func (repo *patientRepository) FindByIDForUpdate(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error) {
	var recordM model.PatientRecordModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&recordM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find patient record for update")
	}

	return toPatientDomain(&recordM), nil
}

// ListByDoctor retrieves all records owned by the given doctor.
func (repo *patientRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.PatientRecord, error) {
	var recordMs []model.PatientRecordModel
	err := repo.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at ASC").
		Find(&recordMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list patient records")
	}

	records := make([]*entity.PatientRecord, 0, len(recordMs))
	for i := range recordMs {
		records = append(records, toPatientDomain(&recordMs[i]))
	}

	return records, nil
}

// Save overwrites an existing record in full. The update is owner-scoped; a
// save against a record the doctor does not own updates nothing and reports
// not found.
func (repo *patientRepository) Save(ctx context.Context, record *entity.PatientRecord) error {
	recordM := fromPatientDomain(record)

	result := repo.db.WithContext(ctx).
		Model(&model.PatientRecordModel{}).
		Where("id = ? AND doctor_id = ?", record.ID, record.DoctorID).
		Select("*").
		Omit("id", "doctor_id", "created_at").
		Updates(recordM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update patient record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// Delete removes a record by id, restricted to the given owner.
func (repo *patientRepository) Delete(ctx context.Context, id, doctorID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Delete(&model.PatientRecordModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete patient record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPatientDomain converts a GORM PatientRecordModel to a domain PatientRecord entity.
func toPatientDomain(data *model.PatientRecordModel) *entity.PatientRecord {
	if data == nil {
		return nil
	}

	return &entity.PatientRecord{
		ID:             data.ID,
		NameCiphertext: data.NameEncrypted,
		ClinicalFeatures: entity.ClinicalFeatures{
			Age:                  data.Age,
			BiologicalGender:     data.BiologicalGender,
			Smoking:              data.Smoking,
			YellowFingers:        data.YellowFingers,
			Anxiety:              data.Anxiety,
			PeerPressure:         data.PeerPressure,
			ChronicDisease:       data.ChronicDisease,
			Fatigue:              data.Fatigue,
			Allergy:              data.Allergy,
			Wheezing:             data.Wheezing,
			Alcohol:              data.Alcohol,
			Coughing:             data.Coughing,
			ShortnessOfBreath:    data.ShortnessOfBreath,
			SwallowingDifficulty: data.SwallowingDifficulty,
			ChestPain:            data.ChestPain,
		},
		LungCancer:           data.LungCancer,
		PredictionConfidence: data.PredictionConfidence,
		DoctorID:             data.DoctorID,
		CreatedAt:            data.CreatedAt,
	}
}

// fromPatientDomain converts a domain PatientRecord entity to a GORM PatientRecordModel.
func fromPatientDomain(data *entity.PatientRecord) *model.PatientRecordModel {
	if data == nil {
		return nil
	}

	return &model.PatientRecordModel{
		ID:                   data.ID,
		NameEncrypted:        data.NameCiphertext,
		Age:                  data.Age,
		BiologicalGender:     data.BiologicalGender,
		Smoking:              data.Smoking,
		YellowFingers:        data.YellowFingers,
		Anxiety:              data.Anxiety,
		PeerPressure:         data.PeerPressure,
		ChronicDisease:       data.ChronicDisease,
		Fatigue:              data.Fatigue,
		Allergy:              data.Allergy,
		Wheezing:             data.Wheezing,
		Alcohol:              data.Alcohol,
		Coughing:             data.Coughing,
		ShortnessOfBreath:    data.ShortnessOfBreath,
		SwallowingDifficulty: data.SwallowingDifficulty,
		ChestPain:            data.ChestPain,
		LungCancer:           data.LungCancer,
		PredictionConfidence: data.PredictionConfidence,
		DoctorID:             data.DoctorID,
	}
}
