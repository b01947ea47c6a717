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
)

// doctorRepository implements the domain.DoctorRepository interface using GORM.
type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository is the constructor for doctorRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewDoctorRepository(db *gorm.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

// Create persists a new doctor account. The unique index on username turns a
// duplicate registration into a domain conflict error.
func (repo *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	doctorM := fromDoctorDomain(doctor)
	if doctorM.ID == uuid.Nil {
		doctorM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(doctorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameTaken.WrapMessage("username already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required doctor information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create doctor")
	}

	doctor.ID = doctorM.ID
	doctor.CreatedAt = doctorM.CreatedAt

	return nil
}

// FindByUsername retrieves a single doctor by username. The lookup is
// case-sensitive; "Smith" and "smith" are distinct accounts.
func (repo *doctorRepository) FindByUsername(ctx context.Context, username string) (*entity.Doctor, error) {
	var doctorM model.DoctorModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&doctorM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDoctorNotFound
		}

		return nil, errors.Wrap(err, "failed to find doctor by username")
	}

	return toDoctorDomain(&doctorM), nil
}

// List returns all registered doctors ordered by registration time.
func (repo *doctorRepository) List(ctx context.Context) ([]*entity.Doctor, error) {
	var doctorMs []model.DoctorModel
	err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&doctorMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list doctors")
	}

	doctors := make([]*entity.Doctor, 0, len(doctorMs))
	for i := range doctorMs {
		doctors = append(doctors, toDoctorDomain(&doctorMs[i]))
	}

	return doctors, nil
}

// --- Mapper Functions ---

// toDoctorDomain converts a GORM DoctorModel to a domain Doctor entity.
func toDoctorDomain(data *model.DoctorModel) *entity.Doctor {
	if data == nil {
		return nil
	}

	return &entity.Doctor{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
	}
}

// fromDoctorDomain converts a domain Doctor entity to a GORM DoctorModel for persistence.
func fromDoctorDomain(data *entity.Doctor) *model.DoctorModel {
	if data == nil {
		return nil
	}

	return &model.DoctorModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
	}
}
