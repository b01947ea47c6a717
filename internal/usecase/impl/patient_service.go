package impl

import (
	"context"
	"log/slog"

	deliverycontext "mechalung/internal/delivery/context"
	"mechalung/internal/domain/entity"
	domainerrors "mechalung/internal/domain/errors"
	"mechalung/internal/domain/repository"
	"mechalung/internal/domain/service"
	"mechalung/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// patientService implements the PatientUsecase interface.
type patientService struct {
	txManager   repository.TransactionManager
	patientRepo repository.PatientRepository
	cipher      service.FieldCipher
	classifier  service.RiskClassifier
	logger      *slog.Logger
}

// PatientServiceParams holds dependencies for patientService, injected by Fx.
type PatientServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PatientRepo repository.PatientRepository
	Cipher      service.FieldCipher
	Classifier  service.RiskClassifier
	Logger      *slog.Logger
}

// NewPatientService is the constructor for patientService. It receives all dependencies as interfaces.
func NewPatientService(params PatientServiceParams) usecase.PatientUsecase {
	return &patientService{
		txManager:   params.TxManager,
		patientRepo: params.PatientRepo,
		cipher:      params.Cipher,
		classifier:  params.Classifier,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *patientService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create encrypts the patient name, classifies the clinical features, and
// persists the record. Classification runs before the insert; when the
// classifier fails, nothing is written.
func (srv *patientService) Create(ctx context.Context, doctorID uuid.UUID, input usecase.PatientInput) (*usecase.PatientOutput, error) {
	srv.log(ctx).Debug("Creating patient record", slog.Any("doctorID", doctorID))

	ciphertext, err := srv.cipher.Encrypt(input.Name)
	if err != nil {
		srv.log(ctx).Error("Failed to encrypt patient name", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to encrypt patient name")
	}

	features := featuresFromInput(input)

	label, confidence, err := srv.classifier.Classify(service.EncodeFeatures(features))
	if err != nil {
		srv.log(ctx).Error("Risk classification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrClassifierUnavailable, "risk classification failed")
	}

	record := &entity.PatientRecord{
		NameCiphertext:       ciphertext,
		ClinicalFeatures:     features,
		LungCancer:           label,
		PredictionConfidence: &confidence,
		DoctorID:             doctorID,
	}

	// Single insert, so no explicit transaction is needed.
	if err := srv.patientRepo.Create(ctx, record); err != nil {
		srv.log(ctx).Error("Failed to create patient record", slog.Any("doctorID", doctorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create patient record")
	}

	srv.log(ctx).Debug("Patient record created", slog.Any("recordID", record.ID), slog.Any("doctorID", doctorID))

	return srv.toPatientOutput(ctx, record), nil
}

// Get retrieves a single owned record with the name decrypted.
func (srv *patientService) Get(ctx context.Context, doctorID, id uuid.UUID) (*usecase.PatientOutput, error) {
	record, err := srv.patientRepo.FindByID(ctx, id, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPatientNotFound, "patient record lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find patient record")
	}

	return srv.toPatientOutput(ctx, record), nil
}

// List retrieves all records owned by the doctor.
func (srv *patientService) List(ctx context.Context, doctorID uuid.UUID) ([]*usecase.PatientOutput, error) {
	records, err := srv.patientRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		srv.log(ctx).Error("Failed to list patient records", slog.Any("doctorID", doctorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list patient records")
	}

	outputs := make([]*usecase.PatientOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, srv.toPatientOutput(ctx, record))
	}

	return outputs, nil
}

// Update applies a partial update inside one transaction: read, merge, and
// write stay atomic so two concurrent patches cannot interleave. Any clinical
// field in the patch triggers re-classification of the fully merged feature
// set; the new label and confidence commit together with the field change.
func (srv *patientService) Update(ctx context.Context, doctorID, id uuid.UUID, patch usecase.PatientPatch) (*usecase.PatientOutput, error) {
	srv.log(ctx).Debug("Updating patient record", slog.Any("recordID", id), slog.Any("doctorID", doctorID))

	var updated *entity.PatientRecord
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		patientRepo := repoFactory.PatientRepo()

		// The row stays locked until commit, so a concurrent patch against the
		// same record waits here instead of merging against a stale snapshot.
		record, err := patientRepo.FindByIDForUpdate(ctx, id, doctorID)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return errors.Wrap(domainerrors.ErrPatientNotFound, "patient record lookup failed")
			}

			return errors.Wrap(err, "failed to find patient record")
		}

		if patch.Name != nil {
			ciphertext, err := srv.cipher.Encrypt(*patch.Name)
			if err != nil {
				return errors.Wrap(err, "failed to encrypt patient name")
			}
			record.NameCiphertext = ciphertext
		}

		applyPatch(&record.ClinicalFeatures, patch)

		if patch.HasClinicalField() {
			label, confidence, err := srv.classifier.Classify(service.EncodeFeatures(record.ClinicalFeatures))
			if err != nil {
				return errors.Wrap(domainerrors.ErrClassifierUnavailable, "risk classification failed")
			}
			record.LungCancer = label
			record.PredictionConfidence = &confidence
		}

		if err := patientRepo.Save(ctx, record); err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return errors.Wrap(domainerrors.ErrPatientNotFound, "patient record vanished during update")
			}

			return errors.Wrap(err, "failed to save patient record")
		}

		updated = record

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update patient record", slog.Any("recordID", id), slog.Any("doctorID", doctorID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Patient record updated", slog.Any("recordID", id), slog.Any("doctorID", doctorID))

	return srv.toPatientOutput(ctx, updated), nil
}

// Delete permanently removes an owned record.
func (srv *patientService) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	if err := srv.patientRepo.Delete(ctx, id, doctorID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return errors.Wrap(domainerrors.ErrPatientNotFound, "patient record lookup failed")
		}

		srv.log(ctx).Error("Failed to delete patient record", slog.Any("recordID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete patient record")
	}

	srv.log(ctx).Debug("Patient record deleted", slog.Any("recordID", id), slog.Any("doctorID", doctorID))

	return nil
}

// toPatientOutput maps a record to its caller-facing view, decrypting the
// name. A decryption failure is logged and surfaces as a fixed placeholder;
// it never fails the request.
func (srv *patientService) toPatientOutput(ctx context.Context, record *entity.PatientRecord) *usecase.PatientOutput {
	name, err := srv.cipher.Decrypt(record.NameCiphertext)
	if err != nil {
		srv.log(ctx).Warn("Failed to decrypt patient name",
			slog.Any("recordID", record.ID),
			slog.Any("error", err),
		)
		name = service.EncryptedPlaceholder
	}

	return &usecase.PatientOutput{
		ID:                   record.ID,
		Name:                 name,
		Age:                  record.Age,
		BiologicalGender:     record.BiologicalGender,
		Smoking:              record.Smoking,
		YellowFingers:        record.YellowFingers,
		Anxiety:              record.Anxiety,
		PeerPressure:         record.PeerPressure,
		ChronicDisease:       record.ChronicDisease,
		Fatigue:              record.Fatigue,
		Allergy:              record.Allergy,
		Wheezing:             record.Wheezing,
		Alcohol:              record.Alcohol,
		Coughing:             record.Coughing,
		ShortnessOfBreath:    record.ShortnessOfBreath,
		SwallowingDifficulty: record.SwallowingDifficulty,
		ChestPain:            record.ChestPain,
		LungCancer:           record.LungCancer,
		PredictionConfidence: record.PredictionConfidence,
		DoctorID:             record.DoctorID,
		CreatedAt:            record.CreatedAt,
	}
}

// featuresFromInput maps the full create input to clinical features.
func featuresFromInput(input usecase.PatientInput) entity.ClinicalFeatures {
	return entity.ClinicalFeatures{
		Age:                  input.Age,
		BiologicalGender:     input.BiologicalGender,
		Smoking:              input.Smoking,
		YellowFingers:        input.YellowFingers,
		Anxiety:              input.Anxiety,
		PeerPressure:         input.PeerPressure,
		ChronicDisease:       input.ChronicDisease,
		Fatigue:              input.Fatigue,
		Allergy:              input.Allergy,
		Wheezing:             input.Wheezing,
		Alcohol:              input.Alcohol,
		Coughing:             input.Coughing,
		ShortnessOfBreath:    input.ShortnessOfBreath,
		SwallowingDifficulty: input.SwallowingDifficulty,
		ChestPain:            input.ChestPain,
	}
}

// applyPatch merges non-nil patch fields into the stored features.
func applyPatch(features *entity.ClinicalFeatures, patch usecase.PatientPatch) {
	if patch.Age != nil {
		features.Age = *patch.Age
	}
	if patch.BiologicalGender != nil {
		features.BiologicalGender = *patch.BiologicalGender
	}
	if patch.Smoking != nil {
		features.Smoking = *patch.Smoking
	}
	if patch.YellowFingers != nil {
		features.YellowFingers = *patch.YellowFingers
	}
	if patch.Anxiety != nil {
		features.Anxiety = *patch.Anxiety
	}
	if patch.PeerPressure != nil {
		features.PeerPressure = *patch.PeerPressure
	}
	if patch.ChronicDisease != nil {
		features.ChronicDisease = *patch.ChronicDisease
	}
	if patch.Fatigue != nil {
		features.Fatigue = *patch.Fatigue
	}
	if patch.Allergy != nil {
		features.Allergy = *patch.Allergy
	}
	if patch.Wheezing != nil {
		features.Wheezing = *patch.Wheezing
	}
	if patch.Alcohol != nil {
		features.Alcohol = *patch.Alcohol
	}
	if patch.Coughing != nil {
		features.Coughing = *patch.Coughing
	}
	if patch.ShortnessOfBreath != nil {
		features.ShortnessOfBreath = *patch.ShortnessOfBreath
	}
	if patch.SwallowingDifficulty != nil {
		features.SwallowingDifficulty = *patch.SwallowingDifficulty
	}
	if patch.ChestPain != nil {
		features.ChestPain = *patch.ChestPain
	}
}
