package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"mechalung/internal/domain/entity"
	"mechalung/internal/domain/repository"
	"mechalung/internal/domain/service"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository fakes ---

type fakeDoctorRepo struct {
	createFn         func(ctx context.Context, doctor *entity.Doctor) error
	findByUsernameFn func(ctx context.Context, username string) (*entity.Doctor, error)
	listFn           func(ctx context.Context) ([]*entity.Doctor, error)
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	return f.createFn(ctx, doctor)
}

func (f *fakeDoctorRepo) FindByUsername(ctx context.Context, username string) (*entity.Doctor, error) {
	return f.findByUsernameFn(ctx, username)
}

func (f *fakeDoctorRepo) List(ctx context.Context) ([]*entity.Doctor, error) {
	return f.listFn(ctx)
}

type fakePatientRepo struct {
	createFn       func(ctx context.Context, record *entity.PatientRecord) error
	findByIDFn     func(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error)
	listByDoctorFn func(ctx context.Context, doctorID uuid.UUID) ([]*entity.PatientRecord, error)
	saveFn         func(ctx context.Context, record *entity.PatientRecord) error
	deleteFn       func(ctx context.Context, id, doctorID uuid.UUID) error

	forUpdateCalls int
}

func (f *fakePatientRepo) Create(ctx context.Context, record *entity.PatientRecord) error {
	return f.createFn(ctx, record)
}

func (f *fakePatientRepo) FindByID(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error) {
	return f.findByIDFn(ctx, id, doctorID)
}

func (f *fakePatientRepo) FindByIDForUpdate(ctx context.Context, id, doctorID uuid.UUID) (*entity.PatientRecord, error) {
	f.forUpdateCalls++

	return f.findByIDFn(ctx, id, doctorID)
}

func (f *fakePatientRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*entity.PatientRecord, error) {
	return f.listByDoctorFn(ctx, doctorID)
}

func (f *fakePatientRepo) Save(ctx context.Context, record *entity.PatientRecord) error {
	return f.saveFn(ctx, record)
}

func (f *fakePatientRepo) Delete(ctx context.Context, id, doctorID uuid.UUID) error {
	return f.deleteFn(ctx, id, doctorID)
}

// fakeTxManager runs the callback against the provided repositories without a
// real transaction. It records whether Execute was invoked.
type fakeTxManager struct {
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	executed    bool
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	f.executed = true

	return fn(f)
}

func (f *fakeTxManager) DoctorRepo() repository.DoctorRepository {
	return f.doctorRepo
}

func (f *fakeTxManager) PatientRepo() repository.PatientRepository {
	return f.patientRepo
}

// --- service fakes ---

type fakeHasher struct {
	hashFn  func(password string) (string, error)
	checkFn func(password, hash string) bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(password)
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	if f.checkFn != nil {
		return f.checkFn(password, hash)
	}

	return hash == "hashed:"+password
}

type fakeTokenService struct {
	issueFn    func(subject string, ttl time.Duration) (string, error)
	validateFn func(token string) (string, error)
	ttl        time.Duration
}

func (f *fakeTokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(subject, ttl)
	}

	return "token-for-" + subject, nil
}

func (f *fakeTokenService) Validate(token string) (string, error) {
	if f.validateFn != nil {
		return f.validateFn(token)
	}

	return "", service.ErrInvalidToken
}

func (f *fakeTokenService) AccessTokenTTL() time.Duration {
	if f.ttl != 0 {
		return f.ttl
	}

	return 30 * time.Minute
}

// fakeCipher reverses the plaintext, making ciphertext visibly distinct while
// keeping round trips trivial to assert.
type fakeCipher struct {
	encryptErr error
	decryptErr error
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

func (f *fakeCipher) Encrypt(plaintext string) (string, error) {
	if f.encryptErr != nil {
		return "", f.encryptErr
	}

	return reverse(plaintext), nil
}

func (f *fakeCipher) Decrypt(ciphertext string) (string, error) {
	if f.decryptErr != nil {
		return "", f.decryptErr
	}

	return reverse(ciphertext), nil
}

type fakeClassifier struct {
	label      bool
	confidence float64
	err        error
	calls      int
	lastInput  service.FeatureVector
}

func (f *fakeClassifier) Classify(features service.FeatureVector) (bool, float64, error) {
	f.calls++
	f.lastInput = features

	if f.err != nil {
		return false, 0, f.err
	}

	return f.label, f.confidence, nil
}
