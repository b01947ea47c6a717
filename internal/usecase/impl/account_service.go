// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"mechalung/config"
	deliverycontext "mechalung/internal/delivery/context"
	"mechalung/internal/domain/entity"
	domainerrors "mechalung/internal/domain/errors"
	"mechalung/internal/domain/repository"
	"mechalung/internal/domain/service"
	"mechalung/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxPasswordBytes is bcrypt's input limit. bcrypt reads at most 72 bytes and
// errors on longer input instead of truncating, so the limit is enforced here
// as a validation failure rather than surfacing as an internal error.
const maxPasswordBytes = 72

// accountService implements the AccountUsecase interface.
type accountService struct {
	doctorRepo   repository.DoctorRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	DoctorRepo   repository.DoctorRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		doctorRepo:   params.DoctorRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new doctor account. The username must be unused; the
// conflict surfaces from the unique index rather than a racy pre-check.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.DoctorOutput, error) {
	srv.log(ctx).Info("Starting doctor registration", slog.String("username", input.Username))

	// The HTTP validator caps the password at 72 characters, but a multi-byte
	// password can still exceed 72 bytes. Reject it here before hashing.
	if len(input.Password) > maxPasswordBytes {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password exceeds 72 bytes")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newDoctor := &entity.Doctor{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	// Single insert, so no explicit transaction is needed.
	if err := srv.doctorRepo.Create(ctx, newDoctor); err != nil {
		srv.log(ctx).Warn("Failed to create doctor", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create doctor during registration")
	}

	srv.log(ctx).Debug("Doctor registered", slog.Any("doctorID", newDoctor.ID))

	return toDoctorOutput(newDoctor), nil
}

// Login verifies credentials and issues a session token. Unknown username,
// wrong password, and deactivated account all collapse into the same
// invalid-credentials error so callers cannot probe for registered usernames.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting doctor login", slog.String("username", input.Username))

	doctor, err := srv.doctorRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			// Burn a hash comparison anyway so the response time does not
			// reveal whether the username exists.
			srv.hasher.Check(input.Password, "")
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find doctor by username")
	}

	if !srv.hasher.Check(input.Password, doctor.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !doctor.IsActive {
		srv.log(ctx).Warn("Login rejected for deactivated account", slog.Any("doctorID", doctor.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	ttl := srv.tokenService.AccessTokenTTL()
	accessToken, err := srv.tokenService.Issue(doctor.Username, ttl)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Doctor logged in successfully", slog.Any("doctorID", doctor.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   ttl,
		Doctor:      toDoctorOutput(doctor),
	}, nil
}

// Authenticate resolves a bearer token to its doctor. Token failures, unknown
// subjects, and deactivated accounts all report the same invalid-token error.
func (srv *accountService) Authenticate(ctx context.Context, token string) (*entity.Doctor, error) {
	username, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token validation failed")
	}

	doctor, err := srv.doctorRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token subject not found")
		}

		return nil, errors.Wrap(err, "failed to find doctor for token subject")
	}

	if !doctor.IsActive {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "account deactivated")
	}

	return doctor, nil
}

// ListDoctors returns all registered doctor accounts.
func (srv *accountService) ListDoctors(ctx context.Context) ([]*usecase.DoctorOutput, error) {
	doctors, err := srv.doctorRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list doctors", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list doctors")
	}

	outputs := make([]*usecase.DoctorOutput, 0, len(doctors))
	for _, doctor := range doctors {
		outputs = append(outputs, toDoctorOutput(doctor))
	}

	return outputs, nil
}

// toDoctorOutput maps a doctor entity to its caller-safe view.
func toDoctorOutput(doctor *entity.Doctor) *usecase.DoctorOutput {
	if doctor == nil {
		return nil
	}

	return &usecase.DoctorOutput{
		ID:        doctor.ID,
		Username:  doctor.Username,
		IsActive:  doctor.IsActive,
		CreatedAt: doctor.CreatedAt,
	}
}
