// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"mechalung/internal/delivery/http/middleware"
	"mechalung/internal/delivery/http/response"
	"mechalung/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DoctorHandler holds dependencies for doctor account handlers.
type DoctorHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewDoctorHandler is the constructor for DoctorHandler, injected by Fx.
func NewDoctorHandler(uc usecase.AccountUsecase, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{
		uc:     uc,
		logger: logger,
	}
}

// registerRequest is the wire shape of a registration call. The password cap
// matches bcrypt's 72-byte input limit; anything longer would fail to hash.
type registerRequest struct {
	Username string `json:"user_name" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// loginRequest is the wire shape of a login call.
type loginRequest struct {
	Username string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// doctorResponse is the caller-safe wire shape of a doctor account.
type doctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"user_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// loginResponse carries the issued bearer token.
type loginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        *doctorResponse `json:"user"`
}

func toDoctorResponse(output *usecase.DoctorOutput) *doctorResponse {
	if output == nil {
		return nil
	}

	return &doctorResponse{
		ID:        output.ID,
		Username:  output.Username,
		IsActive:  output.IsActive,
		CreatedAt: output.CreatedAt,
	}
}

// Register handles the doctor registration request.
func (h *DoctorHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toDoctorResponse(output), "Doctor registered successfully")
}

// Login handles the doctor login request.
func (h *DoctorHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &loginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   int64(output.ExpiresIn.Seconds()),
		User:        toDoctorResponse(output.Doctor),
	}, "Login successful")
}

// Me returns the account behind the presented bearer token.
func (h *DoctorHandler) Me(c echo.Context) error {
	doctor := middleware.CurrentDoctor(c)
	if doctor == nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	return response.Success(c, http.StatusOK, &doctorResponse{
		ID:        doctor.ID,
		Username:  doctor.Username,
		IsActive:  doctor.IsActive,
		CreatedAt: doctor.CreatedAt,
	}, "Profile retrieved successfully")
}

// List returns all registered doctor accounts.
func (h *DoctorHandler) List(c echo.Context) error {
	outputs, err := h.uc.ListDoctors(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	doctors := make([]*doctorResponse, 0, len(outputs))
	for _, output := range outputs {
		doctors = append(doctors, toDoctorResponse(output))
	}

	return response.Success(c, http.StatusOK, doctors, "Doctors retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
