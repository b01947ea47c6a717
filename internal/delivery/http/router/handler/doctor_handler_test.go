package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mechalung/internal/delivery/http/validator"
	"mechalung/internal/domain/entity"
	"mechalung/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountUsecase struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*usecase.DoctorOutput, error)
	loginFn    func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
	listFn     func(ctx context.Context) ([]*usecase.DoctorOutput, error)
}

func (f *fakeAccountUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.DoctorOutput, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeAccountUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	return f.loginFn(ctx, input)
}

func (f *fakeAccountUsecase) Authenticate(_ context.Context, _ string) (*entity.Doctor, error) {
	return nil, nil
}

func (f *fakeAccountUsecase) ListDoctors(ctx context.Context) ([]*usecase.DoctorOutput, error) {
	return f.listFn(ctx)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestDoctorHandler_Register(t *testing.T) {
	uc := &fakeAccountUsecase{
		registerFn: func(_ context.Context, input usecase.RegisterInput) (*usecase.DoctorOutput, error) {
			require.Equal(t, "drsmith", input.Username)
			require.Equal(t, "supersecret", input.Password)

			return &usecase.DoctorOutput{
				ID:        uuid.New(),
				Username:  input.Username,
				IsActive:  true,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	handler := NewDoctorHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/doctors/register",
		`{"user_name":"drsmith","password":"supersecret"}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "drsmith", data["user_name"])
	assert.Equal(t, true, data["is_active"])
	// The password hash must never appear in a response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDoctorHandler_Register_ShortPassword(t *testing.T) {
	handler := NewDoctorHandler(&fakeAccountUsecase{}, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/api/doctors/register",
		`{"user_name":"drsmith","password":"short"}`)

	err := handler.Register(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDoctorHandler_Register_OverlongPassword(t *testing.T) {
	handler := NewDoctorHandler(&fakeAccountUsecase{}, slog.Default())

	// 100 characters is past bcrypt's 72-byte input limit; validation must
	// reject it instead of letting the hasher fail with a 500.
	c, _ := newTestContext(t, http.MethodPost, "/api/doctors/register",
		`{"user_name":"drsmith","password":"`+strings.Repeat("a", 100)+`"}`)

	err := handler.Register(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDoctorHandler_Login(t *testing.T) {
	uc := &fakeAccountUsecase{
		loginFn: func(_ context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
			return &usecase.LoginOutput{
				AccessToken: "signed-token",
				TokenType:   "bearer",
				ExpiresIn:   30 * time.Minute,
				Doctor:      &usecase.DoctorOutput{ID: uuid.New(), Username: input.Username, IsActive: true},
			}, nil
		},
	}
	handler := NewDoctorHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/doctors/login",
		`{"user_name":"drsmith","password":"supersecret"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "signed-token", data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])
	assert.Equal(t, float64(1800), data["expires_in"])
}

func TestDoctorHandler_Me_Unauthenticated(t *testing.T) {
	handler := NewDoctorHandler(&fakeAccountUsecase{}, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/doctors/me", "")

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDoctorHandler_List(t *testing.T) {
	uc := &fakeAccountUsecase{
		listFn: func(_ context.Context) ([]*usecase.DoctorOutput, error) {
			return []*usecase.DoctorOutput{
				{ID: uuid.New(), Username: "drsmith", IsActive: true},
			}, nil
		},
	}
	handler := NewDoctorHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/doctors", "")

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "drsmith")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
