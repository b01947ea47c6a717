package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"mechalung/internal/domain/entity"
	"mechalung/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientUsecase struct {
	createFn func(ctx context.Context, doctorID uuid.UUID, input usecase.PatientInput) (*usecase.PatientOutput, error)
	getFn    func(ctx context.Context, doctorID, id uuid.UUID) (*usecase.PatientOutput, error)
	listFn   func(ctx context.Context, doctorID uuid.UUID) ([]*usecase.PatientOutput, error)
	updateFn func(ctx context.Context, doctorID, id uuid.UUID, patch usecase.PatientPatch) (*usecase.PatientOutput, error)
	deleteFn func(ctx context.Context, doctorID, id uuid.UUID) error
}

func (f *fakePatientUsecase) Create(ctx context.Context, doctorID uuid.UUID, input usecase.PatientInput) (*usecase.PatientOutput, error) {
	return f.createFn(ctx, doctorID, input)
}

func (f *fakePatientUsecase) Get(ctx context.Context, doctorID, id uuid.UUID) (*usecase.PatientOutput, error) {
	return f.getFn(ctx, doctorID, id)
}

func (f *fakePatientUsecase) List(ctx context.Context, doctorID uuid.UUID) ([]*usecase.PatientOutput, error) {
	return f.listFn(ctx, doctorID)
}

func (f *fakePatientUsecase) Update(ctx context.Context, doctorID, id uuid.UUID, patch usecase.PatientPatch) (*usecase.PatientOutput, error) {
	return f.updateFn(ctx, doctorID, id, patch)
}

func (f *fakePatientUsecase) Delete(ctx context.Context, doctorID, id uuid.UUID) error {
	return f.deleteFn(ctx, doctorID, id)
}

func setDoctor(c echo.Context, doctorID uuid.UUID) {
	c.Set("doctor", &entity.Doctor{ID: doctorID, Username: "drsmith", IsActive: true})
}

func TestPatientHandler_Create(t *testing.T) {
	doctorID := uuid.New()
	uc := &fakePatientUsecase{
		createFn: func(_ context.Context, owner uuid.UUID, input usecase.PatientInput) (*usecase.PatientOutput, error) {
			require.Equal(t, doctorID, owner)
			require.Equal(t, "Jane Roe", input.Name)
			require.Equal(t, 61, input.Age)
			require.True(t, input.Smoking)

			confidence := 0.91

			return &usecase.PatientOutput{
				ID:                   uuid.New(),
				Name:                 input.Name,
				Age:                  input.Age,
				Smoking:              input.Smoking,
				LungCancer:           true,
				PredictionConfidence: &confidence,
			}, nil
		},
	}
	handler := NewPatientHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/patients",
		`{"name":"Jane Roe","age":61,"smoking":true}`)
	setDoctor(c, doctorID)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Roe", data["name"])
	assert.Equal(t, true, data["lung_cancer"])
	assert.Equal(t, 0.91, data["prediction_confidence"])
}

func TestPatientHandler_Create_MissingAge(t *testing.T) {
	handler := NewPatientHandler(&fakePatientUsecase{}, slog.Default())

	c, _ := newTestContext(t, http.MethodPost, "/api/patients", `{"name":"Jane Roe"}`)
	setDoctor(c, uuid.New())

	err := handler.Create(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestPatientHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewPatientHandler(&fakePatientUsecase{}, slog.Default())

	c, rec := newTestContext(t, http.MethodPost, "/api/patients",
		`{"name":"Jane Roe","age":61}`)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPatientHandler_Get_InvalidID(t *testing.T) {
	handler := NewPatientHandler(&fakePatientUsecase{}, slog.Default())

	c, rec := newTestContext(t, http.MethodGet, "/api/patients/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	setDoctor(c, uuid.New())

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatientHandler_Update_PartialBody(t *testing.T) {
	doctorID := uuid.New()
	recordID := uuid.New()
	uc := &fakePatientUsecase{
		updateFn: func(_ context.Context, owner, id uuid.UUID, patch usecase.PatientPatch) (*usecase.PatientOutput, error) {
			require.Equal(t, doctorID, owner)
			require.Equal(t, recordID, id)
			require.Nil(t, patch.Name)
			require.NotNil(t, patch.Smoking)
			require.True(t, *patch.Smoking)
			require.Nil(t, patch.Age)

			return &usecase.PatientOutput{ID: id, Smoking: true}, nil
		},
	}
	handler := NewPatientHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodPut, "/api/patients/"+recordID.String(),
		`{"smoking":true}`)
	c.SetParamNames("id")
	c.SetParamValues(recordID.String())
	setDoctor(c, doctorID)

	require.NoError(t, handler.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPatientHandler_Delete(t *testing.T) {
	doctorID := uuid.New()
	recordID := uuid.New()
	deleted := false
	uc := &fakePatientUsecase{
		deleteFn: func(_ context.Context, owner, id uuid.UUID) error {
			require.Equal(t, doctorID, owner)
			require.Equal(t, recordID, id)
			deleted = true

			return nil
		},
	}
	handler := NewPatientHandler(uc, slog.Default())

	c, rec := newTestContext(t, http.MethodDelete, "/api/patients/"+recordID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(recordID.String())
	setDoctor(c, doctorID)

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}
