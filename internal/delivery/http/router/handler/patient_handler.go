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

// PatientHandler holds dependencies for patient record handlers.
type PatientHandler struct {
	uc     usecase.PatientUsecase
	logger *slog.Logger
}

// NewPatientHandler is the constructor for PatientHandler, injected by Fx.
func NewPatientHandler(uc usecase.PatientUsecase, logger *slog.Logger) *PatientHandler {
	return &PatientHandler{
		uc:     uc,
		logger: logger,
	}
}

// createPatientRequest is the wire shape of a create call. Age uses a pointer
// so a missing field fails validation instead of defaulting to zero.
type createPatientRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Age                  *int   `json:"age" validate:"required,gte=0,lte=150"`
	BiologicalGender     bool   `json:"biological_gender"`
	Smoking              bool   `json:"smoking"`
	YellowFingers        bool   `json:"yellow_fingers"`
	Anxiety              bool   `json:"anxiety"`
	PeerPressure         bool   `json:"peer_pressure"`
	ChronicDisease       bool   `json:"chronic_disease"`
	Fatigue              bool   `json:"fatigue"`
	Allergy              bool   `json:"allergy"`
	Wheezing             bool   `json:"wheezing"`
	Alcohol              bool   `json:"alcohol"`
	Coughing             bool   `json:"coughing"`
	ShortnessOfBreath    bool   `json:"shortness_of_breath"`
	SwallowingDifficulty bool   `json:"swallowing_difficulty"`
	ChestPain            bool   `json:"chest_pain"`
}

// updatePatientRequest is the wire shape of a partial update. Absent fields
// stay nil and keep their stored values.
type updatePatientRequest struct {
	Name                 *string `json:"name" validate:"omitempty,max=255"`
	Age                  *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	BiologicalGender     *bool   `json:"biological_gender"`
	Smoking              *bool   `json:"smoking"`
	YellowFingers        *bool   `json:"yellow_fingers"`
	Anxiety              *bool   `json:"anxiety"`
	PeerPressure         *bool   `json:"peer_pressure"`
	ChronicDisease       *bool   `json:"chronic_disease"`
	Fatigue              *bool   `json:"fatigue"`
	Allergy              *bool   `json:"allergy"`
	Wheezing             *bool   `json:"wheezing"`
	Alcohol              *bool   `json:"alcohol"`
	Coughing             *bool   `json:"coughing"`
	ShortnessOfBreath    *bool   `json:"shortness_of_breath"`
	SwallowingDifficulty *bool   `json:"swallowing_difficulty"`
	ChestPain            *bool   `json:"chest_pain"`
}

// patientResponse is the decrypted wire shape of a patient record.
type patientResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Age                  int       `json:"age"`
	BiologicalGender     bool      `json:"biological_gender"`
	Smoking              bool      `json:"smoking"`
	YellowFingers        bool      `json:"yellow_fingers"`
	Anxiety              bool      `json:"anxiety"`
	PeerPressure         bool      `json:"peer_pressure"`
	ChronicDisease       bool      `json:"chronic_disease"`
	Fatigue              bool      `json:"fatigue"`
	Allergy              bool      `json:"allergy"`
	Wheezing             bool      `json:"wheezing"`
	Alcohol              bool      `json:"alcohol"`
	Coughing             bool      `json:"coughing"`
	ShortnessOfBreath    bool      `json:"shortness_of_breath"`
	SwallowingDifficulty bool      `json:"swallowing_difficulty"`
	ChestPain            bool      `json:"chest_pain"`
	LungCancer           bool      `json:"lung_cancer"`
	PredictionConfidence *float64  `json:"prediction_confidence"`
	DoctorID             uuid.UUID `json:"doctor_id"`
	CreatedAt            time.Time `json:"created_at"`
}

func toPatientResponse(output *usecase.PatientOutput) *patientResponse {
	if output == nil {
		return nil
	}

	return &patientResponse{
		ID:                   output.ID,
		Name:                 output.Name,
		Age:                  output.Age,
		BiologicalGender:     output.BiologicalGender,
		Smoking:              output.Smoking,
		YellowFingers:        output.YellowFingers,
		Anxiety:              output.Anxiety,
		PeerPressure:         output.PeerPressure,
		ChronicDisease:       output.ChronicDisease,
		Fatigue:              output.Fatigue,
		Allergy:              output.Allergy,
		Wheezing:             output.Wheezing,
		Alcohol:              output.Alcohol,
		Coughing:             output.Coughing,
		ShortnessOfBreath:    output.ShortnessOfBreath,
		SwallowingDifficulty: output.SwallowingDifficulty,
		ChestPain:            output.ChestPain,
		LungCancer:           output.LungCancer,
		PredictionConfidence: output.PredictionConfidence,
		DoctorID:             output.DoctorID,
		CreatedAt:            output.CreatedAt,
	}
}

// requireDoctor resolves the authenticated doctor or writes a 401.
func requireDoctor(c echo.Context) (uuid.UUID, bool) {
	doctor := middleware.CurrentDoctor(c)
	if doctor == nil {
		return uuid.Nil, false
	}

	return doctor.ID, true
}

// Create handles the patient creation request.
func (h *PatientHandler) Create(c echo.Context) error {
	doctorID, ok := requireDoctor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	var input createPatientRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Create(c.Request().Context(), doctorID, usecase.PatientInput{
		Name:                 input.Name,
		Age:                  *input.Age,
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
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPatientResponse(output), "Patient created successfully")
}

// List handles the request for all of the doctor's patient records.
func (h *PatientHandler) List(c echo.Context) error {
	doctorID, ok := requireDoctor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	outputs, err := h.uc.List(c.Request().Context(), doctorID)
	if err != nil {
		return errors.WithStack(err)
	}

	patients := make([]*patientResponse, 0, len(outputs))
	for _, output := range outputs {
		patients = append(patients, toPatientResponse(output))
	}

	return response.Success(c, http.StatusOK, patients, "Patients retrieved successfully")
}

// Get handles the request for a single patient record.
func (h *PatientHandler) Get(c echo.Context) error {
	doctorID, ok := requireDoctor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient id")
	}

	output, err := h.uc.Get(c.Request().Context(), doctorID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPatientResponse(output), "Patient retrieved successfully")
}

// Update handles a partial patient update request.
func (h *PatientHandler) Update(c echo.Context) error {
	doctorID, ok := requireDoctor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient id")
	}

	var input updatePatientRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Update(c.Request().Context(), doctorID, id, usecase.PatientPatch{
		Name:                 input.Name,
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
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPatientResponse(output), "Patient updated successfully")
}

// Delete handles the patient deletion request.
func (h *PatientHandler) Delete(c echo.Context) error {
	doctorID, ok := requireDoctor(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient id")
	}

	if err := h.uc.Delete(c.Request().Context(), doctorID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Patient deleted"}, "Patient deleted successfully")
}
