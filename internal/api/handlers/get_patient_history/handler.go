package get_patient_history

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidPatientID = "некорректный ID пациента"
	msgPatientNotFound  = "пациент не найден"
)

type Handler struct {
	service PatientService
	logger  Logger
}

func NewHandler(service PatientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctor/patients/{patientId}/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	patientID, err := handlers.PathID(r, "patientId")
	if err != nil {
		h.logger.Warn("GET /doctor/patients/{id}/history - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	result, err := h.service.History(r.Context(), actor, patientID)
	if err != nil {
		switch {
		case errors.Is(err, patients.ErrPatientNotFound):
			h.logger.Warn("GET /doctor/patients/{id}/history - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		default:
			h.logger.Error("GET /doctor/patients/{id}/history - Failed to get history: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctor/patients/{id}/history - History retrieved: patient_id=%d, appointments=%d, prescriptions=%d",
		patientID, len(result.Appointments), len(result.Prescriptions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
