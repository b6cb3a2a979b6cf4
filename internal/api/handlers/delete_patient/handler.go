package delete_patient

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients"
)

const (
	msgUnauthorized           = "требуется авторизация"
	msgInvalidPatientID       = "некорректный ID пациента"
	msgPatientNotFound        = "пациент не найден"
	msgPatientHasAppointments = "нельзя удалить пациента, у которого есть приёмы"
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

// Handle DELETE /api/v1/patients/{patientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	patientID, err := handlers.PathID(r, "patientId")
	if err != nil {
		h.logger.Warn("DELETE /patients/{id} - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, patientID); err != nil {
		switch {
		case errors.Is(err, patients.ErrPatientNotFound):
			h.logger.Warn("DELETE /patients/{id} - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, patients.ErrPatientHasAppointments):
			h.logger.Warn("DELETE /patients/{id} - Patient has appointments: patient_id=%d", patientID)
			handlers.RespondConflict(w, msgPatientHasAppointments)

		default:
			h.logger.Error("DELETE /patients/{id} - Failed to delete patient: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /patients/{id} - Patient deleted: patient_id=%d, hospital_id=%d", patientID, actor.HospitalID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
