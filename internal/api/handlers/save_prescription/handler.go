package save_prescription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidPrescription  = "некорректный рецепт: укажите диагноз и корректные данные лекарств"
	msgAppointmentNotFound  = "приём не найден"
)

type Handler struct {
	service PrescriptionService
	logger  Logger
}

func NewHandler(service PrescriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctor/appointments/{appointmentId}/prescription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /doctor/appointments/{id}/prescription - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.SavePrescriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctor/appointments/{id}/prescription - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	prescription, err := h.service.Save(r.Context(), actor, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, prescriptions.ErrInvalidInput):
			h.logger.Warn("PUT /doctor/appointments/{id}/prescription - Invalid prescription: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidPrescription)

		case errors.Is(err, prescriptions.ErrAppointmentNotFound):
			h.logger.Warn("PUT /doctor/appointments/{id}/prescription - Appointment not found: appointment_id=%d, doctor_id=%d",
				appointmentID, actor.ID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("PUT /doctor/appointments/{id}/prescription - Failed to save prescription: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctor/appointments/{id}/prescription - Prescription saved: appointment_id=%d, prescription_id=%d, medicines=%d",
		appointmentID, prescription.ID, len(prescription.Medicines))
	handlers.RespondJSON(w, http.StatusOK, prescription)
}
