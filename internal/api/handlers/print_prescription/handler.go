package print_prescription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidAppointmentID = "некорректный ID приёма"
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

// Handle GET /api/v1/doctor/appointments/{appointmentId}/prescription/print
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /doctor/appointments/{id}/prescription/print - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	sheet, err := h.service.Print(r.Context(), actor, appointmentID)
	if err != nil {
		if errors.Is(err, prescriptions.ErrAppointmentNotFound) {
			h.logger.Warn("GET /doctor/appointments/{id}/prescription/print - Appointment not found: appointment_id=%d, doctor_id=%d",
				appointmentID, actor.ID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
			return
		}
		h.logger.Error("GET /doctor/appointments/{id}/prescription/print - Failed to build print sheet: appointment_id=%d, error=%v",
			appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/appointments/{id}/prescription/print - Print sheet built: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, sheet)
}
