package get_doctor_dashboard

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctor/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.Doctor(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /doctor/dashboard - Failed to build dashboard: doctor_id=%d, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctor/dashboard - Dashboard retrieved: doctor_id=%d, today=%d, upcoming=%d",
		actor.ID, len(result.TodayAppointments), len(result.UpcomingAppointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
