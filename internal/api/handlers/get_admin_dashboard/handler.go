package get_admin_dashboard

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

// Handle GET /api/v1/admin/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.Admin(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /admin/dashboard - Failed to build dashboard: hospital_id=%d, error=%v", actor.HospitalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/dashboard - Dashboard retrieved: hospital_id=%d", actor.HospitalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
