package list_doctors

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors
// Query params: search (опционально, по имени или специализации)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := h.service.List(r.Context(), actor, search)
	if err != nil {
		h.logger.Error("GET /doctors - Failed to list doctors: hospital_id=%d, error=%v", actor.HospitalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors - Doctors retrieved: hospital_id=%d, count=%d", actor.HospitalID, len(result.Doctors))
	handlers.RespondJSON(w, http.StatusOK, result.Doctors)
}
