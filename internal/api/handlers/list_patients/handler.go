package list_patients

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

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

// Handle GET /api/v1/patients
// Query params: search (опционально, по имени)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := h.service.List(r.Context(), actor, search)
	if err != nil {
		h.logger.Error("GET /patients - Failed to list patients: hospital_id=%d, error=%v", actor.HospitalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /patients - Patients retrieved: hospital_id=%d, count=%d", actor.HospitalID, len(result.Patients))
	handlers.RespondJSON(w, http.StatusOK, result.Patients)
}
