package set_working_window

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное рабочее окно: проверьте день недели, время начала и конца и перерыв"
	msgDoctorNotFound     = "врач не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/schedule/{weekday}
// Рабочее окно дня заменяется целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule/{weekday} - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}
	weekday := mux.Vars(r)["weekday"]

	var req models.WorkingWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetWorkingWindow(r.Context(), actor, doctorID, weekday, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/schedule/{weekday} - Invalid window: doctor_id=%d, weekday=%s, error=%v",
				doctorID, weekday, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, schedule.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/schedule/{weekday} - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("PUT /doctors/{id}/schedule/{weekday} - Failed to save window: doctor_id=%d, weekday=%s, error=%v",
				doctorID, weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/schedule/{weekday} - Window saved: doctor_id=%d, weekday=%s, %s-%s",
		doctorID, result.Weekday, result.Start, result.End)
	handlers.RespondJSON(w, http.StatusOK, result)
}
