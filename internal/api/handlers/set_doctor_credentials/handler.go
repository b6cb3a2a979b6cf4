package set_doctor_credentials

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "логин должен быть не короче 4 символов без пробелов, пароль не короче 8 символов"
	msgDoctorNotFound     = "врач не найден"
	msgUsernameTaken      = "логин уже занят"
)

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

// Handle PUT /api/v1/doctors/{doctorId}/credentials
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/credentials - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var req models.SetCredentialsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/credentials - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetCredentials(r.Context(), actor, doctorID, &req); err != nil {
		switch {
		case errors.Is(err, doctors.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/credentials - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/credentials - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, doctors.ErrUsernameTaken):
			h.logger.Warn("PUT /doctors/{id}/credentials - Username taken: doctor_id=%d", doctorID)
			handlers.RespondConflict(w, msgUsernameTaken)

		default:
			h.logger.Error("PUT /doctors/{id}/credentials - Failed to set credentials: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/credentials - Credentials updated: doctor_id=%d", doctorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
