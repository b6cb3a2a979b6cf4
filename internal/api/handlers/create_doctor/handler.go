package create_doctor

import (
	"errors"
	"mime"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите имя и специализацию врача"
	msgInvalidImage       = "фото должно быть в формате png, jpg или jpeg"
	msgImageTooLarge      = "фото слишком большое"
)

type Handler struct {
	service       DoctorService
	maxImageBytes int64
	logger        Logger
}

func NewHandler(service DoctorService, maxImageBytes int64, logger Logger) *Handler {
	return &Handler{
		service:       service,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// Handle POST /api/v1/doctors
// Принимает JSON или multipart/form-data с необязательным файлом image
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req *models.CreateDoctorRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		form, cleanup, err := h.decodeForm(w, r)
		if err != nil {
			h.logger.Warn("POST /doctors - Invalid multipart form: %v", err)
			if errors.Is(err, errImageTooLarge) {
				handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgImageTooLarge)
				return
			}
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		defer cleanup()
		req = form
	} else {
		req = &models.CreateDoctorRequest{}
		if err := handlers.DecodeJSON(r, req); err != nil {
			h.logger.Warn("POST /doctors - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrInvalidImage):
			h.logger.Warn("POST /doctors - Invalid image: %v", err)
			handlers.RespondBadRequest(w, msgInvalidImage)

		case errors.Is(err, doctors.ErrInvalidInput):
			h.logger.Warn("POST /doctors - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /doctors - Failed to create doctor: hospital_id=%d, error=%v", actor.HospitalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors - Doctor created: doctor_id=%d, hospital_id=%d", result.ID, actor.HospitalID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
