package create_doctor

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

const (
	// запас на текстовые поля и границы multipart сверх размера фото
	formOverheadBytes = 64 << 10
	formMemoryBytes   = 1 << 20
	imageField        = "image"
)

var errImageTooLarge = errors.New("image too large")

// decodeForm разбирает multipart форму. cleanup удаляет временные файлы формы
func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (*models.CreateDoctorRequest, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(formMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, errImageTooLarge
		}
		return nil, nil, err
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	req := &models.CreateDoctorRequest{
		Name:           r.FormValue("name"),
		Specialization: r.FormValue("specialization"),
		Contact:        optionalString(r.FormValue("contact")),
		Bio:            optionalString(r.FormValue("bio")),
	}

	var err error
	if req.ExperienceYears, err = optionalInt(r.FormValue("experienceYears")); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("experienceYears: %w", err)
	}
	if req.ConsultationFee, err = optionalFloat(r.FormValue("consultationFee")); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("consultationFee: %w", err)
	}

	file, header, err := r.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return req, cleanup, nil
	case err != nil:
		cleanup()
		return nil, nil, err
	}
	if header.Size > h.maxImageBytes {
		file.Close()
		cleanup()
		return nil, nil, errImageTooLarge
	}

	req.Image = &models.ImageUpload{Filename: header.Filename, Content: file}
	return req, func() {
		file.Close()
		cleanup()
	}, nil
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func optionalInt(v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalFloat(v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
