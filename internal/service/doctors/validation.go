package doctors

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

func validateCreate(req *models.CreateDoctorRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Specialization) == "" {
		return fmt.Errorf("%w: specialization is required", ErrInvalidInput)
	}
	if req.ExperienceYears != nil && *req.ExperienceYears < 0 {
		return fmt.Errorf("%w: experienceYears must not be negative", ErrInvalidInput)
	}
	if req.ConsultationFee != nil && *req.ConsultationFee < 0 {
		return fmt.Errorf("%w: consultationFee must not be negative", ErrInvalidInput)
	}
	return nil
}

// imageExtension возвращает расширение фото или "" если фото не передано
func imageExtension(img *models.ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	ext, ok := domain.ImageExtension(img.Filename)
	if !ok {
		return "", fmt.Errorf("%w: %q, allowed: %s", ErrInvalidImage, img.Filename,
			strings.Join(domain.AllowedImageExtensions, ", "))
	}
	return ext, nil
}

func validateCredentials(req *models.SetCredentialsRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < domain.MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, domain.MinUsernameLength)
	}
	for _, r := range username {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: username must not contain spaces", ErrInvalidInput)
		}
	}
	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
