package patients

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
)

func validateCreate(req *models.CreatePatientRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Age == nil {
		return fmt.Errorf("%w: age is required", ErrInvalidInput)
	}
	if *req.Age < 0 || *req.Age > domain.MaxPatientAge {
		return fmt.Errorf("%w: age must be between 0 and %d", ErrInvalidInput, domain.MaxPatientAge)
	}
	if strings.TrimSpace(req.Gender) == "" {
		return fmt.Errorf("%w: gender is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Contact) == "" {
		return fmt.Errorf("%w: contact is required", ErrInvalidInput)
	}
	return nil
}

func trimmed(s string) *string {
	v := strings.TrimSpace(s)
	return &v
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
