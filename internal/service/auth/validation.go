package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/auth/models"
)

func validateRegister(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.HospitalName) == "" {
		return fmt.Errorf("%w: hospital name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	return nil
}

func validateLogin(req *models.LoginRequest) (domain.Role, error) {
	role, ok := domain.ParseRole(req.UserType)
	if !ok {
		return "", fmt.Errorf("%w: userType must be admin or doctor", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	return role, nil
}
