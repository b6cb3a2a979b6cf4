package list_doctor_patients

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
)

type PatientService interface {
	ListForDoctor(ctx context.Context, actor domain.Actor, search string) (*models.PatientVisitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
