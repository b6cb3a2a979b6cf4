package set_doctor_credentials

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/doctors/models"
)

type DoctorService interface {
	SetCredentials(ctx context.Context, actor domain.Actor, doctorID int64, req *models.SetCredentialsRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
