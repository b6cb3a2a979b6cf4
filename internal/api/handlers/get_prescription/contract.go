package get_prescription

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
)

type PrescriptionService interface {
	Get(ctx context.Context, actor domain.Actor, appointmentID int64) (*models.PrescriptionPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
