package save_prescription

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
)

type PrescriptionService interface {
	Save(ctx context.Context, actor domain.Actor, appointmentID int64, req *models.SavePrescriptionRequest) (*models.PrescriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
