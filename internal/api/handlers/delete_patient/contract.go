package delete_patient

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

type PatientService interface {
	Delete(ctx context.Context, actor domain.Actor, patientID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
