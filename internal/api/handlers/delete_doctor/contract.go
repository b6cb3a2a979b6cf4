package delete_doctor

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

type DoctorService interface {
	Delete(ctx context.Context, actor domain.Actor, doctorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
