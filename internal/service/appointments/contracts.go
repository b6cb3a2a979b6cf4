package appointments

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
	UpdateStatus(ctx context.Context, hospitalID, id int64, doctorID *int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, hospitalID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
