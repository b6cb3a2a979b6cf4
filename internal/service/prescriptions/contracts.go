package prescriptions

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AppointmentRepository приёмы, к которым выписываются рецепты
type AppointmentRepository interface {
	GetByID(ctx context.Context, hospitalID, id int64) (*domain.AppointmentDetails, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
}

// PrescriptionRepository интерфейс репозитория рецептов
type PrescriptionRepository interface {
	GetByAppointment(ctx context.Context, hospitalID, appointmentID int64) (*domain.Prescription, error)
	Upsert(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error)
}

// HospitalRepository название больницы для печатной формы
type HospitalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hospital, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
