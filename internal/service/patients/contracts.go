package patients

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	GetByID(ctx context.Context, hospitalID, id int64) (*domain.Patient, error)
	List(ctx context.Context, hospitalID int64, search string) ([]*domain.Patient, error)
	ListByDoctor(ctx context.Context, hospitalID, doctorID int64, search string) ([]*domain.PatientVisit, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}

// AppointmentRepository приёмы пациента
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
	CountByPatient(ctx context.Context, hospitalID, patientID int64) (int, error)
}

// PrescriptionRepository рецепты пациента
type PrescriptionRepository interface {
	ListByPatient(ctx context.Context, hospitalID, patientID int64) ([]*domain.PrescriptionRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
