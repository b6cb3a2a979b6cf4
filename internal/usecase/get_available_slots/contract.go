package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, hospitalID, id int64) (*domain.Doctor, error)
}

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	// GetByWeekday получает рабочее окно врача на день недели
	GetByWeekday(ctx context.Context, hospitalID, doctorID int64, weekday domain.Weekday) (*domain.WorkingWindow, error)
}

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	// BookedSlots получает начала занятых слотов врача на дату
	BookedSlots(ctx context.Context, hospitalID, doctorID int64, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
