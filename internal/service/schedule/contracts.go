package schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// DoctorRepository проверка принадлежности врача больнице
type DoctorRepository interface {
	GetByID(ctx context.Context, hospitalID, id int64) (*domain.Doctor, error)
}

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	ListByDoctor(ctx context.Context, hospitalID, doctorID int64) ([]*domain.WorkingWindow, error)
	DeleteByWeekday(ctx context.Context, hospitalID, doctorID int64, weekday domain.Weekday) error
	Create(ctx context.Context, w *domain.WorkingWindow) (*domain.WorkingWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
