package doctors

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	GetByID(ctx context.Context, hospitalID, id int64) (*domain.Doctor, error)
	List(ctx context.Context, hospitalID int64, search string) ([]*domain.Doctor, error)
	SetCredentials(ctx context.Context, hospitalID, id int64, username, passwordHash string) error
	Delete(ctx context.Context, hospitalID, id int64) error
}

// ScheduleRepository удаление расписания врача
type ScheduleRepository interface {
	DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error)
}

// PrescriptionRepository удаление рецептов врача
type PrescriptionRepository interface {
	DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error)
}

// AppointmentRepository удаление приёмов врача
type AppointmentRepository interface {
	DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error)
}

// ImageStore хранилище фотографий врачей
type ImageStore interface {
	Save(ctx context.Context, ext string, content io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// PasswordHasher интерфейс хэширования паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
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
