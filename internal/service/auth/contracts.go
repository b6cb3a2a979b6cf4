package auth

import (
	"context"
	"time"

	tokenauth "github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// HospitalRepository интерфейс репозитория больниц
type HospitalRepository interface {
	Create(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error)
}

// StaffRepository интерфейс репозитория администраторов
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
}

// DoctorRepository интерфейс поиска врача по логину
type DoctorRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Doctor, error)
}

// PasswordHasher интерфейс хэширования паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

// TokenIssuer интерфейс выпуска токенов
type TokenIssuer interface {
	Issue(actor domain.Actor) (*tokenauth.Token, error)
}

// SessionStore интерфейс хранилища отозванных токенов
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
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
