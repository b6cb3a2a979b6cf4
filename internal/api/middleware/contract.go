package middleware

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/auth"
)

// TokenParser проверяет подпись и срок действия токена
type TokenParser interface {
	Parse(token string) (*auth.Session, error)
}

// RevocationChecker проверяет, отозван ли токен при выходе
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
