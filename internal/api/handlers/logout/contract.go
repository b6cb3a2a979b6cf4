package logout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

type AuthService interface {
	Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
