package set_working_window

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetWorkingWindow(ctx context.Context, actor domain.Actor, doctorID int64, weekday string, req *models.WorkingWindowRequest) (*models.WorkingWindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
