package get_admin_dashboard

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/dashboard/models"
)

type DashboardService interface {
	Admin(ctx context.Context, actor domain.Actor) (*models.AdminDashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
