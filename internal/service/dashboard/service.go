package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/dashboard/models"
)

// Service панели администратора и врача
type Service struct {
	hospitalRepo    HospitalRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса панелей
func NewService(
	hospitalRepo HospitalRepository,
	appointmentRepo AppointmentRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		hospitalRepo:    hospitalRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Admin возвращает счётчики больницы и последние приёмы
func (s *Service) Admin(ctx context.Context, actor domain.Actor) (*models.AdminDashboardResponse, error) {
	stats, err := s.hospitalRepo.Stats(ctx, actor.HospitalID)
	if err != nil {
		s.logger.Error("Admin: failed to load stats for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: Admin - stats: %v", ErrInternal, err)
	}

	recent, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		HospitalID: actor.HospitalID,
		Limit:      domain.DashboardRecentLimit,
	})
	if err != nil {
		s.logger.Error("Admin: failed to load recent appointments for hospital=%d: %v", actor.HospitalID, err)
		return nil, fmt.Errorf("%w: Admin - recent appointments: %v", ErrInternal, err)
	}

	return &models.AdminDashboardResponse{
		DoctorsCount:       stats.Doctors,
		PatientsCount:      stats.Patients,
		AppointmentsCount:  stats.Appointments,
		RecentAppointments: models.FromDomainAppointments(recent),
	}, nil
}

// Doctor возвращает приёмы врача на сегодня и ближайшие после сегодняшнего дня
func (s *Service) Doctor(ctx context.Context, actor domain.Actor) (*models.DoctorDashboardResponse, error) {
	today := dateOf(s.timeProvider.Now())

	todays, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		HospitalID: actor.HospitalID,
		DoctorID:   &actor.ID,
		Date:       &today,
		Ascending:  true,
	})
	if err != nil {
		s.logger.Error("Doctor: failed to load today's appointments for doctor=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Doctor - today: %v", ErrInternal, err)
	}

	upcoming, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		HospitalID: actor.HospitalID,
		DoctorID:   &actor.ID,
		AfterDate:  &today,
		Ascending:  true,
		Limit:      domain.UpcomingAppointmentsLimit,
	})
	if err != nil {
		s.logger.Error("Doctor: failed to load upcoming appointments for doctor=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Doctor - upcoming: %v", ErrInternal, err)
	}

	return &models.DoctorDashboardResponse{
		Date:                 today.Format(domain.DateFormat),
		TodayAppointments:    models.FromDomainAppointments(todays),
		UpcomingAppointments: models.FromDomainAppointments(upcoming),
	}, nil
}

// dateOf отбрасывает время, сохраняя календарную дату в часовом поясе t
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
