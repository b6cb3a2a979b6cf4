package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeHospitals struct {
	err error
}

func (f fakeHospitals) Stats(_ context.Context, _ int64) (*domain.DashboardStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DashboardStats{Doctors: 4, Patients: 12, Appointments: 30}, nil
}

type fakeAppointments struct {
	filters []domain.AppointmentFilter
	err     error
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.AppointmentDetails{{
		Appointment: domain.Appointment{ID: 1, Date: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), TimeSlot: "09:00", Status: domain.StatusScheduled},
		PatientName: "Jane Roe",
	}}, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func TestService_Admin(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewService(fakeHospitals{}, repo, fixedTime{}, logger.NewNop())

	resp, err := svc.Admin(context.Background(), domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.DoctorsCount)
	assert.Equal(t, 12, resp.PatientsCount)
	assert.Equal(t, 30, resp.AppointmentsCount)
	require.Len(t, resp.RecentAppointments, 1)
	assert.Equal(t, "09:00 am", resp.RecentAppointments[0].DisplayTime)

	filter := repo.filters[0]
	assert.Equal(t, int64(2), filter.HospitalID)
	assert.Equal(t, uint64(domain.DashboardRecentLimit), filter.Limit)
	assert.False(t, filter.Ascending)
}

func TestService_Admin_StatsFailure(t *testing.T) {
	svc := NewService(fakeHospitals{err: errors.New("db down")}, &fakeAppointments{}, fixedTime{}, logger.NewNop())

	_, err := svc.Admin(context.Background(), domain.Actor{HospitalID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Doctor_UsesLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 22:30 UTC 3 мая = 03:30 4 мая по местному времени
	now := time.Date(2026, 5, 3, 22, 30, 0, 0, time.UTC).In(loc)

	repo := &fakeAppointments{}
	svc := NewService(fakeHospitals{}, repo, fixedTime{now: now}, logger.NewNop())

	resp, err := svc.Doctor(context.Background(), domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04", resp.Date)
	assert.Len(t, resp.TodayAppointments, 1)
	assert.Len(t, resp.UpcomingAppointments, 1)

	require.Len(t, repo.filters, 2)
	today, upcoming := repo.filters[0], repo.filters[1]
	want := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(3), *today.DoctorID)
	assert.Equal(t, want, *today.Date)
	assert.True(t, today.Ascending)
	assert.Zero(t, today.Limit)

	assert.Equal(t, want, *upcoming.AfterDate)
	assert.Nil(t, upcoming.Date)
	assert.Equal(t, uint64(domain.UpcomingAppointmentsLimit), upcoming.Limit)
}

func TestService_Doctor_Failure(t *testing.T) {
	repo := &fakeAppointments{err: errors.New("db down")}
	svc := NewService(fakeHospitals{}, repo, fixedTime{now: time.Now()}, logger.NewNop())

	_, err := svc.Doctor(context.Background(), domain.Actor{ID: 3, HospitalID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
