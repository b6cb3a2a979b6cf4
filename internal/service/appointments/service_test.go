package appointments

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeAppointments struct {
	list      []*domain.AppointmentDetails
	filters   []domain.AppointmentFilter
	updates   []domain.AppointmentStatus
	listErr   error
	updateErr error
	deleteErr error
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	f.filters = append(f.filters, filter)
	return f.list, f.listErr
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, _, _ int64, doctorID *int64, status domain.AppointmentStatus) error {
	if doctorID == nil {
		return errors.New("doctor scope missing")
	}
	f.updates = append(f.updates, status)
	return f.updateErr
}

func (f *fakeAppointments) Delete(_ context.Context, _, _ int64) error {
	return f.deleteErr
}

var (
	admin  = domain.Actor{ID: 1, Role: domain.RoleAdmin, HospitalID: 1}
	doctor = domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1}
)

func sampleAppointments() []*domain.AppointmentDetails {
	return []*domain.AppointmentDetails{
		{
			Appointment: domain.Appointment{
				ID: 2, PatientID: 5, DoctorID: 3, HospitalID: 1,
				Date:     time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
				TimeSlot: "13:45", Status: domain.StatusScheduled, Notes: ptr.Ptr("follow-up"),
			},
			PatientName: "Jane Roe",
			DoctorName:  "Dr. Grey",
		},
		{
			Appointment: domain.Appointment{
				ID: 1, PatientID: 6, DoctorID: 3, HospitalID: 1,
				Date:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
				TimeSlot: "09:00", Status: domain.StatusNoShow,
			},
			PatientName: "John Doe",
			DoctorName:  "Dr. Grey",
		},
	}
}

func TestService_List_Filters(t *testing.T) {
	repo := &fakeAppointments{list: sampleAppointments()}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.List(context.Background(), admin, models.ListRequest{Search: " jane ", Status: "Scheduled"})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)
	assert.Equal(t, "2026-05-04", resp.Appointments[0].Date)
	assert.Equal(t, "01:45 pm", resp.Appointments[0].DisplayTime)

	filter := repo.filters[0]
	assert.Equal(t, int64(1), filter.HospitalID)
	assert.Nil(t, filter.DoctorID)
	assert.Equal(t, "jane", filter.Search)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.StatusScheduled, *filter.Status)
}

func TestService_ListForDoctor_Scoped(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.ListForDoctor(context.Background(), doctor, models.ListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)

	require.NotNil(t, repo.filters[0].DoctorID)
	assert.Equal(t, int64(3), *repo.filters[0].DoctorID)
	assert.Nil(t, repo.filters[0].Status)
}

func TestService_List_InvalidStatus(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.List(context.Background(), admin, models.ListRequest{Status: "Lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.filters)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewService(repo, logger.NewNop())

	require.NoError(t, svc.Delete(context.Background(), admin, 1))

	repo.deleteErr = appointmentRepo.ErrAppointmentNotFound
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 1), ErrAppointmentNotFound)

	repo.deleteErr = errors.New("db down")
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 1), ErrInternal)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewService(repo, logger.NewNop())

	require.NoError(t, svc.UpdateStatus(context.Background(), doctor, 2, &models.UpdateStatusRequest{Status: "No Show"}))
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusNoShow}, repo.updates)

	err := svc.UpdateStatus(context.Background(), doctor, 2, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.updateErr = appointmentRepo.ErrAppointmentNotFound
	err = svc.UpdateStatus(context.Background(), doctor, 2, &models.UpdateStatusRequest{Status: "Completed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	repo.updateErr = appointmentRepo.ErrSlotTaken
	err = svc.UpdateStatus(context.Background(), doctor, 2, &models.UpdateStatusRequest{Status: "Scheduled"})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestService_Export(t *testing.T) {
	repo := &fakeAppointments{list: sampleAppointments()}
	svc := NewService(repo, logger.NewNop())

	file, err := svc.Export(context.Background(), admin, models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "appointments.xlsx", file.Name)
	assert.Equal(t, exportContentType, file.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Patient Name", "Doctor Name", "Date", "Time Slot", "Status", "Notes"}, rows[0])
	assert.Equal(t, []string{"Jane Roe", "Dr. Grey", "2026-05-04", "13:45", "Scheduled", "follow-up"}, rows[1])
	assert.Equal(t, []string{"John Doe", "Dr. Grey", "2026-05-01", "09:00", "No Show"}, rows[2][:5])
}

func TestService_Export_RepositoryFailure(t *testing.T) {
	repo := &fakeAppointments{listErr: errors.New("db down")}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.Export(context.Background(), admin, models.ListRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
