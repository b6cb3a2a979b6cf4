package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	patientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-ClinicService/internal/service/patients/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakePatients struct {
	items     map[int64]*domain.Patient
	visits    []*domain.PatientVisit
	deleteErr error
	err       error
}

func (f *fakePatients) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.ID = int64(len(f.items) + 1)
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePatients) GetByID(_ context.Context, hospitalID, id int64) (*domain.Patient, error) {
	p, ok := f.items[id]
	if !ok || p.HospitalID != hospitalID {
		return nil, patientRepo.ErrPatientNotFound
	}
	return p, nil
}

func (f *fakePatients) List(_ context.Context, hospitalID int64, _ string) ([]*domain.Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Patient
	for _, p := range f.items {
		if p.HospitalID == hospitalID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePatients) ListByDoctor(_ context.Context, _, _ int64, _ string) ([]*domain.PatientVisit, error) {
	return f.visits, f.err
}

func (f *fakePatients) Delete(_ context.Context, hospitalID, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	p, ok := f.items[id]
	if !ok || p.HospitalID != hospitalID {
		return patientRepo.ErrPatientNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeAppointments struct {
	counts  map[int64]int
	list    []*domain.AppointmentDetails
	filters []domain.AppointmentFilter
	err     error
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	f.filters = append(f.filters, filter)
	return f.list, f.err
}

func (f *fakeAppointments) CountByPatient(_ context.Context, _, patientID int64) (int, error) {
	return f.counts[patientID], f.err
}

type fakePrescriptions struct {
	records []*domain.PrescriptionRecord
}

func (f *fakePrescriptions) ListByPatient(_ context.Context, _, _ int64) ([]*domain.PrescriptionRecord, error) {
	return f.records, nil
}

var admin = domain.Actor{ID: 10, Role: domain.RoleAdmin, HospitalID: 1}

type fixture struct {
	svc           *Service
	patients      *fakePatients
	appointments  *fakeAppointments
	prescriptions *fakePrescriptions
}

func newFixture() *fixture {
	f := &fixture{
		patients:      &fakePatients{items: map[int64]*domain.Patient{}},
		appointments:  &fakeAppointments{counts: map[int64]int{}},
		prescriptions: &fakePrescriptions{},
	}
	f.svc = NewService(f.patients, f.appointments, f.prescriptions, logger.NewNop())
	return f
}

func validPatient() *models.CreatePatientRequest {
	return &models.CreatePatientRequest{
		Name:    " John Doe ",
		Age:     ptr.Ptr(42),
		Gender:  "Male",
		Contact: "+1 555 0100",
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), admin, validPatient())
	require.NoError(t, err)
	assert.Equal(t, "John Doe", resp.Name)
	assert.Equal(t, 42, resp.Age)
	assert.Nil(t, resp.Address)

	stored := f.patients.items[resp.ID]
	assert.Equal(t, int64(1), stored.HospitalID)
	assert.Equal(t, int64(10), stored.CreatedBy)
}

func TestService_Create_Validation(t *testing.T) {
	f := newFixture()

	tests := map[string]func(r *models.CreatePatientRequest){
		"no name":      func(r *models.CreatePatientRequest) { r.Name = "" },
		"no age":       func(r *models.CreatePatientRequest) { r.Age = nil },
		"negative age": func(r *models.CreatePatientRequest) { r.Age = ptr.Ptr(-1) },
		"too old":      func(r *models.CreatePatientRequest) { r.Age = ptr.Ptr(151) },
		"no gender":    func(r *models.CreatePatientRequest) { r.Gender = " " },
		"no contact":   func(r *models.CreatePatientRequest) { r.Contact = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := validPatient()
			mutate(req)
			_, err := f.svc.Create(context.Background(), admin, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.patients.items)
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Create(context.Background(), admin, validPatient())
	require.NoError(t, err)

	f.appointments.counts[created.ID] = 1
	assert.ErrorIs(t, f.svc.Delete(context.Background(), admin, created.ID), ErrPatientHasAppointments)
	assert.Len(t, f.patients.items, 1)

	f.appointments.counts[created.ID] = 0
	require.NoError(t, f.svc.Delete(context.Background(), admin, created.ID))
	assert.Empty(t, f.patients.items)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), admin, created.ID), ErrPatientNotFound)
}

func TestService_Delete_ForeignKeyRace(t *testing.T) {
	f := newFixture()
	f.patients.deleteErr = patientRepo.ErrPatientInUse

	assert.ErrorIs(t, f.svc.Delete(context.Background(), admin, 1), ErrPatientHasAppointments)
}

func TestService_ListForDoctor(t *testing.T) {
	f := newFixture()
	doctor := domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1}
	f.patients.visits = []*domain.PatientVisit{{
		Patient:   domain.Patient{ID: 5, Name: "Jane"},
		LastVisit: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}}

	resp, err := f.svc.ListForDoctor(context.Background(), doctor, "")
	require.NoError(t, err)
	require.Len(t, resp.Patients, 1)
	assert.Equal(t, "2026-03-14", resp.Patients[0].LastVisit)

	f.patients.err = errors.New("db down")
	_, err = f.svc.ListForDoctor(context.Background(), doctor, "")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_History(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Create(context.Background(), admin, validPatient())
	require.NoError(t, err)

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	f.appointments.list = []*domain.AppointmentDetails{{
		Appointment: domain.Appointment{ID: 7, PatientID: created.ID, DoctorID: 3, Date: date, TimeSlot: "09:15", Status: domain.StatusCompleted},
		DoctorName:  "Dr. Grey",
	}}
	f.prescriptions.records = []*domain.PrescriptionRecord{{
		Prescription:    domain.Prescription{ID: 9, AppointmentID: 7, Diagnosis: "Flu"},
		AppointmentDate: date,
		TimeSlot:        "09:15",
		DoctorName:      "Dr. Grey",
	}}

	doctor := domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1}
	resp, err := f.svc.History(context.Background(), doctor, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", resp.Patient.Name)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Completed", resp.Appointments[0].Status)
	require.Len(t, resp.Prescriptions, 1)
	assert.Equal(t, "Flu", resp.Prescriptions[0].Diagnosis)
	assert.NotNil(t, resp.Prescriptions[0].Medicines)

	require.Len(t, f.appointments.filters, 1)
	assert.Equal(t, created.ID, *f.appointments.filters[0].PatientID)
	assert.Nil(t, f.appointments.filters[0].DoctorID)

	_, err = f.svc.History(context.Background(), domain.Actor{ID: 3, HospitalID: 2}, created.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
