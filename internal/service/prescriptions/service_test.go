package prescriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	hospitalRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/hospital"
	prescriptionRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/prescription"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

var visitDate = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

type fakeAppointments struct {
	items   map[int64]*domain.AppointmentDetails
	next    []*domain.AppointmentDetails
	filters []domain.AppointmentFilter
}

func (f *fakeAppointments) GetByID(_ context.Context, hospitalID, id int64) (*domain.AppointmentDetails, error) {
	a, ok := f.items[id]
	if !ok || a.HospitalID != hospitalID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	f.filters = append(f.filters, filter)
	return f.next, nil
}

type fakePrescriptions struct {
	byAppointment map[int64]*domain.Prescription
	err           error
}

func (f *fakePrescriptions) GetByAppointment(_ context.Context, _, appointmentID int64) (*domain.Prescription, error) {
	p, ok := f.byAppointment[appointmentID]
	if !ok {
		return nil, prescriptionRepo.ErrPrescriptionNotFound
	}
	return p, nil
}

func (f *fakePrescriptions) Upsert(_ context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	if f.err != nil {
		return nil, f.err
	}
	if existing, ok := f.byAppointment[p.AppointmentID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = int64(len(f.byAppointment) + 1)
	}
	f.byAppointment[p.AppointmentID] = p
	return p, nil
}

type fakeHospitals struct {
	err error
}

func (f fakeHospitals) GetByID(_ context.Context, id int64) (*domain.Hospital, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Hospital{ID: id, Name: "City Clinic"}, nil
}

var doctor = domain.Actor{ID: 3, Role: domain.RoleDoctor, HospitalID: 1, HospitalName: "From Token"}

type fixture struct {
	svc           *Service
	appointments  *fakeAppointments
	prescriptions *fakePrescriptions
}

func newFixture(hospitals fakeHospitals) *fixture {
	f := &fixture{
		appointments: &fakeAppointments{items: map[int64]*domain.AppointmentDetails{
			7: {
				Appointment: domain.Appointment{ID: 7, PatientID: 5, DoctorID: 3, HospitalID: 1, Date: visitDate, TimeSlot: "10:15", Status: domain.StatusCompleted},
				PatientName: "Jane Roe",
				DoctorName:  "Dr. Grey",
			},
			8: {
				Appointment: domain.Appointment{ID: 8, PatientID: 5, DoctorID: 4, HospitalID: 1, Date: visitDate, TimeSlot: "11:00"},
			},
		}},
		prescriptions: &fakePrescriptions{byAppointment: map[int64]*domain.Prescription{}},
	}
	f.svc = NewService(f.appointments, f.prescriptions, hospitals, logger.NewNop())
	return f
}

func validSave() *models.SavePrescriptionRequest {
	return &models.SavePrescriptionRequest{
		Diagnosis: " Seasonal flu ",
		Medicines: []models.MedicineRequest{
			{Name: "Paracetamol", Dosage: "500mg", Frequency: "3/day", TimeOfDay: []string{"Morning", "evening", "morning"}},
			{},
			{Name: "Vitamin C", Dosage: "1g", Frequency: "1/day", TimeOfDay: []string{"afternoon"}, RelationToMeal: "with"},
		},
		Instructions: ptr.Ptr("Rest"),
	}
}

func TestService_Save(t *testing.T) {
	f := newFixture(fakeHospitals{})

	resp, err := f.svc.Save(context.Background(), doctor, 7, validSave())
	require.NoError(t, err)
	assert.Equal(t, "Seasonal flu", resp.Diagnosis)
	require.Len(t, resp.Medicines, 2)

	first := resp.Medicines[0]
	assert.Equal(t, []domain.TimeOfDay{domain.Morning, domain.Evening}, first.TimeOfDay)
	assert.Equal(t, domain.AfterMeal, first.RelationToMeal)
	assert.Equal(t, domain.WithMeal, resp.Medicines[1].RelationToMeal)

	again, err := f.svc.Save(context.Background(), doctor, 7, &models.SavePrescriptionRequest{Diagnosis: "Recovered"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Empty(t, again.Medicines)
	assert.Len(t, f.prescriptions.byAppointment, 1)
}

func TestService_Save_Validation(t *testing.T) {
	f := newFixture(fakeHospitals{})

	tests := map[string]func(r *models.SavePrescriptionRequest){
		"no diagnosis":      func(r *models.SavePrescriptionRequest) { r.Diagnosis = "" },
		"incomplete line":   func(r *models.SavePrescriptionRequest) { r.Medicines[0].Dosage = "" },
		"bad time of day":   func(r *models.SavePrescriptionRequest) { r.Medicines[0].TimeOfDay = []string{"night"} },
		"bad meal relation": func(r *models.SavePrescriptionRequest) { r.Medicines[0].RelationToMeal = "during" },
		"too many": func(r *models.SavePrescriptionRequest) {
			r.Medicines = make([]models.MedicineRequest, domain.MaxMedicines+1)
			for i := range r.Medicines {
				r.Medicines[i] = models.MedicineRequest{Name: "X", Dosage: "1", Frequency: "1"}
			}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := validSave()
			mutate(req)
			_, err := f.svc.Save(context.Background(), doctor, 7, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.prescriptions.byAppointment)
}

func TestService_Save_ForeignAppointment(t *testing.T) {
	f := newFixture(fakeHospitals{})

	_, err := f.svc.Save(context.Background(), doctor, 8, validSave())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.svc.Save(context.Background(), doctor, 404, validSave())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	f.prescriptions.err = errors.New("db down")
	_, err = f.svc.Save(context.Background(), doctor, 7, validSave())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Get(t *testing.T) {
	f := newFixture(fakeHospitals{})

	page, err := f.svc.Get(context.Background(), doctor, 7)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", page.Appointment.PatientName)
	assert.Equal(t, "10:15 am", page.Appointment.DisplayTime)
	assert.Nil(t, page.Prescription)

	_, err = f.svc.Save(context.Background(), doctor, 7, validSave())
	require.NoError(t, err)

	page, err = f.svc.Get(context.Background(), doctor, 7)
	require.NoError(t, err)
	require.NotNil(t, page.Prescription)
	assert.Equal(t, "Seasonal flu", page.Prescription.Diagnosis)
}

func TestService_Print(t *testing.T) {
	f := newFixture(fakeHospitals{})
	f.appointments.next = []*domain.AppointmentDetails{{
		Appointment: domain.Appointment{ID: 9, Date: visitDate.AddDate(0, 0, 7), TimeSlot: "14:30", Status: domain.StatusScheduled},
	}}

	resp, err := f.svc.Print(context.Background(), doctor, 7)
	require.NoError(t, err)
	assert.Equal(t, "City Clinic", resp.HospitalName)
	assert.Nil(t, resp.Prescription)
	require.NotNil(t, resp.NextAppointment)
	assert.Equal(t, "2026-05-11", resp.NextAppointment.Date)
	assert.Equal(t, "02:30 pm", resp.NextAppointment.DisplayTime)

	filter := f.appointments.filters[0]
	assert.Equal(t, int64(5), *filter.PatientID)
	assert.Equal(t, domain.StatusScheduled, *filter.Status)
	assert.Equal(t, visitDate, *filter.AfterDate)
	assert.True(t, filter.Ascending)
	assert.Equal(t, uint64(1), filter.Limit)
	assert.Nil(t, filter.DoctorID)
}

func TestService_Print_NoNextAppointment(t *testing.T) {
	f := newFixture(fakeHospitals{err: hospitalRepo.ErrHospitalNotFound})

	resp, err := f.svc.Print(context.Background(), doctor, 7)
	require.NoError(t, err)
	assert.Equal(t, "From Token", resp.HospitalName)
	assert.Nil(t, resp.NextAppointment)
}
