package prescription

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

var prescriptionRowColumns = []string{
	"id", "appointment_id", "hospital_id", "diagnosis", "medicines", "instructions", "created_at", "updated_at",
}

const medicinesJSON = `[{"name":"Ibuprofen","dosage":"200mg","frequency":"twice a day","timeOfDay":["morning","evening"],"relationToMeal":"after"}]`

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByAppointment(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM prescriptions rx WHERE rx.appointment_id = \$1 AND rx.hospital_id = \$2`).
		WithArgs(int64(100), int64(1)).
		WillReturnRows(sqlmock.NewRows(prescriptionRowColumns).
			AddRow(5, 100, 1, "Flu", []byte(medicinesJSON), nil, now, now))

	p, err := repo.GetByAppointment(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "Flu", p.Diagnosis)
	require.Len(t, p.Medicines, 1)
	assert.Equal(t, "Ibuprofen", p.Medicines[0].Name)
	assert.Equal(t, []domain.TimeOfDay{domain.Morning, domain.Evening}, p.Medicines[0].TimeOfDay)
	assert.Nil(t, p.Instructions)
}

func TestRepository_GetByAppointment_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`FROM prescriptions rx`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByAppointment(context.Background(), 1, 100)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO prescriptions .* ON CONFLICT \(appointment_id\) DO UPDATE SET diagnosis = EXCLUDED.diagnosis`).
		WithArgs(int64(1), int64(100), "Flu", []byte("[]"), ptr.Ptr("Rest")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, now, now))

	p, err := repo.Upsert(context.Background(), &domain.Prescription{
		HospitalID:    1,
		AppointmentID: 100,
		Diagnosis:     "Flu",
		Instructions:  ptr.Ptr("Rest"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, domain.Medicines{}, p.Medicines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByPatient(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`JOIN appointments a ON a.id = rx.appointment_id JOIN doctors d ON d.id = a.doctor_id WHERE a.patient_id = \$1 AND rx.hospital_id = \$2`).
		WithArgs(int64(11), int64(1)).
		WillReturnRows(sqlmock.NewRows(append(prescriptionRowColumns, "date", "time_slot", "doctor")).
			AddRow(5, 100, 1, "Flu", []byte("[]"), "Rest", now, now, day, "09:30", "House"))

	records, err := repo.ListByPatient(context.Background(), 1, 11)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "House", records[0].DoctorName)
	assert.Equal(t, day, records[0].AppointmentDate)
	assert.Equal(t, "Rest", *records[0].Instructions)
}

func TestRepository_DeleteByDoctor(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`DELETE FROM prescriptions WHERE hospital_id = \$1 AND appointment_id IN \(SELECT id FROM appointments WHERE hospital_id = \$2 AND doctor_id = \$3\)`).
		WithArgs(int64(1), int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByDoctor(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
