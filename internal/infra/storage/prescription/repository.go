package prescription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var prescriptionColumns = []string{
	"rx.id",
	"rx.appointment_id",
	"rx.hospital_id",
	"rx.diagnosis",
	"rx.medicines",
	"rx.instructions",
	"rx.created_at",
	"rx.updated_at",
}

// Repository репозиторий рецептов, один рецепт на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рецептов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByAppointment получает рецепт приёма
func (r *Repository) GetByAppointment(ctx context.Context, hospitalID, appointmentID int64) (*domain.Prescription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(prescriptionColumns...).
		From("prescriptions rx").
		Where(squirrel.Eq{"rx.hospital_id": hospitalID, "rx.appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Prescription
	err = executor.QueryRowContext(ctx, query, args...).Scan(prescriptionFields(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointment - scan prescription: %v", ErrScanRow, err)
	}

	return &p, nil
}

// Upsert создаёт рецепт или перезаписывает существующий для того же приёма
func (r *Repository) Upsert(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	medicines := p.Medicines
	if medicines == nil {
		medicines = domain.Medicines{}
	}

	query, args, err := psqlbuilder.Insert("prescriptions").
		Columns("hospital_id", "appointment_id", "diagnosis", "medicines", "instructions").
		Values(p.HospitalID, p.AppointmentID, p.Diagnosis, medicines, p.Instructions).
		Suffix("ON CONFLICT (appointment_id) DO UPDATE SET " +
			"diagnosis = EXCLUDED.diagnosis, " +
			"medicines = EXCLUDED.medicines, " +
			"instructions = EXCLUDED.instructions, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	p.Medicines = medicines

	return p, nil
}

// ListByPatient возвращает рецепты пациента с датой приёма и врачом, новые первыми
func (r *Repository) ListByPatient(ctx context.Context, hospitalID, patientID int64) ([]*domain.PrescriptionRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, prescriptionColumns...), "a.date", "a.time_slot", "d.name")
	query, args, err := psqlbuilder.Select(columns...).
		From("prescriptions rx").
		Join("appointments a ON a.id = rx.appointment_id").
		Join("doctors d ON d.id = a.doctor_id").
		Where(squirrel.Eq{"rx.hospital_id": hospitalID, "a.patient_id": patientID}).
		OrderBy("a.date DESC", "a.time_slot DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPatient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPatient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.PrescriptionRecord, 0)
	for rows.Next() {
		var rec domain.PrescriptionRecord
		fields := append(prescriptionFields(&rec.Prescription), &rec.AppointmentDate, &rec.TimeSlot, &rec.DoctorName)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("%w: ListByPatient - scan prescription: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPatient - iterate rows: %v", ErrScanRow, err)
	}

	return records, nil
}

// DeleteByDoctor удаляет рецепты всех приёмов врача
func (r *Repository) DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("prescriptions").
		Where(squirrel.Eq{"hospital_id": hospitalID}).
		Where(squirrel.Expr(
			"appointment_id IN (SELECT id FROM appointments WHERE hospital_id = ? AND doctor_id = ?)",
			hospitalID, doctorID,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDoctor - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func prescriptionFields(p *domain.Prescription) []any {
	return []any{
		&p.ID,
		&p.AppointmentID,
		&p.HospitalID,
		&p.Diagnosis,
		&p.Medicines,
		&p.Instructions,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
