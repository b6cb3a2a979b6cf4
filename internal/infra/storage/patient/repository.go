package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var patientColumns = []string{
	"p.id",
	"p.hospital_id",
	"p.name",
	"p.age",
	"p.gender",
	"p.contact",
	"p.address",
	"p.medical_history",
	"p.created_by",
	"p.created_at",
}

// Repository репозиторий пациентов, все запросы ограничены больницей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пациента
func (r *Repository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("patients").
		Columns(
			"hospital_id",
			"name",
			"age",
			"gender",
			"contact",
			"address",
			"medical_history",
			"created_by",
		).
		Values(
			p.HospitalID,
			p.Name,
			p.Age,
			p.Gender,
			p.Contact,
			p.Address,
			p.MedicalHistory,
			p.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByID получает пациента больницы по ID
func (r *Repository) GetByID(ctx context.Context, hospitalID, id int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients p").
		Where(squirrel.Eq{"p.hospital_id": hospitalID, "p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Patient
	err = executor.QueryRowContext(ctx, query, args...).Scan(patientFields(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan patient: %v", ErrScanRow, err)
	}

	return &p, nil
}

// List возвращает пациентов больницы, новые первыми
// search ищет по имени и контакту без учёта регистра
func (r *Repository) List(ctx context.Context, hospitalID int64, search string) ([]*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(patientColumns...).
		From("patients p").
		Where(squirrel.Eq{"p.hospital_id": hospitalID}).
		OrderBy("p.created_at DESC", "p.id DESC")

	if pattern := psqlbuilder.ContainsPattern(search); pattern != "" {
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.contact": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0)
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(patientFields(&p)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan patient: %v", ErrScanRow, err)
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return patients, nil
}

// ListByDoctor возвращает пациентов, у которых был хотя бы один приём у врача,
// с датой последнего визита (последние визиты первыми)
func (r *Repository) ListByDoctor(ctx context.Context, hospitalID, doctorID int64, search string) ([]*domain.PatientVisit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, patientColumns...), "MAX(a.date) AS last_visit")
	builder := psqlbuilder.Select(columns...).
		From("patients p").
		Join("appointments a ON a.patient_id = p.id AND a.hospital_id = p.hospital_id").
		Where(squirrel.Eq{"p.hospital_id": hospitalID, "a.doctor_id": doctorID}).
		GroupBy("p.id").
		OrderBy("last_visit DESC", "p.id DESC")

	if pattern := psqlbuilder.ContainsPattern(search); pattern != "" {
		builder = builder.Where(squirrel.ILike{"p.name": pattern})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	visits := make([]*domain.PatientVisit, 0)
	for rows.Next() {
		var v domain.PatientVisit
		fields := append(patientFields(&v.Patient), &v.LastVisit)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("%w: ListByDoctor - scan patient: %v", ErrScanRow, err)
		}
		visits = append(visits, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - iterate rows: %v", ErrScanRow, err)
	}

	return visits, nil
}

// Delete удаляет пациента. Если на пациента ссылаются приёмы, возвращает ErrPatientInUse
func (r *Repository) Delete(ctx context.Context, hospitalID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("patients").
		Where(squirrel.Eq{"hospital_id": hospitalID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsForeignKeyViolation(err) {
		return ErrPatientInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

func patientFields(p *domain.Patient) []any {
	return []any{
		&p.ID,
		&p.HospitalID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.Contact,
		&p.Address,
		&p.MedicalHistory,
		&p.CreatedBy,
		&p.CreatedAt,
	}
}
