package hospital

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

// Repository репозиторий больниц (тенантов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает больницу. Вызывается внутри транзакции регистрации
func (r *Repository) Create(ctx context.Context, h *domain.Hospital) (*domain.Hospital, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("hospitals").
		Columns("name").
		Values(h.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByID получает больницу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("hospitals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.Hospital
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.Name, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHospitalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hospital: %v", ErrScanRow, err)
	}

	return &h, nil
}

// Stats считает врачей, пациентов и приёмы больницы одним запросом
func (r *Repository) Stats(ctx context.Context, hospitalID int64) (*domain.DashboardStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"(SELECT COUNT(*) FROM doctors WHERE hospital_id = h.id)",
		"(SELECT COUNT(*) FROM patients WHERE hospital_id = h.id)",
		"(SELECT COUNT(*) FROM appointments WHERE hospital_id = h.id)",
	).
		From("hospitals h").
		Where(squirrel.Eq{"h.id": hospitalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.DashboardStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.Doctors, &stats.Patients, &stats.Appointments)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHospitalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan counters: %v", ErrScanRow, err)
	}

	return &stats, nil
}
