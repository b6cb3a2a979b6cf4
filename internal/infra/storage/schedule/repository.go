package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

const windowConstraint = "doctor_working_windows_key"

var windowColumns = []string{
	"id",
	"doctor_id",
	"hospital_id",
	"weekday",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"created_at",
}

// Repository репозиторий рабочих окон врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает рабочее окно врача на день недели
// Отсутствие строки означает, что врач в этот день не принимает (ErrWindowNotFound)
func (r *Repository) GetByWeekday(ctx context.Context, hospitalID, doctorID int64, weekday domain.Weekday) (*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("doctor_working_windows").
		Where(squirrel.Eq{
			"hospital_id": hospitalID,
			"doctor_id":   doctorID,
			"weekday":     string(weekday),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.WorkingWindow
	err = executor.QueryRowContext(ctx, query, args...).Scan(windowFields(&w)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan window: %v", ErrScanRow, err)
	}

	return &w, nil
}

// ListByDoctor возвращает недельное расписание врача с понедельника по воскресенье
func (r *Repository) ListByDoctor(ctx context.Context, hospitalID, doctorID int64) ([]*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("doctor_working_windows").
		Where(squirrel.Eq{"hospital_id": hospitalID, "doctor_id": doctorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.WorkingWindow, 0, len(domain.Weekdays))
	for rows.Next() {
		var w domain.WorkingWindow
		if err := rows.Scan(windowFields(&w)...); err != nil {
			return nil, fmt.Errorf("%w: ListByDoctor - scan window: %v", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - iterate rows: %v", ErrScanRow, err)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Weekday.Order() < windows[j].Weekday.Order()
	})

	return windows, nil
}

// DeleteByWeekday удаляет окно врача на день недели; отсутствие строки не ошибка
func (r *Repository) DeleteByWeekday(ctx context.Context, hospitalID, doctorID int64, weekday domain.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("doctor_working_windows").
		Where(squirrel.Eq{
			"hospital_id": hospitalID,
			"doctor_id":   doctorID,
			"weekday":     string(weekday),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByWeekday - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// Create сохраняет рабочее окно. Обновление выполняется как DeleteByWeekday + Create в одной транзакции
func (r *Repository) Create(ctx context.Context, w *domain.WorkingWindow) (*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_working_windows").
		Columns(
			"hospital_id",
			"doctor_id",
			"weekday",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
		).
		Values(
			w.HospitalID,
			w.DoctorID,
			string(w.Weekday),
			w.Start,
			w.End,
			w.BreakStart,
			w.BreakEnd,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.CreatedAt)
	if pgerrors.IsUniqueViolation(err, windowConstraint) {
		return nil, ErrWindowExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return w, nil
}

// DeleteByDoctor удаляет всё расписание врача
func (r *Repository) DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("doctor_working_windows").
		Where(squirrel.Eq{"hospital_id": hospitalID, "doctor_id": doctorID}).
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

func windowFields(w *domain.WorkingWindow) []any {
	return []any{
		&w.ID,
		&w.DoctorID,
		&w.HospitalID,
		&w.Weekday,
		&w.Start,
		&w.End,
		&w.BreakStart,
		&w.BreakEnd,
		&w.CreatedAt,
	}
}
