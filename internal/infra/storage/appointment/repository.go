package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

const slotConstraint = "appointments_slot_key"

var appointmentColumns = []string{
	"a.id",
	"a.patient_id",
	"a.doctor_id",
	"a.hospital_id",
	"a.date",
	"a.time_slot",
	"a.status",
	"a.notes",
	"a.created_at",
}

var detailsColumns = append(append([]string{}, appointmentColumns...),
	"p.name",
	"p.age",
	"p.gender",
	"d.name",
	"d.specialization",
)

// Repository репозиторий приёмов, все запросы ограничены больницей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает приём
// Частичный уникальный индекс appointments_slot_key не даёт записать
// два активных приёма в один слот; нарушение возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"hospital_id",
			"patient_id",
			"doctor_id",
			"date",
			"time_slot",
			"status",
			"notes",
		).
		Values(
			a.HospitalID,
			a.PatientID,
			a.DoctorID,
			a.Date,
			a.TimeSlot,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
	if pgerrors.IsUniqueViolation(err, slotConstraint) {
		return nil, ErrSlotTaken
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает приём вместе с именами пациента и врача
func (r *Repository) GetByID(ctx context.Context, hospitalID, id int64) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectDetails().
		Where(squirrel.Eq{"a.hospital_id": hospitalID, "a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.AppointmentDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(detailsFields(&details)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return &details, nil
}

// List получает приёмы с фильтрацией
//
// Примеры:
//
//  1. Все приёмы больницы (новые первыми):
//     domain.AppointmentFilter{HospitalID: 1}
//
//  2. Сегодняшние приёмы врача по времени:
//     domain.AppointmentFilter{HospitalID: 1, DoctorID: &doctorID, Date: &today, Ascending: true}
//
//  3. Ближайший следующий визит пациента:
//     domain.AppointmentFilter{HospitalID: 1, PatientID: &patientID, Status: &scheduled,
//     AfterDate: &date, Ascending: true, Limit: 1}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectDetails().
		Where(squirrel.Eq{"a.hospital_id": filter.HospitalID})

	if filter.DoctorID != nil {
		builder = builder.Where(squirrel.Eq{"a.doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		builder = builder.Where(squirrel.Eq{"a.patient_id": *filter.PatientID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"a.date": *filter.Date})
	}
	if filter.AfterDate != nil {
		builder = builder.Where(squirrel.Gt{"a.date": *filter.AfterDate})
	}

	// Врач ищет только по пациентам, администратор также по врачам
	if pattern := psqlbuilder.ContainsPattern(filter.Search); pattern != "" {
		if filter.DoctorID != nil {
			builder = builder.Where(squirrel.ILike{"p.name": pattern})
		} else {
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"p.name": pattern},
				squirrel.ILike{"d.name": pattern},
			})
		}
	}

	if filter.Ascending {
		builder = builder.OrderBy("a.date ASC", "a.time_slot ASC")
	} else {
		builder = builder.OrderBy("a.date DESC", "a.time_slot DESC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
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

	result := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		var details domain.AppointmentDetails
		if err := rows.Scan(detailsFields(&details)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %v", ErrScanRow, err)
		}
		result = append(result, &details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

func slotFreeingStatuses() []string {
	statuses := make([]string, 0, len(domain.SlotFreeingStatuses))
	for _, s := range domain.SlotFreeingStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

// BookedSlots возвращает начала занятых слотов врача на дату
// Отменённые приёмы слот не занимают.
// Внутри транзакции строки блокируются (FOR UPDATE) до её завершения
func (r *Repository) BookedSlots(ctx context.Context, hospitalID, doctorID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("time_slot").
		From("appointments").
		Where(squirrel.Eq{
			"hospital_id": hospitalID,
			"doctor_id":   doctorID,
			"date":        date,
		}).
		Where(squirrel.NotEq{"status": slotFreeingStatuses()}).
		OrderBy("time_slot ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if pgerrors.IsSerializationFailure(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: BookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookedSlots - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

// UpdateStatus меняет статус приёма
// doctorID != nil ограничивает обновление приёмами этого врача
// Возврат приёма из Cancelled в активный статус может упереться в занятый слот (ErrSlotTaken)
func (r *Repository) UpdateStatus(ctx context.Context, hospitalID, id int64, doctorID *int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{"hospital_id": hospitalID, "id": id}
	if doctorID != nil {
		where["doctor_id"] = *doctorID
	}

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsUniqueViolation(err, slotConstraint) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected(result, "UpdateStatus")
}

// Delete удаляет приём; рецепт удаляется каскадом
func (r *Repository) Delete(ctx context.Context, hospitalID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"hospital_id": hospitalID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected(result, "Delete")
}

// DeleteByDoctor удаляет все приёмы врача (при удалении врача)
func (r *Repository) DeleteByDoctor(ctx context.Context, hospitalID, doctorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
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

// CountByPatient считает приёмы пациента (любого статуса)
func (r *Repository) CountByPatient(ctx context.Context, hospitalID, patientID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"hospital_id": hospitalID, "patient_id": patientID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByPatient - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByPatient - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func selectDetails() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("appointments a").
		Join("patients p ON p.id = a.patient_id").
		Join("doctors d ON d.id = a.doctor_id")
}

func detailsFields(d *domain.AppointmentDetails) []any {
	return []any{
		&d.ID,
		&d.PatientID,
		&d.DoctorID,
		&d.HospitalID,
		&d.Date,
		&d.TimeSlot,
		&d.Status,
		&d.Notes,
		&d.CreatedAt,
		&d.PatientName,
		&d.PatientAge,
		&d.PatientGender,
		&d.DoctorName,
		&d.Specialization,
	}
}

func requireAffected(result sql.Result, method string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
