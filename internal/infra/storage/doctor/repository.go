package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

const usernameConstraint = "doctors_username_key"

var doctorColumns = []string{
	"d.id",
	"d.hospital_id",
	"d.name",
	"d.specialization",
	"d.experience_years",
	"d.consultation_fee",
	"d.contact",
	"d.bio",
	"d.image_url",
	"d.username",
	"d.password_hash",
	"d.created_by",
	"d.created_at",
	"h.name",
}

// Repository репозиторий врачей
// Все методы, кроме GetByUsername, ограничены больницей (hospitalID)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет врача без учётных данных
func (r *Repository) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctors").
		Columns(
			"hospital_id",
			"name",
			"specialization",
			"experience_years",
			"consultation_fee",
			"contact",
			"bio",
			"image_url",
			"created_by",
		).
		Values(
			d.HospitalID,
			d.Name,
			d.Specialization,
			d.ExperienceYears,
			d.ConsultationFee,
			d.Contact,
			d.Bio,
			d.ImageURL,
			d.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return d, nil
}

// GetByID получает врача больницы по ID
func (r *Repository) GetByID(ctx context.Context, hospitalID, id int64) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectDoctors().
		Where(squirrel.Eq{"d.hospital_id": hospitalID, "d.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDoctor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}

	return d, nil
}

// GetByUsername ищет врача по логину для входа в систему
// Логин уникален глобально, поэтому больница здесь не нужна
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectDoctors().
		Where(squirrel.Expr("LOWER(d.username) = ?", normalizeUsername(username))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDoctor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - scan doctor: %v", ErrScanRow, err)
	}

	return d, nil
}

// List возвращает врачей больницы, отсортированных по имени
// search ищет по имени и специализации без учёта регистра
func (r *Repository) List(ctx context.Context, hospitalID int64, search string) ([]*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectDoctors().
		Where(squirrel.Eq{"d.hospital_id": hospitalID}).
		OrderBy("d.name ASC", "d.id ASC")

	if pattern := psqlbuilder.ContainsPattern(search); pattern != "" {
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"d.name": pattern},
			squirrel.ILike{"d.specialization": pattern},
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

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan doctor: %v", ErrScanRow, err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return doctors, nil
}

// SetCredentials задаёт логин и хэш пароля врача
func (r *Repository) SetCredentials(ctx context.Context, hospitalID, id int64, username, passwordHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("doctors").
		Set("username", strings.TrimSpace(username)).
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"hospital_id": hospitalID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCredentials - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerrors.IsUniqueViolation(err, usernameConstraint) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("%w: SetCredentials - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected(result, "SetCredentials")
}

// Delete удаляет врача. Зависимые записи удаляются сервисом в той же транзакции
func (r *Repository) Delete(ctx context.Context, hospitalID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("doctors").
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

func selectDoctors() squirrel.SelectBuilder {
	return psqlbuilder.Select(doctorColumns...).
		From("doctors d").
		Join("hospitals h ON h.id = d.hospital_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoctor(row rowScanner) (*domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(
		&d.ID,
		&d.HospitalID,
		&d.Name,
		&d.Specialization,
		&d.ExperienceYears,
		&d.ConsultationFee,
		&d.Contact,
		&d.Bio,
		&d.ImageURL,
		&d.Username,
		&d.PasswordHash,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.HospitalName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func requireAffected(result sql.Result, method string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
