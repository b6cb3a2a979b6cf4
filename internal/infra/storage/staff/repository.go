package staff

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

const emailConstraint = "staff_email_key"

// Repository репозиторий администраторов больниц
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает учётную запись администратора
// Email приводится к нижнему регистру; дубликат возвращает ErrEmailTaken
func (r *Repository) Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.Email = normalizeEmail(s.Email)

	query, args, err := psqlbuilder.Insert("staff").
		Columns("hospital_id", "name", "email", "password_hash").
		Values(s.HospitalID, s.Name, s.Email, s.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
	if pgerrors.IsUniqueViolation(err, emailConstraint) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByEmail получает администратора вместе с названием больницы
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.hospital_id",
		"s.name",
		"s.email",
		"s.password_hash",
		"s.created_at",
		"h.name",
	).
		From("staff s").
		Join("hospitals h ON h.id = s.hospital_id").
		Where(squirrel.Expr("LOWER(s.email) = ?", normalizeEmail(email))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.HospitalID,
		&s.Name,
		&s.Email,
		&s.PasswordHash,
		&s.CreatedAt,
		&s.HospitalName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan staff: %v", ErrScanRow, err)
	}

	return &s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
