package migrator

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/m04kA/SMC-ClinicService/migrations"
)

var (
	// ErrInit возвращается, если не удалось создать мигратор
	ErrInit = errors.New("migrator: failed to init")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrator: failed to migrate")
)

// Migrator применяет встроенные SQL миграции к PostgreSQL
type Migrator struct {
	m *migrate.Migrate
}

// New создаёт мигратор поверх открытого соединения
func New(db *sql.DB) (*Migrator, error) {
	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: db driver: %v", ErrInit, err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: source driver: %v", ErrInit, err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("%w: create migrator: %v", ErrInit, err)
	}

	return &Migrator{m: m}, nil
}

// Up применяет все новые миграции. Отсутствие изменений не считается ошибкой
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}
	return nil
}

// Down откатывает steps последних миграций
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%w: down: steps must be positive", ErrMigrate)
	}
	if err := m.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: down: %v", ErrMigrate, err)
	}
	return nil
}

// Force выставляет версию без применения миграций (после ручного исправления dirty-состояния)
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("%w: force %d: %v", ErrMigrate, version, err)
	}
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: version: %v", ErrMigrate, err)
	}
	return version, dirty, nil
}

// Close освобождает драйверы. Соединение *sql.DB тоже закрывается драйвером postgres
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
