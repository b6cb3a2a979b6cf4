package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда у врача нет рабочего окна на день недели
	ErrWindowNotFound = errors.New("schedule.repository: working window not found")

	// ErrWindowExists возвращается при нарушении уникальности (врач, день недели, больница)
	ErrWindowExists = errors.New("schedule.repository: working window already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
