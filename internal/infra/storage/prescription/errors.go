package prescription

import "errors"

var (
	// ErrPrescriptionNotFound возвращается, когда у приёма нет рецепта
	ErrPrescriptionNotFound = errors.New("prescription.repository: prescription not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("prescription.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("prescription.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("prescription.repository: failed to scan row")
)
