package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден в больнице
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда слот врача уже занят активным приёмом
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrConflict возвращается, когда сериализуемая транзакция столкнулась с параллельной записью
	ErrConflict = errors.New("appointment.repository: concurrent booking conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
