package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в больнице
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrForbidden возвращается, когда врач запрашивает слоты коллеги
	ErrForbidden = errors.New("access to another doctor's slots is forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
