package schedule

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в больнице
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrInvalidInput возвращается при некорректном рабочем окне
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
