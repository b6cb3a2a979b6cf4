package prescriptions

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден или принадлежит другому врачу
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidInput возвращается при некорректном рецепте
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
