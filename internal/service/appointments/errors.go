package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден (или принадлежит другому врачу)
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken возвращается при возврате отменённого приёма в занятый слот
	ErrSlotTaken = errors.New("time slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
