package patients

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден в больнице
	ErrPatientNotFound = errors.New("patient not found")

	// ErrPatientHasAppointments возвращается при удалении пациента с приёмами
	ErrPatientHasAppointments = errors.New("cannot delete patient with existing appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
