package create_appointment

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден в больнице
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrDoctorNotFound возвращается, когда врач не найден в больнице
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrDateInPast возвращается при записи на прошедшую дату
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrDoctorNotAvailable возвращается, когда у врача нет рабочего окна в этот день недели
	ErrDoctorNotAvailable = errors.New("create_appointment: doctor does not work on this day")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом ни одного слота
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят активным приёмом
	ErrSlotTaken = errors.New("create_appointment: time slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
