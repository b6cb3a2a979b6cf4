package doctors

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в больнице
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrUsernameTaken возвращается, когда логин уже занят
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidImage возвращается для фото с недопустимым расширением
	ErrInvalidImage = errors.New("unsupported image type")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
