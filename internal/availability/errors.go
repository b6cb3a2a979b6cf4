package availability

import "errors"

var (
	// ErrInvalidDuration возвращается при длительности слота <= 0
	ErrInvalidDuration = errors.New("availability: slot duration must be positive")

	// ErrInvalidWindow возвращается, если начало/конец окна отсутствуют или некорректны
	ErrInvalidWindow = errors.New("availability: invalid working window")
)
