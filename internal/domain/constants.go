package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 15
	DashboardRecentLimit       = 5
	UpcomingAppointmentsLimit  = 5
)

// Business validation constants
const (
	MinUsernameLength = 4
	MinPasswordLength = 8
	MaxNotesLength    = 1000
	MaxPatientAge     = 150
	MaxMedicines      = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses допустимые статусы приёма
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// SlotFreeingStatuses статусы, при которых слот считается свободным.
// Должны совпадать с условием частичного индекса appointments_slot_key
var SlotFreeingStatuses = []AppointmentStatus{
	StatusCancelled,
}

// AllowedImageExtensions расширения файлов, принимаемых как фото врача
var AllowedImageExtensions = []string{"png", "jpg", "jpeg"}
