package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "No Show"
)

// ParseAppointmentStatus validates a status coming from the API
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// Appointment represents a patient visit booked into a doctor's slot
type Appointment struct {
	ID         int64
	PatientID  int64
	DoctorID   int64
	HospitalID int64
	Date       time.Time
	TimeSlot   types.TimeString
	Status     AppointmentStatus
	Notes      *string
	CreatedAt  time.Time
}

// AppointmentDetails is an appointment joined with patient and doctor names
type AppointmentDetails struct {
	Appointment
	PatientName    string
	PatientAge     int
	PatientGender  *string
	DoctorName     string
	Specialization string
}

// AppointmentFilter фильтр для списков приёмов
type AppointmentFilter struct {
	HospitalID int64              // Обязательный параметр (тенант)
	DoctorID   *int64             // Только приёмы врача (кабинет врача)
	PatientID  *int64             // Только приёмы пациента (история)
	Search     string             // Поиск по имени пациента (и врача, если DoctorID не задан)
	Status     *AppointmentStatus // Фильтр по статусу
	Date       *time.Time         // Конкретная дата
	AfterDate  *time.Time         // Строго после даты
	Ascending  bool               // Сортировка по возрастанию даты и времени
	Limit      uint64             // 0 = без ограничения
}
