package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Исходы записи для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Request модель запроса на запись к врачу
type Request struct {
	Actor     domain.Actor     // Администратор, который записывает
	PatientID int64            // ID пациента
	DoctorID  int64            // ID врача
	Date      time.Time        // Дата приёма (без времени)
	TimeSlot  types.TimeString // Начало слота, например "09:15"
	Notes     *string          // Заметки (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID          int64
	PatientID   int64
	PatientName string
	DoctorID    int64
	DoctorName  string
	Date        time.Time
	TimeSlot    types.TimeString
	Status      domain.AppointmentStatus
	Notes       *string
	CreatedAt   time.Time
}
