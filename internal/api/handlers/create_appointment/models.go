package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	createAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time slot")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	Date      string  `json:"date"`     // "2026-05-04"
	TimeSlot  string  `json:"timeSlot"` // "09:15"
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	PatientID   int64   `json:"patientId"`
	PatientName string  `json:"patientName"`
	DoctorID    int64   `json:"doctorId"`
	DoctorName  string  `json:"doctorName"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	DisplayTime string  `json:"displayTime"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(actor domain.Actor) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	slot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createAppointment.Request{
		Actor:     actor,
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		Date:      date,
		TimeSlot:  slot,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		PatientID:   resp.PatientID,
		PatientName: resp.PatientName,
		DoctorID:    resp.DoctorID,
		DoctorName:  resp.DoctorName,
		Date:        resp.Date.Format(domain.DateFormat),
		TimeSlot:    resp.TimeSlot.String(),
		DisplayTime: resp.TimeSlot.Display(),
		Status:      string(resp.Status),
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
