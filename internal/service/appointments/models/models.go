package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// ListRequest фильтры списка приёмов
type ListRequest struct {
	Search string
	Status string // пусто = все статусы
}

// UpdateStatusRequest новый статус приёма
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse приём с именами пациента и врача
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patientId"`
	PatientName    string    `json:"patientName"`
	PatientAge     int       `json:"patientAge"`
	PatientGender  *string   `json:"patientGender,omitempty"`
	DoctorID       int64     `json:"doctorId"`
	DoctorName     string    `json:"doctorName"`
	Specialization string    `json:"specialization"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"timeSlot"`
	DisplayTime    string    `json:"displayTime"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AppointmentListResponse список приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ExportFile выгрузка приёмов
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.AppointmentDetails) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		PatientName:    a.PatientName,
		PatientAge:     a.PatientAge,
		PatientGender:  a.PatientGender,
		DoctorID:       a.DoctorID,
		DoctorName:     a.DoctorName,
		Specialization: a.Specialization,
		Date:           a.Date.Format(domain.DateFormat),
		TimeSlot:       a.TimeSlot.String(),
		DisplayTime:    a.TimeSlot.Display(),
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список приёмов
func FromDomainAppointmentList(list []*domain.AppointmentDetails) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(list))}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, FromDomainAppointment(a))
	}
	return resp
}
