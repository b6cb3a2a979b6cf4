package models

import (
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AppointmentItem строка приёма на панели
type AppointmentItem struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patientId"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	DisplayTime string `json:"displayTime"`
	Status      string `json:"status"`
}

// AdminDashboardResponse панель администратора
type AdminDashboardResponse struct {
	DoctorsCount       int               `json:"doctorsCount"`
	PatientsCount      int               `json:"patientsCount"`
	AppointmentsCount  int               `json:"appointmentsCount"`
	RecentAppointments []AppointmentItem `json:"recentAppointments"`
}

// DoctorDashboardResponse панель врача
type DoctorDashboardResponse struct {
	Date                 string            `json:"date"`
	TodayAppointments    []AppointmentItem `json:"todayAppointments"`
	UpcomingAppointments []AppointmentItem `json:"upcomingAppointments"`
}

// FromDomainAppointments конвертирует список приёмов
func FromDomainAppointments(list []*domain.AppointmentDetails) []AppointmentItem {
	items := make([]AppointmentItem, 0, len(list))
	for _, a := range list {
		items = append(items, AppointmentItem{
			ID:          a.ID,
			PatientID:   a.PatientID,
			PatientName: a.PatientName,
			DoctorName:  a.DoctorName,
			Date:        a.Date.Format(domain.DateFormat),
			TimeSlot:    a.TimeSlot.String(),
			DisplayTime: a.TimeSlot.Display(),
			Status:      string(a.Status),
		})
	}
	return items
}
