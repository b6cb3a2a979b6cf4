package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// CreatePatientRequest данные нового пациента
type CreatePatientRequest struct {
	Name           string  `json:"name"`
	Age            *int    `json:"age"`
	Gender         string  `json:"gender"`
	Contact        string  `json:"contact"`
	Address        *string `json:"address,omitempty"`
	MedicalHistory *string `json:"medicalHistory,omitempty"`
}

// Response модели

// PatientResponse данные пациента
type PatientResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         *string   `json:"gender,omitempty"`
	Contact        *string   `json:"contact,omitempty"`
	Address        *string   `json:"address,omitempty"`
	MedicalHistory *string   `json:"medicalHistory,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PatientListResponse список пациентов
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
}

// PatientVisitResponse пациент врача с датой последнего визита
type PatientVisitResponse struct {
	PatientResponse
	LastVisit string `json:"lastVisit"`
}

// PatientVisitListResponse список пациентов врача
type PatientVisitListResponse struct {
	Patients []PatientVisitResponse `json:"patients"`
}

// HistoryAppointment приём в истории пациента
type HistoryAppointment struct {
	ID         int64   `json:"id"`
	Date       string  `json:"date"`
	TimeSlot   string  `json:"timeSlot"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	DoctorID   int64   `json:"doctorId"`
	DoctorName string  `json:"doctorName"`
}

// HistoryPrescription рецепт в истории пациента
type HistoryPrescription struct {
	ID              int64             `json:"id"`
	AppointmentID   int64             `json:"appointmentId"`
	AppointmentDate string            `json:"appointmentDate"`
	TimeSlot        string            `json:"timeSlot"`
	DoctorName      string            `json:"doctorName"`
	Diagnosis       string            `json:"diagnosis"`
	Medicines       []domain.Medicine `json:"medicines"`
	Instructions    *string           `json:"instructions,omitempty"`
}

// HistoryResponse история пациента: карточка, приёмы и рецепты
type HistoryResponse struct {
	Patient       PatientResponse       `json:"patient"`
	Appointments  []HistoryAppointment  `json:"appointments"`
	Prescriptions []HistoryPrescription `json:"prescriptions"`
}

// FromDomainPatient конвертирует domain модель в DTO
func FromDomainPatient(p *domain.Patient) PatientResponse {
	return PatientResponse{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Gender:         p.Gender,
		Contact:        p.Contact,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		CreatedAt:      p.CreatedAt,
	}
}

// FromDomainPatientList конвертирует список пациентов
func FromDomainPatientList(list []*domain.Patient) *PatientListResponse {
	resp := &PatientListResponse{Patients: make([]PatientResponse, 0, len(list))}
	for _, p := range list {
		resp.Patients = append(resp.Patients, FromDomainPatient(p))
	}
	return resp
}

// FromDomainVisitList конвертирует список пациентов врача
func FromDomainVisitList(list []*domain.PatientVisit) *PatientVisitListResponse {
	resp := &PatientVisitListResponse{Patients: make([]PatientVisitResponse, 0, len(list))}
	for _, v := range list {
		resp.Patients = append(resp.Patients, PatientVisitResponse{
			PatientResponse: FromDomainPatient(&v.Patient),
			LastVisit:       v.LastVisit.Format(domain.DateFormat),
		})
	}
	return resp
}

// FromDomainHistory собирает историю пациента
func FromDomainHistory(p *domain.Patient, appointments []*domain.AppointmentDetails, prescriptions []*domain.PrescriptionRecord) *HistoryResponse {
	resp := &HistoryResponse{
		Patient:       FromDomainPatient(p),
		Appointments:  make([]HistoryAppointment, 0, len(appointments)),
		Prescriptions: make([]HistoryPrescription, 0, len(prescriptions)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, HistoryAppointment{
			ID:         a.ID,
			Date:       a.Date.Format(domain.DateFormat),
			TimeSlot:   a.TimeSlot.String(),
			Status:     string(a.Status),
			Notes:      a.Notes,
			DoctorID:   a.DoctorID,
			DoctorName: a.DoctorName,
		})
	}
	for _, pr := range prescriptions {
		medicines := []domain.Medicine(pr.Medicines)
		if medicines == nil {
			medicines = []domain.Medicine{}
		}
		resp.Prescriptions = append(resp.Prescriptions, HistoryPrescription{
			ID:              pr.ID,
			AppointmentID:   pr.AppointmentID,
			AppointmentDate: pr.AppointmentDate.Format(domain.DateFormat),
			TimeSlot:        pr.TimeSlot.String(),
			DoctorName:      pr.DoctorName,
			Diagnosis:       pr.Diagnosis,
			Medicines:       medicines,
			Instructions:    pr.Instructions,
		})
	}
	return resp
}
