package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// MedicineRequest строка рецепта
type MedicineRequest struct {
	Name           string   `json:"name"`
	Dosage         string   `json:"dosage"`
	Frequency      string   `json:"frequency"`
	TimeOfDay      []string `json:"timeOfDay"`
	RelationToMeal string   `json:"relationToMeal"`
}

// SavePrescriptionRequest рецепт приёма (создание или перезапись)
type SavePrescriptionRequest struct {
	Diagnosis    string            `json:"diagnosis"`
	Medicines    []MedicineRequest `json:"medicines"`
	Instructions *string           `json:"instructions,omitempty"`
}

// Response модели

// AppointmentInfo приём, к которому относится рецепт
type AppointmentInfo struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	TimeSlot       string  `json:"timeSlot"`
	DisplayTime    string  `json:"displayTime"`
	Status         string  `json:"status"`
	PatientID      int64   `json:"patientId"`
	PatientName    string  `json:"patientName"`
	PatientAge     int     `json:"patientAge"`
	PatientGender  *string `json:"patientGender,omitempty"`
	DoctorName     string  `json:"doctorName"`
	Specialization string  `json:"specialization"`
}

// PrescriptionResponse рецепт
type PrescriptionResponse struct {
	ID           int64             `json:"id"`
	Diagnosis    string            `json:"diagnosis"`
	Medicines    []domain.Medicine `json:"medicines"`
	Instructions *string           `json:"instructions,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// PrescriptionPageResponse приём и его рецепт (nil, если ещё не выписан)
type PrescriptionPageResponse struct {
	Appointment  AppointmentInfo       `json:"appointment"`
	Prescription *PrescriptionResponse `json:"prescription"`
}

// NextAppointment ближайший следующий визит пациента
type NextAppointment struct {
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	DisplayTime string `json:"displayTime"`
}

// PrintResponse данные печатной формы рецепта
type PrintResponse struct {
	HospitalName    string                `json:"hospitalName"`
	Appointment     AppointmentInfo       `json:"appointment"`
	Prescription    *PrescriptionResponse `json:"prescription"`
	NextAppointment *NextAppointment      `json:"nextAppointment"`
}

// FromDomainAppointment конвертирует приём
func FromDomainAppointment(a *domain.AppointmentDetails) AppointmentInfo {
	return AppointmentInfo{
		ID:             a.ID,
		Date:           a.Date.Format(domain.DateFormat),
		TimeSlot:       a.TimeSlot.String(),
		DisplayTime:    a.TimeSlot.Display(),
		Status:         string(a.Status),
		PatientID:      a.PatientID,
		PatientName:    a.PatientName,
		PatientAge:     a.PatientAge,
		PatientGender:  a.PatientGender,
		DoctorName:     a.DoctorName,
		Specialization: a.Specialization,
	}
}

// FromDomainPrescription конвертирует рецепт, nil остаётся nil
func FromDomainPrescription(p *domain.Prescription) *PrescriptionResponse {
	if p == nil {
		return nil
	}
	medicines := []domain.Medicine(p.Medicines)
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	return &PrescriptionResponse{
		ID:           p.ID,
		Diagnosis:    p.Diagnosis,
		Medicines:    medicines,
		Instructions: p.Instructions,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromDomainPrintable конвертирует печатную форму
func FromDomainPrintable(p *domain.PrintablePrescription) *PrintResponse {
	resp := &PrintResponse{
		HospitalName: p.HospitalName,
		Appointment:  FromDomainAppointment(&p.Appointment),
		Prescription: FromDomainPrescription(p.Prescription),
	}
	if p.NextAppointment != nil {
		resp.NextAppointment = &NextAppointment{
			Date:        p.NextAppointment.Date.Format(domain.DateFormat),
			TimeSlot:    p.NextAppointment.TimeSlot.String(),
			DisplayTime: p.NextAppointment.TimeSlot.Display(),
		}
	}
	return resp
}
