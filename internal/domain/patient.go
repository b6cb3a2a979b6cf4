package domain

import "time"

// Patient represents a patient registered at a hospital
type Patient struct {
	ID             int64
	HospitalID     int64
	Name           string
	Age            int
	Gender         *string
	Contact        *string
	Address        *string
	MedicalHistory *string
	CreatedBy      int64
	CreatedAt      time.Time
}

// PatientVisit is a patient together with the last visit to a given doctor
type PatientVisit struct {
	Patient
	LastVisit time.Time
}
