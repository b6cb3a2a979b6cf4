package models

import (
	"io"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// CreateDoctorRequest данные нового врача
type CreateDoctorRequest struct {
	Name            string   `json:"name"`
	Specialization  string   `json:"specialization"`
	ExperienceYears *int     `json:"experienceYears,omitempty"`
	ConsultationFee *float64 `json:"consultationFee,omitempty"`
	Contact         *string  `json:"contact,omitempty"`
	Bio             *string  `json:"bio,omitempty"`

	// Фото приходит только в multipart форме
	Image *ImageUpload `json:"-"`
}

// ImageUpload загруженный файл фотографии
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// SetCredentialsRequest логин и пароль врача
type SetCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response модели

// DoctorResponse данные врача (без хэша пароля)
type DoctorResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	ConsultationFee *float64  `json:"consultationFee,omitempty"`
	Contact         *string   `json:"contact,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	Username        *string   `json:"username,omitempty"`
	HasCredentials  bool      `json:"hasCredentials"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DoctorListResponse список врачей
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
}

// FromDomainDoctor конвертирует domain модель в DTO
func FromDomainDoctor(d *domain.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		ExperienceYears: d.ExperienceYears,
		ConsultationFee: d.ConsultationFee,
		Contact:         d.Contact,
		Bio:             d.Bio,
		ImageURL:        d.ImageURL,
		Username:        d.Username,
		HasCredentials:  d.HasCredentials(),
		CreatedAt:       d.CreatedAt,
	}
}

// FromDomainDoctorList конвертирует список врачей
func FromDomainDoctorList(list []*domain.Doctor) *DoctorListResponse {
	resp := &DoctorListResponse{Doctors: make([]DoctorResponse, 0, len(list))}
	for _, d := range list {
		resp.Doctors = append(resp.Doctors, FromDomainDoctor(d))
	}
	return resp
}
