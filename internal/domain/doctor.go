package domain

import (
	"strings"
	"time"
)

// Doctor represents a doctor employed by a hospital
type Doctor struct {
	ID              int64
	HospitalID      int64
	Name            string
	Specialization  string
	ExperienceYears *int
	ConsultationFee *float64
	Contact         *string
	Bio             *string
	ImageURL        *string // nil when no photo was uploaded
	Username        *string // nil until credentials are set
	PasswordHash    *string
	CreatedBy       int64
	CreatedAt       time.Time

	// Denormalized for login responses
	HospitalName string
}

// HasCredentials returns true if the doctor can log in
func (d *Doctor) HasCredentials() bool {
	return d.Username != nil && d.PasswordHash != nil && *d.PasswordHash != ""
}

// ImageExtension returns the lower-cased extension of an uploaded photo
// and whether it is one of AllowedImageExtensions.
func ImageExtension(filename string) (string, bool) {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return "", false
	}
	ext := strings.ToLower(filename[i+1:])
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return ext, true
		}
	}
	return "", false
}
