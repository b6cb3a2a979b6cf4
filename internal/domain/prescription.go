package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// TimeOfDay when a medicine is taken
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// MealRelation of a medicine intake
type MealRelation string

const (
	BeforeMeal MealRelation = "before"
	AfterMeal  MealRelation = "after"
	WithMeal   MealRelation = "with"
)

// ParseTimeOfDay validates a time-of-day value
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	switch TimeOfDay(s) {
	case Morning, Afternoon, Evening:
		return TimeOfDay(s), true
	default:
		return "", false
	}
}

// ParseMealRelation validates a meal relation value; empty means "after"
func ParseMealRelation(s string) (MealRelation, bool) {
	switch MealRelation(s) {
	case "":
		return AfterMeal, true
	case BeforeMeal, AfterMeal, WithMeal:
		return MealRelation(s), true
	default:
		return "", false
	}
}

// Medicine is one line of a prescription
type Medicine struct {
	Name           string       `json:"name"`
	Dosage         string       `json:"dosage"`
	Frequency      string       `json:"frequency"`
	TimeOfDay      []TimeOfDay  `json:"timeOfDay"`
	RelationToMeal MealRelation `json:"relationToMeal"`
}

// Medicines ordered medicine list, stored as a JSONB array
type Medicines []Medicine

// Value implements driver.Valuer.
func (m Medicines) Value() (driver.Value, error) {
	if m == nil {
		m = Medicines{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("domain: marshal medicines: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (m *Medicines) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Medicines{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into Medicines", src)
	}

	var out Medicines
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("domain: unmarshal medicines: %w", err)
	}
	if out == nil {
		out = Medicines{}
	}
	*m = out
	return nil
}

// Prescription issued by a doctor for one appointment
type Prescription struct {
	ID            int64
	AppointmentID int64
	HospitalID    int64
	Diagnosis     string
	Medicines     Medicines
	Instructions  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PrescriptionRecord is a prescription joined with the appointment it belongs to
type PrescriptionRecord struct {
	Prescription
	AppointmentDate time.Time
	TimeSlot        types.TimeString
	DoctorName      string
}

// PrintablePrescription collects everything printed on a prescription sheet
type PrintablePrescription struct {
	Appointment     AppointmentDetails
	HospitalName    string
	Prescription    *Prescription // nil if the doctor has not written one yet
	NextAppointment *Appointment  // nearest later Scheduled visit of the patient
}
