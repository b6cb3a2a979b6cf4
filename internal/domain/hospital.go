package domain

import "time"

// Hospital is the tenant; every other row references it
type Hospital struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Staff represents an administrator account of a hospital
type Staff struct {
	ID           int64
	HospitalID   int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time

	// Denormalized for login responses
	HospitalName string
}

// DashboardStats counters shown on the admin dashboard
type DashboardStats struct {
	Doctors      int
	Patients     int
	Appointments int
}
