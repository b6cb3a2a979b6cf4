package domain

// Role of an authenticated user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// ParseRole validates a role coming from the API or a token
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor:
		return Role(s), true
	default:
		return "", false
	}
}

// Actor is the authenticated caller.
// It is passed explicitly into services; HospitalID scopes every query.
type Actor struct {
	ID           int64 // staff.id for admins, doctors.id for doctors
	Role         Role
	HospitalID   int64
	Name         string
	HospitalName string
}

// IsDoctor returns true for doctors
func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
