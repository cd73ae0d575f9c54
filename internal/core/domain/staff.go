package domain

import "time"

type StaffRole string

const (
	StaffRoleDoctor       StaffRole = "doctor"
	StaffRoleNurse        StaffRole = "nurse"
	StaffRoleReceptionist StaffRole = "receptionist"
	StaffRoleAdmin        StaffRole = "admin"
)

type StaffStatus string

const (
	StaffActive     StaffStatus = "active"
	StaffInactive   StaffStatus = "inactive"
	StaffTerminated StaffStatus = "terminated"
)

// Staff is a clinic employee. Only role=doctor staff may be assigned as an
// appointment's practitioner.
type Staff struct {
	ID             string      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	Email          string      `json:"email" db:"email"`
	Phone          string      `json:"phone" db:"phone"`
	Role           StaffRole   `json:"role" db:"role"`
	Specialization *string     `json:"specialization,omitempty" db:"specialization"`
	LicenseNumber  *string     `json:"licenseNumber,omitempty" db:"license_number"`
	HireDate       string      `json:"hireDate" db:"hire_date"`
	Status         StaffStatus `json:"status" db:"status"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
}

func ValidStaffRole(r string) bool {
	switch StaffRole(r) {
	case StaffRoleDoctor, StaffRoleNurse, StaffRoleReceptionist, StaffRoleAdmin:
		return true
	}
	return false
}

type StaffFilter struct {
	Search string
	Role   string
	Status string
	Page   int
	Limit  int
}

// StaffStats is the headcount breakdown shown on the staff page.
type StaffStats struct {
	Total   int            `json:"total"`
	Active  int            `json:"active"`
	Doctors int            `json:"doctors"`
	ByRole  map[string]int `json:"byRole"`
}
