package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Patient is a child registered at the practice. GuardianName is the
// accompanying parent; Phone is unique across patients and is the primary
// lookup key at the front desk.
type Patient struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	DateOfBirth    string     `json:"dateOfBirth" db:"date_of_birth"`
	Gender         Gender     `json:"gender" db:"gender"`
	GuardianName   string     `json:"guardianName" db:"guardian_name"`
	Phone          string     `json:"phone" db:"phone"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Address        *string    `json:"address,omitempty" db:"address"`
	MedicalHistory *string    `json:"medicalHistory,omitempty" db:"medical_history"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	LastVisit      *time.Time `json:"lastVisit,omitempty" db:"last_visit"`
	AgeInMonths    int        `json:"ageInMonths" db:"-"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// StampAge fills the derived AgeInMonths field from DateOfBirth. A malformed
// date of birth leaves the field at zero.
func (p *Patient) StampAge(asOf time.Time) {
	dob, err := ParseDate(p.DateOfBirth)
	if err != nil {
		return
	}
	p.AgeInMonths = AgeInMonths(dob, asOf)
}

// PatientFilter narrows patient list queries. Search matches name, guardian
// name, phone and email. AgeBand is one of "0-1", "1-5", "5-12", "12+".
type PatientFilter struct {
	Search    string
	Gender    string
	AgeBand   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
