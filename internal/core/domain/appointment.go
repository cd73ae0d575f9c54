package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCheckedIn AppointmentStatus = "checked-in"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no-show"
)

// IsTerminal reports whether no further lifecycle transition is allowed.
// Transitions are monotonic: scheduled -> checked-in -> completed, and
// scheduled|checked-in -> cancelled. no-show is terminal and reachable only
// through a direct status update.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled || s == AppointmentNoShow
}

// Appointment is a booked time slot for one patient with one doctor.
// Date is YYYY-MM-DD and Time is HH:MM; together with DoctorID they form the
// conflict key: at most one non-cancelled appointment may hold a given
// (doctor, date, time) triple.
type Appointment struct {
	ID          string            `json:"id" db:"id"`
	PatientID   string            `json:"patientId" db:"patient_id"`
	DoctorID    string            `json:"doctorId" db:"doctor_id"`
	Date        string            `json:"date" db:"date"`
	Time        string            `json:"time" db:"time"`
	Duration    int               `json:"duration" db:"duration"`
	Reason      string            `json:"reason" db:"reason"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	Status      AppointmentStatus `json:"status" db:"status"`
	CheckedInAt *time.Time        `json:"checkedInAt,omitempty" db:"checked_in_at"`
	CompletedAt *time.Time        `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// AppointmentDetail adds the joined display fields the frontend shows in
// lists and detail views.
type AppointmentDetail struct {
	Appointment
	PatientName          *string `json:"patientName,omitempty" db:"patient_name"`
	PatientPhone         *string `json:"patientPhone,omitempty" db:"patient_phone"`
	DoctorName           *string `json:"doctorName,omitempty" db:"doctor_name"`
	DoctorSpecialization *string `json:"doctorSpecialization,omitempty" db:"doctor_specialization"`
}

type AppointmentFilter struct {
	Date      string
	DoctorID  string
	PatientID string
	Status    string
	Page      int
	Limit     int
}

// Availability is the result of a conflict check for a proposed slot.
type Availability struct {
	Available   bool         `json:"available"`
	Conflicting *Appointment `json:"conflicting"`
}

const DefaultAppointmentDuration = 30
