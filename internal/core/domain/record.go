package domain

import "time"

type RecordStatus string

const (
	RecordDraft     RecordStatus = "draft"
	RecordCompleted RecordStatus = "completed"
	RecordPending   RecordStatus = "pending"
)

// MedicalRecord documents a single visit. Symptoms and diagnosis are
// required; vitals and prescription are optional. A record created with an
// AppointmentID transitions that appointment to completed.
type MedicalRecord struct {
	ID            string       `json:"id" db:"id"`
	PatientID     string       `json:"patientId" db:"patient_id"`
	DoctorID      string       `json:"doctorId" db:"doctor_id"`
	AppointmentID *string      `json:"appointmentId,omitempty" db:"appointment_id"`
	VisitDate     string       `json:"visitDate" db:"visit_date"`
	Weight        *float64     `json:"weight,omitempty" db:"weight"`
	Height        *float64     `json:"height,omitempty" db:"height"`
	Temperature   *float64     `json:"temperature,omitempty" db:"temperature"`
	BloodPressure *string      `json:"bloodPressure,omitempty" db:"blood_pressure"`
	HeartRate     *int         `json:"heartRate,omitempty" db:"heart_rate"`
	Symptoms      string       `json:"symptoms" db:"symptoms"`
	Examination   *string      `json:"examination,omitempty" db:"examination"`
	Diagnosis     string       `json:"diagnosis" db:"diagnosis"`
	Treatment     *string      `json:"treatment,omitempty" db:"treatment"`
	Prescription  *string      `json:"prescription,omitempty" db:"prescription"`
	FollowUpDate  *string      `json:"followUpDate,omitempty" db:"follow_up_date"`
	Notes         *string      `json:"notes,omitempty" db:"notes"`
	Status        RecordStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// RecordDetail carries the joined names for list views.
type RecordDetail struct {
	MedicalRecord
	PatientName *string `json:"patientName,omitempty" db:"patient_name"`
	DoctorName  *string `json:"doctorName,omitempty" db:"doctor_name"`
}

type RecordFilter struct {
	PatientID string
	DoctorID  string
	Status    string
	Page      int
	Limit     int
}
