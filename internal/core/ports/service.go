package ports

import (
	"context"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
)

// Input and patch structs carry json tags so handlers decode request bodies
// straight into them. Pointer fields in patches distinguish "absent" from
// "supplied": only supplied fields change.

type CreateAppointmentInput struct {
	PatientID string  `json:"patientId"`
	DoctorID  string  `json:"doctorId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Duration  int     `json:"duration"`
	Reason    string  `json:"reason"`
	Notes     *string `json:"notes"`
	Status    string  `json:"status"`
}

type AppointmentPatch struct {
	PatientID *string `json:"patientId"`
	DoctorID  *string `json:"doctorId"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Duration  *int    `json:"duration"`
	Reason    *string `json:"reason"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status"`
}

type SchedulingService interface {
	CheckAvailability(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (*domain.Availability, error)
	Create(ctx context.Context, in CreateAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, id string) (*domain.AppointmentDetail, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.AppointmentDetail, error)
	Update(ctx context.Context, id string, patch AppointmentPatch) (*domain.Appointment, error)
	CheckIn(ctx context.Context, id string) (*domain.Appointment, error)
	Complete(ctx context.Context, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type CreateInvoiceInput struct {
	PatientID       string                 `json:"patientId"`
	AppointmentID   *string                `json:"appointmentId"`
	MedicalRecordID *string                `json:"medicalRecordId"`
	Items           []domain.LineItemInput `json:"items"`
	DueDate         *string                `json:"dueDate"`
	Tax             float64                `json:"tax"`
	Discount        float64                `json:"discount"`
	Notes           *string                `json:"notes"`
}

type InvoicePatch struct {
	PatientID       *string                `json:"patientId"`
	AppointmentID   *string                `json:"appointmentId"`
	MedicalRecordID *string                `json:"medicalRecordId"`
	Items           []domain.LineItemInput `json:"items"`
	DueDate         *string                `json:"dueDate"`
	Tax             *float64               `json:"tax"`
	Discount        *float64               `json:"discount"`
	Notes           *string                `json:"notes"`
	Status          *string                `json:"status"`
}

type MarkPaidInput struct {
	PaymentMethod string   `json:"paymentMethod"`
	PaidAmount    *float64 `json:"paidAmount"`
}

type BillingService interface {
	Create(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.InvoiceDetail, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceDetail, error)
	Update(ctx context.Context, id string, patch InvoicePatch) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id string, in MarkPaidInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.BillingStats, error)
}

type CreatePatientInput struct {
	Name           string  `json:"name"`
	DateOfBirth    string  `json:"dateOfBirth"`
	Gender         string  `json:"gender"`
	GuardianName   string  `json:"guardianName"`
	Phone          string  `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medicalHistory"`
	Notes          *string `json:"notes"`
}

type PatientPatch struct {
	Name           *string `json:"name"`
	DateOfBirth    *string `json:"dateOfBirth"`
	Gender         *string `json:"gender"`
	GuardianName   *string `json:"guardianName"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medicalHistory"`
	Notes          *string `json:"notes"`
}

type PatientService interface {
	Create(ctx context.Context, in CreatePatientInput) (*domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error)
	Update(ctx context.Context, id string, patch PatientPatch) (*domain.Patient, error)
	Delete(ctx context.Context, id string) error
}

type CreateStaffInput struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization"`
	LicenseNumber  *string `json:"licenseNumber"`
	HireDate       string  `json:"hireDate"`
	Status         string  `json:"status"`
}

type StaffPatch struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Role           *string `json:"role"`
	Specialization *string `json:"specialization"`
	LicenseNumber  *string `json:"licenseNumber"`
	HireDate       *string `json:"hireDate"`
	Status         *string `json:"status"`
}

type StaffService interface {
	Create(ctx context.Context, in CreateStaffInput) (*domain.Staff, error)
	Get(ctx context.Context, id string) (*domain.Staff, error)
	List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error)
	ListDoctors(ctx context.Context) ([]domain.Staff, error)
	Update(ctx context.Context, id string, patch StaffPatch) (*domain.Staff, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.StaffStats, error)
}

type CreateRecordInput struct {
	PatientID     string   `json:"patientId"`
	DoctorID      string   `json:"doctorId"`
	AppointmentID *string  `json:"appointmentId"`
	VisitDate     string   `json:"visitDate"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Temperature   *float64 `json:"temperature"`
	BloodPressure *string  `json:"bloodPressure"`
	HeartRate     *int     `json:"heartRate"`
	Symptoms      string   `json:"symptoms"`
	Examination   *string  `json:"examination"`
	Diagnosis     string   `json:"diagnosis"`
	Treatment     *string  `json:"treatment"`
	Prescription  *string  `json:"prescription"`
	FollowUpDate  *string  `json:"followUpDate"`
	Notes         *string  `json:"notes"`
	Status        string   `json:"status"`
}

type RecordPatch struct {
	VisitDate     *string  `json:"visitDate"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Temperature   *float64 `json:"temperature"`
	BloodPressure *string  `json:"bloodPressure"`
	HeartRate     *int     `json:"heartRate"`
	Symptoms      *string  `json:"symptoms"`
	Examination   *string  `json:"examination"`
	Diagnosis     *string  `json:"diagnosis"`
	Treatment     *string  `json:"treatment"`
	Prescription  *string  `json:"prescription"`
	FollowUpDate  *string  `json:"followUpDate"`
	Notes         *string  `json:"notes"`
	Status        *string  `json:"status"`
}

type RecordService interface {
	Create(ctx context.Context, in CreateRecordInput) (*domain.MedicalRecord, error)
	Get(ctx context.Context, id string) (*domain.RecordDetail, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordDetail, error)
	Update(ctx context.Context, id string, patch RecordPatch) (*domain.MedicalRecord, error)
	Delete(ctx context.Context, id string) error
}

type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	MonthlyStats(ctx context.Context) (*domain.MonthlyStats, error)
}
