package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
)

// Repository update methods take a column->value map holding only the fields
// that actually change; absent columns keep their stored value (partial
// update semantics). Repositories return domain errors for not-found and for
// unique-constraint violations so services never parse driver errors.

type PatientRepository interface {
	Create(ctx context.Context, patient domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Patient, error)
	Delete(ctx context.Context, id string) error
	HasDependents(ctx context.Context, id string) (bool, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff domain.Staff) error
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	// GetDoctor resolves id only when the staff member holds the doctor role.
	GetDoctor(ctx context.Context, id string) (*domain.Staff, error)
	List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error)
	ListDoctors(ctx context.Context) ([]domain.Staff, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Staff, error)
	Delete(ctx context.Context, id string) error
	HasDependents(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (*domain.StaffStats, error)
}

type AppointmentRepository interface {
	// FindConflict returns the non-cancelled appointment occupying the exact
	// (doctor, date, time) slot, nil when the slot is free. excludeID skips
	// the appointment being edited in place.
	FindConflict(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (*domain.Appointment, error)
	// Create inserts the appointment, stamps the patient's last visit and
	// writes the outbox row in a single transaction.
	Create(ctx context.Context, appt domain.Appointment, outboxPayload []byte) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetDetail(ctx context.Context, id string) (*domain.AppointmentDetail, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.AppointmentDetail, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Appointment, error)
	// Cancel applies the status update and writes the outbox row atomically.
	Cancel(ctx context.Context, id string, fields map[string]any, outboxPayload []byte) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type MedicalRecordRepository interface {
	// Create inserts the record; when completeAppointmentID is non-empty the
	// linked appointment is moved to completed in the same transaction.
	Create(ctx context.Context, record domain.MedicalRecord, completeAppointmentID string) error
	GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error)
	GetDetail(ctx context.Context, id string) (*domain.RecordDetail, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordDetail, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.MedicalRecord, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceRepository interface {
	// Create inserts the invoice and its items in a single transaction.
	Create(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetDetail(ctx context.Context, id string) (*domain.InvoiceDetail, error)
	List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceDetail, error)
	// Update applies fields; when items is non-nil the existing items are
	// replaced with the given set, all in one transaction.
	Update(ctx context.Context, id string, fields map[string]any, items []domain.InvoiceItem) (*domain.Invoice, error)
	// Delete removes the items then the invoice in one transaction.
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time) (*domain.BillingStats, error)
}

type DashboardRepository interface {
	Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
	MonthlyStats(ctx context.Context, now time.Time) (*domain.MonthlyStats, error)
}
