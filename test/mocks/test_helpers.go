package mocks

import (
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
)

// TestPatient returns a valid patient for test setup.
func TestPatient(id string) *domain.Patient {
	now := time.Now()
	return &domain.Patient{
		ID:           id,
		Name:         "Nguyễn Minh An",
		DateOfBirth:  "2022-03-15",
		Gender:       domain.GenderMale,
		GuardianName: "Nguyễn Văn Bình",
		Phone:        "0901234567",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TestDoctor returns an active doctor for test setup.
func TestDoctor(id string) *domain.Staff {
	now := time.Now()
	specialization := "Nhi khoa"
	return &domain.Staff{
		ID:             id,
		Name:           "BS. Trần Thị Hoa",
		Email:          "hoa.tran@example.com",
		Phone:          "0907654321",
		Role:           domain.StaffRoleDoctor,
		Specialization: &specialization,
		HireDate:       "2020-01-06",
		Status:         domain.StaffActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TestAppointment returns a scheduled appointment for test setup.
func TestAppointment(id, patientID, doctorID string) *domain.Appointment {
	now := time.Now()
	return &domain.Appointment{
		ID:        id,
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      "2026-09-01",
		Time:      "09:00",
		Duration:  domain.DefaultAppointmentDuration,
		Reason:    "Khám định kỳ",
		Status:    domain.AppointmentScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestInvoice returns a pending invoice for test setup.
func TestInvoice(id, patientID string) *domain.Invoice {
	now := time.Now()
	return &domain.Invoice{
		ID:            id,
		InvoiceNumber: domain.NewInvoiceNumber(now),
		PatientID:     patientID,
		IssueDate:     now.Format("2006-01-02"),
		Subtotal:      200000,
		Tax:           10000,
		TotalAmount:   210000,
		Status:        domain.InvoicePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
