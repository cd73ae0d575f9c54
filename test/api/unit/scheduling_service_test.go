// Package unit contains unit tests for the API services. The services depend
// on the repository ports only, so each test wires in-memory mocks and
// exercises the business rules in isolation.
package unit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

func newSchedulingFixture() (*services.SchedulingService, *mocks.MockAppointmentRepository, *mocks.MockPatientRepository, *mocks.MockStaffRepository) {
	appts := mocks.NewMockAppointmentRepository()
	patients := mocks.NewMockPatientRepository()
	staff := mocks.NewMockStaffRepository()
	patients.SeedPatient(mocks.TestPatient("patient-1"))
	staff.SeedStaff(mocks.TestDoctor("doctor-1"))
	return services.NewSchedulingService(appts, patients, staff), appts, patients, staff
}

func TestSchedulingService_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        ports.CreateAppointmentInput
		setup        func(*mocks.MockAppointmentRepository)
		expectKind   domain.ErrorKind
		expectError  bool
		expectCreate bool
	}{
		{
			name: "successful_booking",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Date:      "2026-09-01",
				Time:      "09:00",
				Reason:    "Khám định kỳ",
			},
			expectCreate: true,
		},
		{
			name: "missing_reason_is_rejected",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Date:      "2026-09-01",
				Time:      "09:00",
			},
			expectError: true,
			expectKind:  domain.KindValidation,
		},
		{
			name: "malformed_date_is_rejected",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Date:      "01/09/2026",
				Time:      "09:00",
				Reason:    "Khám định kỳ",
			},
			expectError: true,
			expectKind:  domain.KindValidation,
		},
		{
			name: "unknown_patient",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-missing",
				DoctorID:  "doctor-1",
				Date:      "2026-09-01",
				Time:      "09:00",
				Reason:    "Khám định kỳ",
			},
			expectError: true,
			expectKind:  domain.KindNotFound,
		},
		{
			name: "occupied_slot_conflicts",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Date:      "2026-09-01",
				Time:      "09:00",
				Reason:    "Khám định kỳ",
			},
			setup: func(m *mocks.MockAppointmentRepository) {
				m.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))
			},
			expectError: true,
			expectKind:  domain.KindConflict,
		},
		{
			name: "cancelled_appointment_frees_the_slot",
			input: ports.CreateAppointmentInput{
				PatientID: "patient-1",
				DoctorID:  "doctor-1",
				Date:      "2026-09-01",
				Time:      "09:00",
				Reason:    "Khám định kỳ",
			},
			setup: func(m *mocks.MockAppointmentRepository) {
				cancelled := mocks.TestAppointment("appt-1", "patient-1", "doctor-1")
				cancelled.Status = domain.AppointmentCancelled
				m.SeedAppointment(cancelled)
			},
			expectCreate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, appts, _, _ := newSchedulingFixture()
			if tt.setup != nil {
				tt.setup(appts)
			}

			created, err := service.Create(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !domain.IsKind(err, tt.expectKind) {
					t.Errorf("expected error kind %v, got %v", tt.expectKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectCreate && len(appts.CreateCalls) != 1 {
				t.Fatalf("expected 1 Create call, got %d", len(appts.CreateCalls))
			}
			if created.Status != domain.AppointmentScheduled {
				t.Errorf("expected status scheduled, got %q", created.Status)
			}
			if created.Duration != domain.DefaultAppointmentDuration {
				t.Errorf("expected default duration %d, got %d", domain.DefaultAppointmentDuration, created.Duration)
			}
		})
	}
}

// TestSchedulingService_Create_OutboxPayload verifies the created event row
// that travels with the insert transaction.
func TestSchedulingService_Create_OutboxPayload(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()

	created, err := service.Create(context.Background(), ports.CreateAppointmentInput{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Date:      "2026-09-01",
		Time:      "10:30",
		Reason:    "Tiêm chủng",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(appts.OutboxPayloads) != 1 {
		t.Fatalf("expected 1 outbox payload, got %d", len(appts.OutboxPayloads))
	}

	var event ports.AppointmentEvent
	if err := json.Unmarshal(appts.OutboxPayloads[0], &event); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if event.AppointmentID != created.ID {
		t.Errorf("expected appointment id %q, got %q", created.ID, event.AppointmentID)
	}
	if event.Date != "2026-09-01" || event.Time != "10:30" {
		t.Errorf("unexpected slot in event: %s %s", event.Date, event.Time)
	}
}

func TestSchedulingService_CheckAvailability(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	availability, err := service.CheckAvailability(context.Background(), "doctor-1", "2026-09-01", "09:00", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if availability.Available {
		t.Error("expected slot to be unavailable")
	}
	if availability.Conflicting == nil || availability.Conflicting.ID != "appt-1" {
		t.Error("expected the conflicting appointment to be returned")
	}

	// Excluding the holder itself frees the slot for in-place edits.
	availability, err = service.CheckAvailability(context.Background(), "doctor-1", "2026-09-01", "09:00", "appt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !availability.Available {
		t.Error("expected slot to be available when excluding the holder")
	}

	if _, err := service.CheckAvailability(context.Background(), "", "2026-09-01", "09:00", ""); !domain.IsKind(err, domain.KindValidation) {
		t.Errorf("expected validation error for missing doctor, got %v", err)
	}
}

func TestSchedulingService_Update_RechecksMergedSlot(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))
	other := mocks.TestAppointment("appt-2", "patient-1", "doctor-1")
	other.Time = "10:00"
	appts.SeedAppointment(other)

	// Moving appt-1 onto appt-2's time must conflict.
	newTime := "10:00"
	_, err := service.Update(context.Background(), "appt-1", ports.AppointmentPatch{Time: &newTime})
	if !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}

	// Keeping its own slot while changing the reason must not.
	reason := "Tái khám"
	if _, err := service.Update(context.Background(), "appt-1", ports.AppointmentPatch{Reason: &reason}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSchedulingService_CheckIn(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	appt, err := service.CheckIn(context.Background(), "appt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != domain.AppointmentCheckedIn {
		t.Errorf("expected checked-in, got %q", appt.Status)
	}

	// A second check-in is a business rule violation.
	if _, err := service.CheckIn(context.Background(), "appt-1"); !domain.IsKind(err, domain.KindBusiness) {
		t.Errorf("expected business error on double check-in, got %v", err)
	}
}

func TestSchedulingService_Complete_RefusesTerminalStates(t *testing.T) {
	terminal := []domain.AppointmentStatus{
		domain.AppointmentCompleted,
		domain.AppointmentCancelled,
		domain.AppointmentNoShow,
	}

	for _, status := range terminal {
		t.Run(string(status), func(t *testing.T) {
			service, appts, _, _ := newSchedulingFixture()
			appt := mocks.TestAppointment("appt-1", "patient-1", "doctor-1")
			appt.Status = status
			appts.SeedAppointment(appt)

			if _, err := service.Complete(context.Background(), "appt-1"); !domain.IsKind(err, domain.KindBusiness) {
				t.Errorf("expected business error, got %v", err)
			}
		})
	}

	service, appts, _, _ := newSchedulingFixture()
	checkedIn := mocks.TestAppointment("appt-1", "patient-1", "doctor-1")
	checkedIn.Status = domain.AppointmentCheckedIn
	appts.SeedAppointment(checkedIn)

	appt, err := service.Complete(context.Background(), "appt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != domain.AppointmentCompleted {
		t.Errorf("expected completed, got %q", appt.Status)
	}
}

func TestSchedulingService_Cancel_AppendsReasonToNotes(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()
	existing := mocks.TestAppointment("appt-1", "patient-1", "doctor-1")
	note := "Bé sốt nhẹ"
	existing.Notes = &note
	appts.SeedAppointment(existing)

	appt, err := service.Cancel(context.Background(), "appt-1", "Gia đình bận")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appt.Status != domain.AppointmentCancelled {
		t.Errorf("expected cancelled, got %q", appt.Status)
	}
	if appt.Notes == nil {
		t.Fatal("expected notes to be set")
	}
	if !strings.HasPrefix(*appt.Notes, "Bé sốt nhẹ") {
		t.Errorf("existing notes were overwritten: %q", *appt.Notes)
	}
	if !strings.Contains(*appt.Notes, "Lý do hủy: Gia đình bận") {
		t.Errorf("cancellation reason missing from notes: %q", *appt.Notes)
	}

	if len(appts.CancelCalls) != 1 {
		t.Fatalf("expected 1 Cancel call, got %d", len(appts.CancelCalls))
	}
	var event ports.AppointmentEvent
	if err := json.Unmarshal(appts.OutboxPayloads[0], &event); err != nil {
		t.Fatalf("cancel payload is not valid JSON: %v", err)
	}
	if event.AppointmentID != "appt-1" {
		t.Errorf("expected appointment id appt-1 in event, got %q", event.AppointmentID)
	}
}

// Cancelling and rebooking the same slot must succeed: the cancelled row no
// longer holds the conflict key.
func TestSchedulingService_CancelThenRebook(t *testing.T) {
	service, appts, _, _ := newSchedulingFixture()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	if _, err := service.Cancel(context.Background(), "appt-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Create(context.Background(), ports.CreateAppointmentInput{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Date:      "2026-09-01",
		Time:      "09:00",
		Reason:    "Khám lại",
	})
	if err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}
}

func TestSchedulingService_Delete_UnknownAppointment(t *testing.T) {
	service, _, _, _ := newSchedulingFixture()

	if err := service.Delete(context.Background(), "missing"); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
