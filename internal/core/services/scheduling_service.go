package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// SchedulingService owns the appointment conflict and lifecycle rules.
// The availability check here only produces the friendly conflict message;
// the partial unique index on (doctor_id, date, time) for non-cancelled rows
// is the authoritative guard against concurrent double booking.
type SchedulingService struct {
	appointments ports.AppointmentRepository
	patients     ports.PatientRepository
	staff        ports.StaffRepository
}

var _ ports.SchedulingService = (*SchedulingService)(nil)

func NewSchedulingService(
	appointments ports.AppointmentRepository,
	patients ports.PatientRepository,
	staff ports.StaffRepository,
) *SchedulingService {
	return &SchedulingService{
		appointments: appointments,
		patients:     patients,
		staff:        staff,
	}
}

func errSlotConflict() *domain.Error {
	return domain.NewConflictError("Time slot conflict", "Thời gian này đã có lịch hẹn khác")
}

// CheckAvailability reports whether the exact (doctor, date, time) slot is
// free among non-cancelled appointments. Overlap by duration is deliberately
// not considered: distinct start times never conflict.
func (s *SchedulingService) CheckAvailability(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (*domain.Availability, error) {
	if doctorID == "" || date == "" || timeOfDay == "" {
		return nil, domain.NewValidationError("Validation Error", "Ngày, giờ và bác sĩ là bắt buộc")
	}

	conflicting, err := s.appointments.FindConflict(ctx, doctorID, date, timeOfDay, excludeID)
	if err != nil {
		return nil, err
	}

	return &domain.Availability{
		Available:   conflicting == nil,
		Conflicting: conflicting,
	}, nil
}

func (s *SchedulingService) Create(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	if in.PatientID == "" || in.DoctorID == "" || in.Date == "" || in.Time == "" || in.Reason == "" {
		return nil, domain.NewValidationError("Validation Error", "Bệnh nhân, bác sĩ, ngày, giờ và lý do khám là bắt buộc")
	}
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, domain.NewValidationError("Validation Error", "Ngày không hợp lệ")
	}
	if !domain.ValidTimeOfDay(in.Time) {
		return nil, domain.NewValidationError("Validation Error", "Giờ không hợp lệ")
	}

	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	if _, err := s.staff.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	availability, err := s.CheckAvailability(ctx, in.DoctorID, in.Date, in.Time, "")
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, errSlotConflict()
	}

	now := time.Now()
	appt := domain.Appointment{
		ID:        uuid.NewString(),
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		Time:      in.Time,
		Duration:  in.Duration,
		Reason:    in.Reason,
		Notes:     in.Notes,
		Status:    domain.AppointmentStatus(in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if appt.Duration <= 0 {
		appt.Duration = domain.DefaultAppointmentDuration
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentScheduled
	}

	payload, err := json.Marshal(ports.AppointmentEvent{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Date:          appt.Date,
		Time:          appt.Time,
		Reason:        appt.Reason,
	})
	if err != nil {
		return nil, err
	}

	// The repository maps a unique violation on the active-slot index to the
	// same Conflict error, closing the check-then-insert race.
	if err := s.appointments.Create(ctx, appt, payload); err != nil {
		return nil, err
	}

	return &appt, nil
}

func (s *SchedulingService) Get(ctx context.Context, id string) (*domain.AppointmentDetail, error) {
	return s.appointments.GetDetail(ctx, id)
}

func (s *SchedulingService) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.AppointmentDetail, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.appointments.List(ctx, filter)
}

// Update applies partial-update semantics. When date, time or doctor change,
// the conflict check reruns against the effective merged slot, excluding the
// appointment itself.
func (s *SchedulingService) Update(ctx context.Context, id string, patch ports.AppointmentPatch) (*domain.Appointment, error) {
	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil || patch.Time != nil || patch.DoctorID != nil {
		checkDate := existing.Date
		if patch.Date != nil {
			checkDate = *patch.Date
		}
		checkTime := existing.Time
		if patch.Time != nil {
			checkTime = *patch.Time
		}
		checkDoctor := existing.DoctorID
		if patch.DoctorID != nil {
			checkDoctor = *patch.DoctorID
		}

		conflicting, err := s.appointments.FindConflict(ctx, checkDoctor, checkDate, checkTime, id)
		if err != nil {
			return nil, err
		}
		if conflicting != nil {
			return nil, errSlotConflict()
		}
	}

	fields := map[string]any{"updated_at": time.Now()}
	if patch.PatientID != nil {
		fields["patient_id"] = *patch.PatientID
	}
	if patch.DoctorID != nil {
		fields["doctor_id"] = *patch.DoctorID
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.Time != nil {
		fields["time"] = *patch.Time
	}
	if patch.Duration != nil {
		fields["duration"] = *patch.Duration
	}
	if patch.Reason != nil {
		fields["reason"] = *patch.Reason
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	return s.appointments.Update(ctx, id, fields)
}

func (s *SchedulingService) CheckIn(ctx context.Context, id string) (*domain.Appointment, error) {
	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == domain.AppointmentCheckedIn {
		return nil, domain.NewBusinessError("Already checked in", "Bệnh nhân đã check-in rồi")
	}

	now := time.Now()
	return s.appointments.Update(ctx, id, map[string]any{
		"status":        domain.AppointmentCheckedIn,
		"checked_in_at": now,
		"updated_at":    now,
	})
}

// Complete refuses terminal states: a cancelled, no-show or already-completed
// appointment stays as it is.
func (s *SchedulingService) Complete(ctx context.Context, id string) (*domain.Appointment, error) {
	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status.IsTerminal() {
		return nil, domain.NewBusinessError("Appointment already finalized", "Lịch hẹn đã kết thúc")
	}

	now := time.Now()
	return s.appointments.Update(ctx, id, map[string]any{
		"status":       domain.AppointmentCompleted,
		"completed_at": now,
		"updated_at":   now,
	})
}

// Cancel appends the cancellation reason to the notes instead of replacing
// them, so front-desk annotations survive.
func (s *SchedulingService) Cancel(ctx context.Context, id, reason string) (*domain.Appointment, error) {
	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"status":     domain.AppointmentCancelled,
		"updated_at": time.Now(),
	}
	if reason != "" {
		note := "Lý do hủy: " + reason
		if existing.Notes != nil && *existing.Notes != "" {
			note = *existing.Notes + "\n" + note
		}
		fields["notes"] = note
	}

	payload, err := json.Marshal(ports.AppointmentEvent{
		AppointmentID: existing.ID,
		PatientID:     existing.PatientID,
		DoctorID:      existing.DoctorID,
		Date:          existing.Date,
		Time:          existing.Time,
		Reason:        reason,
	})
	if err != nil {
		return nil, err
	}

	return s.appointments.Cancel(ctx, id, fields, payload)
}

func (s *SchedulingService) Delete(ctx context.Context, id string) error {
	if _, err := s.appointments.GetByID(ctx, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}
