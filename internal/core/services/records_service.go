package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type RecordService struct {
	records  ports.MedicalRecordRepository
	patients ports.PatientRepository
	staff    ports.StaffRepository
}

var _ ports.RecordService = (*RecordService)(nil)

func NewRecordService(
	records ports.MedicalRecordRepository,
	patients ports.PatientRepository,
	staff ports.StaffRepository,
) *RecordService {
	return &RecordService{
		records:  records,
		patients: patients,
		staff:    staff,
	}
}

func (s *RecordService) Create(ctx context.Context, in ports.CreateRecordInput) (*domain.MedicalRecord, error) {
	if in.PatientID == "" || in.DoctorID == "" || in.VisitDate == "" || in.Symptoms == "" || in.Diagnosis == "" {
		return nil, domain.NewValidationError("Validation Error", "Bệnh nhân, bác sĩ, ngày khám, triệu chứng và chẩn đoán là bắt buộc")
	}

	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.staff.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	status := domain.RecordStatus(in.Status)
	if status == "" {
		status = domain.RecordDraft
	}

	now := time.Now()
	record := domain.MedicalRecord{
		ID:            uuid.NewString(),
		PatientID:     in.PatientID,
		DoctorID:      in.DoctorID,
		AppointmentID: in.AppointmentID,
		VisitDate:     in.VisitDate,
		Weight:        in.Weight,
		Height:        in.Height,
		Temperature:   in.Temperature,
		BloodPressure: in.BloodPressure,
		HeartRate:     in.HeartRate,
		Symptoms:      in.Symptoms,
		Examination:   in.Examination,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Prescription:  in.Prescription,
		FollowUpDate:  in.FollowUpDate,
		Notes:         in.Notes,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// A linked appointment is completed in the same transaction as the
	// record insert.
	completeAppointment := ""
	if in.AppointmentID != nil {
		completeAppointment = *in.AppointmentID
	}

	if err := s.records.Create(ctx, record, completeAppointment); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RecordService) Get(ctx context.Context, id string) (*domain.RecordDetail, error) {
	return s.records.GetDetail(ctx, id)
}

func (s *RecordService) List(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordDetail, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.records.List(ctx, filter)
}

func (s *RecordService) Update(ctx context.Context, id string, patch ports.RecordPatch) (*domain.MedicalRecord, error) {
	if _, err := s.records.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now()}
	if patch.VisitDate != nil {
		fields["visit_date"] = *patch.VisitDate
	}
	if patch.Weight != nil {
		fields["weight"] = *patch.Weight
	}
	if patch.Height != nil {
		fields["height"] = *patch.Height
	}
	if patch.Temperature != nil {
		fields["temperature"] = *patch.Temperature
	}
	if patch.BloodPressure != nil {
		fields["blood_pressure"] = *patch.BloodPressure
	}
	if patch.HeartRate != nil {
		fields["heart_rate"] = *patch.HeartRate
	}
	if patch.Symptoms != nil {
		fields["symptoms"] = *patch.Symptoms
	}
	if patch.Examination != nil {
		fields["examination"] = *patch.Examination
	}
	if patch.Diagnosis != nil {
		fields["diagnosis"] = *patch.Diagnosis
	}
	if patch.Treatment != nil {
		fields["treatment"] = *patch.Treatment
	}
	if patch.Prescription != nil {
		fields["prescription"] = *patch.Prescription
	}
	if patch.FollowUpDate != nil {
		fields["follow_up_date"] = *patch.FollowUpDate
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	return s.records.Update(ctx, id, fields)
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	if _, err := s.records.GetByID(ctx, id); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}
