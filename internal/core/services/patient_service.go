package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type PatientService struct {
	patients ports.PatientRepository
}

var _ ports.PatientService = (*PatientService)(nil)

func NewPatientService(patients ports.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

func (s *PatientService) Create(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	if in.Name == "" || in.DateOfBirth == "" || in.Gender == "" || in.GuardianName == "" || in.Phone == "" {
		return nil, domain.NewValidationError("Validation Error", "Họ tên, ngày sinh, giới tính, người giám hộ và số điện thoại là bắt buộc")
	}
	if in.Gender != string(domain.GenderMale) && in.Gender != string(domain.GenderFemale) {
		return nil, domain.NewValidationError("Validation Error", "Giới tính không hợp lệ")
	}
	if _, err := domain.ParseDate(in.DateOfBirth); err != nil {
		return nil, domain.NewValidationError("Validation Error", "Ngày sinh không hợp lệ")
	}

	now := time.Now()
	patient := domain.Patient{
		ID:             uuid.NewString(),
		Name:           in.Name,
		DateOfBirth:    in.DateOfBirth,
		Gender:         domain.Gender(in.Gender),
		GuardianName:   in.GuardianName,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		MedicalHistory: in.MedicalHistory,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Unique phone violations come back from the repository as Conflict.
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	patient.StampAge(now)
	return &patient, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.StampAge(time.Now())
	return patient, nil
}

func (s *PatientService) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	patients, total, err := s.patients.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range patients {
		patients[i].StampAge(now)
	}
	return patients, total, nil
}

func (s *PatientService) Update(ctx context.Context, id string, patch ports.PatientPatch) (*domain.Patient, error) {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now()}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.DateOfBirth != nil {
		if _, err := domain.ParseDate(*patch.DateOfBirth); err != nil {
			return nil, domain.NewValidationError("Validation Error", "Ngày sinh không hợp lệ")
		}
		fields["date_of_birth"] = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		fields["gender"] = *patch.Gender
	}
	if patch.GuardianName != nil {
		fields["guardian_name"] = *patch.GuardianName
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Address != nil {
		fields["address"] = *patch.Address
	}
	if patch.MedicalHistory != nil {
		fields["medical_history"] = *patch.MedicalHistory
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}

	patient, err := s.patients.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	patient.StampAge(time.Now())
	return patient, nil
}

// Delete is restricted, not cascading: a patient with appointments, records
// or invoices cannot be removed.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return err
	}

	hasDeps, err := s.patients.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDeps {
		return domain.NewConflictError("Patient has related records", "Bệnh nhân còn lịch hẹn hoặc hồ sơ liên quan, không thể xóa")
	}

	return s.patients.Delete(ctx, id)
}
