package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type StaffService struct {
	staff ports.StaffRepository
}

var _ ports.StaffService = (*StaffService)(nil)

func NewStaffService(staff ports.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

func (s *StaffService) Create(ctx context.Context, in ports.CreateStaffInput) (*domain.Staff, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Role == "" || in.HireDate == "" {
		return nil, domain.NewValidationError("Validation Error", "Họ tên, email, số điện thoại, vai trò và ngày vào làm là bắt buộc")
	}
	if !domain.ValidStaffRole(in.Role) {
		return nil, domain.NewValidationError("Validation Error", "Vai trò không hợp lệ")
	}
	if _, err := domain.ParseDate(in.HireDate); err != nil {
		return nil, domain.NewValidationError("Validation Error", "Ngày vào làm không hợp lệ")
	}

	status := domain.StaffStatus(in.Status)
	if status == "" {
		status = domain.StaffActive
	}

	now := time.Now()
	member := domain.Staff{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Role:           domain.StaffRole(in.Role),
		Specialization: in.Specialization,
		LicenseNumber:  in.LicenseNumber,
		HireDate:       in.HireDate,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.staff.Create(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *StaffService) Get(ctx context.Context, id string) (*domain.Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *StaffService) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.staff.List(ctx, filter)
}

func (s *StaffService) ListDoctors(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.ListDoctors(ctx)
}

func (s *StaffService) Update(ctx context.Context, id string, patch ports.StaffPatch) (*domain.Staff, error) {
	if _, err := s.staff.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now()}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Role != nil {
		if !domain.ValidStaffRole(*patch.Role) {
			return nil, domain.NewValidationError("Validation Error", "Vai trò không hợp lệ")
		}
		fields["role"] = *patch.Role
	}
	if patch.Specialization != nil {
		fields["specialization"] = *patch.Specialization
	}
	if patch.LicenseNumber != nil {
		fields["license_number"] = *patch.LicenseNumber
	}
	if patch.HireDate != nil {
		fields["hire_date"] = *patch.HireDate
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	return s.staff.Update(ctx, id, fields)
}

// Delete is restricted: staff with appointments or medical records cannot be
// removed, only marked inactive or terminated.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	if _, err := s.staff.GetByID(ctx, id); err != nil {
		return err
	}

	hasDeps, err := s.staff.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDeps {
		return domain.NewConflictError("Staff has related records", "Nhân viên còn lịch hẹn hoặc hồ sơ liên quan, không thể xóa")
	}

	return s.staff.Delete(ctx, id)
}

func (s *StaffService) Stats(ctx context.Context) (*domain.StaffStats, error) {
	return s.staff.Stats(ctx)
}
