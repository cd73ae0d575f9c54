// Package mocks provides mock implementations of port interfaces for testing.
// The core services depend on the repository interfaces only, so these
// in-memory implementations let the unit tests exercise the business rules
// without a database.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// MockPatientRepository implements ports.PatientRepository for testing.
type MockPatientRepository struct {
	mu sync.RWMutex

	patients map[string]*domain.Patient

	// Call tracking for verification
	GetByIDCalls []string
	CreateCalls  []domain.Patient
	UpdateCalls  []string
	DeleteCalls  []string

	// Error injection for testing error scenarios
	GetByIDError       error
	CreateError        error
	UpdateError        error
	DeleteError        error
	HasDependentsError error

	// Dependents reported by HasDependents
	Dependents bool
}

var _ ports.PatientRepository = (*MockPatientRepository)(nil)

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{patients: make(map[string]*domain.Patient)}
}

// SeedPatient adds a patient to the mock repository for test setup.
func (m *MockPatientRepository) SeedPatient(p *domain.Patient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = p
}

func (m *MockPatientRepository) Create(ctx context.Context, patient domain.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, patient)

	if m.CreateError != nil {
		return m.CreateError
	}

	m.patients[patient.ID] = &patient
	return nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	patient, ok := m.patients[id]
	if !ok {
		return nil, domain.NewNotFoundError("Patient not found", "Không tìm thấy bệnh nhân")
	}
	return patient, nil
}

func (m *MockPatientRepository) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *MockPatientRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, id)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	patient, ok := m.patients[id]
	if !ok {
		return nil, domain.NewNotFoundError("Patient not found", "Không tìm thấy bệnh nhân")
	}
	return patient, nil
}

func (m *MockPatientRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.patients, id)
	return nil
}

func (m *MockPatientRepository) HasDependents(ctx context.Context, id string) (bool, error) {
	if m.HasDependentsError != nil {
		return false, m.HasDependentsError
	}
	return m.Dependents, nil
}

// Reset clears all stored data and call tracking.
func (m *MockPatientRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.patients = make(map[string]*domain.Patient)
	m.GetByIDCalls = nil
	m.CreateCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
	m.GetByIDError = nil
	m.CreateError = nil
	m.UpdateError = nil
	m.DeleteError = nil
	m.HasDependentsError = nil
	m.Dependents = false
}

// MockStaffRepository implements ports.StaffRepository for testing.
type MockStaffRepository struct {
	mu sync.RWMutex

	staff map[string]*domain.Staff

	GetDoctorCalls []string
	CreateCalls    []domain.Staff
	UpdateCalls    []string
	DeleteCalls    []string

	GetByIDError   error
	GetDoctorError error
	CreateError    error
	UpdateError    error
	DeleteError    error

	Dependents bool
	StatsValue *domain.StaffStats
}

var _ ports.StaffRepository = (*MockStaffRepository)(nil)

func NewMockStaffRepository() *MockStaffRepository {
	return &MockStaffRepository{staff: make(map[string]*domain.Staff)}
}

// SeedStaff adds a staff member to the mock repository for test setup.
func (m *MockStaffRepository) SeedStaff(s *domain.Staff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[s.ID] = s
}

func (m *MockStaffRepository) Create(ctx context.Context, staff domain.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, staff)

	if m.CreateError != nil {
		return m.CreateError
	}

	m.staff[staff.ID] = &staff
	return nil
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	member, ok := m.staff[id]
	if !ok {
		return nil, domain.NewNotFoundError("Staff not found", "Không tìm thấy nhân viên")
	}
	return member, nil
}

func (m *MockStaffRepository) GetDoctor(ctx context.Context, id string) (*domain.Staff, error) {
	m.mu.Lock()
	m.GetDoctorCalls = append(m.GetDoctorCalls, id)
	m.mu.Unlock()

	if m.GetDoctorError != nil {
		return nil, m.GetDoctorError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	member, ok := m.staff[id]
	if !ok || member.Role != domain.StaffRoleDoctor {
		return nil, domain.NewNotFoundError("Doctor not found", "Không tìm thấy bác sĩ")
	}
	return member, nil
}

func (m *MockStaffRepository) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Staff, 0, len(m.staff))
	for _, s := range m.staff {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (m *MockStaffRepository) ListDoctors(ctx context.Context) ([]domain.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Staff
	for _, s := range m.staff {
		if s.Role == domain.StaffRoleDoctor && s.Status == domain.StaffActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *MockStaffRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, id)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	member, ok := m.staff[id]
	if !ok {
		return nil, domain.NewNotFoundError("Staff not found", "Không tìm thấy nhân viên")
	}
	return member, nil
}

func (m *MockStaffRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.staff, id)
	return nil
}

func (m *MockStaffRepository) HasDependents(ctx context.Context, id string) (bool, error) {
	return m.Dependents, nil
}

func (m *MockStaffRepository) Stats(ctx context.Context) (*domain.StaffStats, error) {
	if m.StatsValue != nil {
		return m.StatsValue, nil
	}
	return &domain.StaffStats{ByRole: map[string]int{}}, nil
}
