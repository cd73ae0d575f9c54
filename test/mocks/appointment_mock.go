package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// MockAppointmentRepository implements ports.AppointmentRepository for
// testing. Conflicts are computed against the seeded appointments with the
// same (doctor, date, time) key the real repository queries on.
type MockAppointmentRepository struct {
	mu sync.RWMutex

	appointments map[string]*domain.Appointment

	// Call tracking for verification
	FindConflictCalls []string
	CreateCalls       []domain.Appointment
	CancelCalls       []string
	UpdateCalls       []string
	DeleteCalls       []string

	// Outbox payloads handed to Create and Cancel, in call order
	OutboxPayloads [][]byte

	// Error injection for testing error scenarios
	FindConflictError error
	CreateError       error
	UpdateError       error
	CancelError       error
	DeleteError       error
}

var _ ports.AppointmentRepository = (*MockAppointmentRepository)(nil)

func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{appointments: make(map[string]*domain.Appointment)}
}

// SeedAppointment adds an appointment to the mock repository for test setup.
func (m *MockAppointmentRepository) SeedAppointment(a *domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[a.ID] = a
}

func (m *MockAppointmentRepository) FindConflict(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (*domain.Appointment, error) {
	m.mu.Lock()
	m.FindConflictCalls = append(m.FindConflictCalls, doctorID+"|"+date+"|"+timeOfDay)
	m.mu.Unlock()

	if m.FindConflictError != nil {
		return nil, m.FindConflictError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.appointments {
		if a.ID == excludeID || a.Status == domain.AppointmentCancelled {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt domain.Appointment, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, appt)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)

	if m.CreateError != nil {
		return m.CreateError
	}

	m.appointments[appt.ID] = &appt
	return nil
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appt, ok := m.appointments[id]
	if !ok {
		return nil, domain.NewNotFoundError("Appointment not found", "Không tìm thấy lịch hẹn")
	}
	return appt, nil
}

func (m *MockAppointmentRepository) GetDetail(ctx context.Context, id string) (*domain.AppointmentDetail, error) {
	appt, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.AppointmentDetail{Appointment: *appt}, nil
}

func (m *MockAppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.AppointmentDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.AppointmentDetail, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, domain.AppointmentDetail{Appointment: *a})
	}
	return out, nil
}

// Update applies the supported field map keys to the stored appointment so
// lifecycle tests can assert the resulting status.
func (m *MockAppointmentRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, id)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	appt, ok := m.appointments[id]
	if !ok {
		return nil, domain.NewNotFoundError("Appointment not found", "Không tìm thấy lịch hẹn")
	}
	applyAppointmentFields(appt, fields)
	return appt, nil
}

func (m *MockAppointmentRepository) Cancel(ctx context.Context, id string, fields map[string]any, outboxPayload []byte) (*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CancelCalls = append(m.CancelCalls, id)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)

	if m.CancelError != nil {
		return nil, m.CancelError
	}

	appt, ok := m.appointments[id]
	if !ok {
		return nil, domain.NewNotFoundError("Appointment not found", "Không tìm thấy lịch hẹn")
	}
	applyAppointmentFields(appt, fields)
	return appt, nil
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.appointments, id)
	return nil
}

func applyAppointmentFields(appt *domain.Appointment, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "status":
			switch v := value.(type) {
			case domain.AppointmentStatus:
				appt.Status = v
			case string:
				appt.Status = domain.AppointmentStatus(v)
			}
		case "notes":
			if v, ok := value.(string); ok {
				appt.Notes = &v
			}
		case "date":
			if v, ok := value.(string); ok {
				appt.Date = v
			}
		case "time":
			if v, ok := value.(string); ok {
				appt.Time = v
			}
		case "doctor_id":
			if v, ok := value.(string); ok {
				appt.DoctorID = v
			}
		}
	}
}

// Reset clears all stored data and call tracking.
func (m *MockAppointmentRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appointments = make(map[string]*domain.Appointment)
	m.FindConflictCalls = nil
	m.CreateCalls = nil
	m.CancelCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
	m.OutboxPayloads = nil
	m.FindConflictError = nil
	m.CreateError = nil
	m.UpdateError = nil
	m.CancelError = nil
	m.DeleteError = nil
}
