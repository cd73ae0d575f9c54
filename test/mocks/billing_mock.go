package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// MockInvoiceRepository implements ports.InvoiceRepository for testing.
type MockInvoiceRepository struct {
	mu sync.RWMutex

	invoices map[string]*domain.Invoice
	items    map[string][]domain.InvoiceItem

	// Call tracking for verification
	CreateCalls []domain.Invoice
	UpdateCalls []string
	DeleteCalls []string

	// UpdateFields captures the field map of the most recent Update call.
	UpdateFields map[string]any

	// Error injection for testing error scenarios
	CreateError error
	UpdateError error
	DeleteError error

	// CreateConflicts makes the first N Create calls fail with a Conflict
	// error, for invoice number retry tests.
	CreateConflicts int

	StatsValue *domain.BillingStats
}

var _ ports.InvoiceRepository = (*MockInvoiceRepository)(nil)

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
		items:    make(map[string][]domain.InvoiceItem),
	}
}

// SeedInvoice adds an invoice to the mock repository for test setup.
func (m *MockInvoiceRepository) SeedInvoice(inv *domain.Invoice, items []domain.InvoiceItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	m.items[inv.ID] = items
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, invoice)

	if m.CreateConflicts > 0 {
		m.CreateConflicts--
		return domain.NewConflictError("Duplicate invoice number", "Số hóa đơn đã tồn tại")
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.invoices[invoice.ID] = &invoice
	m.items[invoice.ID] = items
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	invoice, ok := m.invoices[id]
	if !ok {
		return nil, domain.NewNotFoundError("Invoice not found", "Không tìm thấy hóa đơn")
	}
	return invoice, nil
}

func (m *MockInvoiceRepository) GetDetail(ctx context.Context, id string) (*domain.InvoiceDetail, error) {
	invoice, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return &domain.InvoiceDetail{Invoice: *invoice, Items: m.items[id]}, nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.InvoiceDetail, 0, len(m.invoices))
	for id, inv := range m.invoices {
		out = append(out, domain.InvoiceDetail{Invoice: *inv, Items: m.items[id]})
	}
	return out, nil
}

func (m *MockInvoiceRepository) Update(ctx context.Context, id string, fields map[string]any, items []domain.InvoiceItem) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, id)
	m.UpdateFields = fields

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	invoice, ok := m.invoices[id]
	if !ok {
		return nil, domain.NewNotFoundError("Invoice not found", "Không tìm thấy hóa đơn")
	}

	if items != nil {
		m.items[id] = items
	}
	if status, ok := fields["status"].(domain.InvoiceStatus); ok {
		invoice.Status = status
	}
	if amount, ok := fields["paid_amount"].(float64); ok {
		invoice.PaidAmount = amount
	}
	if total, ok := fields["total_amount"].(float64); ok {
		invoice.TotalAmount = total
	}
	return invoice, nil
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.invoices, id)
	delete(m.items, id)
	return nil
}

func (m *MockInvoiceRepository) Stats(ctx context.Context, now time.Time) (*domain.BillingStats, error) {
	if m.StatsValue != nil {
		return m.StatsValue, nil
	}
	return &domain.BillingStats{}, nil
}

// MockMedicalRecordRepository implements ports.MedicalRecordRepository for
// testing.
type MockMedicalRecordRepository struct {
	mu sync.RWMutex

	records map[string]*domain.MedicalRecord

	CreateCalls []domain.MedicalRecord
	UpdateCalls []string
	DeleteCalls []string

	// CompletedAppointments captures the completeAppointmentID arguments
	// passed to Create.
	CompletedAppointments []string

	CreateError error
	UpdateError error
	DeleteError error
}

var _ ports.MedicalRecordRepository = (*MockMedicalRecordRepository)(nil)

func NewMockMedicalRecordRepository() *MockMedicalRecordRepository {
	return &MockMedicalRecordRepository{records: make(map[string]*domain.MedicalRecord)}
}

// SeedRecord adds a record to the mock repository for test setup.
func (m *MockMedicalRecordRepository) SeedRecord(r *domain.MedicalRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = r
}

func (m *MockMedicalRecordRepository) Create(ctx context.Context, record domain.MedicalRecord, completeAppointmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, record)
	if completeAppointmentID != "" {
		m.CompletedAppointments = append(m.CompletedAppointments, completeAppointmentID)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.records[record.ID] = &record
	return nil
}

func (m *MockMedicalRecordRepository) GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, domain.NewNotFoundError("Medical record not found", "Không tìm thấy hồ sơ bệnh án")
	}
	return record, nil
}

func (m *MockMedicalRecordRepository) GetDetail(ctx context.Context, id string) (*domain.RecordDetail, error) {
	record, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.RecordDetail{MedicalRecord: *record}, nil
}

func (m *MockMedicalRecordRepository) List(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.RecordDetail, 0, len(m.records))
	for _, r := range m.records {
		if filter.PatientID != "" && r.PatientID != filter.PatientID {
			continue
		}
		out = append(out, domain.RecordDetail{MedicalRecord: *r})
	}
	return out, nil
}

func (m *MockMedicalRecordRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.MedicalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, id)

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	record, ok := m.records[id]
	if !ok {
		return nil, domain.NewNotFoundError("Medical record not found", "Không tìm thấy hồ sơ bệnh án")
	}
	return record, nil
}

func (m *MockMedicalRecordRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, id)

	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.records, id)
	return nil
}

// MockDashboardRepository implements ports.DashboardRepository for testing.
type MockDashboardRepository struct {
	StatsValue        *domain.DashboardStats
	MonthlyStatsValue *domain.MonthlyStats

	StatsError error

	// Call tracking verifies cache hits skip the database.
	StatsCalls        int
	MonthlyStatsCalls int
}

var _ ports.DashboardRepository = (*MockDashboardRepository)(nil)

func (m *MockDashboardRepository) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	m.StatsCalls++
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	if m.StatsValue != nil {
		return m.StatsValue, nil
	}
	return &domain.DashboardStats{}, nil
}

func (m *MockDashboardRepository) MonthlyStats(ctx context.Context, now time.Time) (*domain.MonthlyStats, error) {
	m.MonthlyStatsCalls++
	if m.MonthlyStatsValue != nil {
		return m.MonthlyStatsValue, nil
	}
	return &domain.MonthlyStats{}, nil
}
