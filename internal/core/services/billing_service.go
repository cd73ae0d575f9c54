package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// invoiceNumberRetries bounds regeneration attempts when the millisecond
// suffix collides on the invoice_number unique constraint.
const invoiceNumberRetries = 3

// BillingService computes invoice totals and enforces the paid-invoice
// immutability rule.
type BillingService struct {
	invoices ports.InvoiceRepository
	patients ports.PatientRepository
	now      func() time.Time
}

var _ ports.BillingService = (*BillingService)(nil)

func NewBillingService(invoices ports.InvoiceRepository, patients ports.PatientRepository) *BillingService {
	return &BillingService{
		invoices: invoices,
		patients: patients,
		now:      time.Now,
	}
}

func (s *BillingService) Create(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if in.PatientID == "" || len(in.Items) == 0 {
		return nil, domain.NewValidationError("Validation Error", "Bệnh nhân và danh sách dịch vụ là bắt buộc")
	}
	for _, item := range in.Items {
		if item.Description == "" || item.Quantity <= 0 || item.Price <= 0 {
			return nil, domain.NewValidationError("Validation Error", "Mỗi dịch vụ phải có mô tả, số lượng và giá")
		}
	}

	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	totals := domain.ComputeInvoiceTotals(in.Items, in.Tax, in.Discount)
	now := s.now()

	invoice := domain.Invoice{
		ID:              uuid.NewString(),
		PatientID:       in.PatientID,
		AppointmentID:   in.AppointmentID,
		MedicalRecordID: in.MedicalRecordID,
		IssueDate:       now.Format("2006-01-02"),
		DueDate:         in.DueDate,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.Discount,
		TotalAmount:     totals.Total,
		PaidAmount:      0,
		Status:          domain.InvoicePending,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := buildItems(invoice.ID, in.Items, now)

	var err error
	for attempt := 0; attempt < invoiceNumberRetries; attempt++ {
		invoice.InvoiceNumber = domain.NewInvoiceNumber(s.now())
		err = s.invoices.Create(ctx, invoice, items)
		if err == nil {
			return &invoice, nil
		}
		if !domain.IsKind(err, domain.KindConflict) {
			return nil, err
		}
	}
	return nil, err
}

func buildItems(invoiceID string, inputs []domain.LineItemInput, now time.Time) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.InvoiceItem{
			ID:          uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.Price,
			TotalPrice:  float64(in.Quantity) * in.Price,
			CreatedAt:   now,
		})
	}
	return items
}

func (s *BillingService) Get(ctx context.Context, id string) (*domain.InvoiceDetail, error) {
	return s.invoices.GetDetail(ctx, id)
}

func (s *BillingService) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceDetail, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.invoices.List(ctx, filter)
}

// Update rejects paid invoices outright. When items are supplied the whole
// item set is replaced and the totals recomputed; without a tax rate in the
// patch the stored tax amount carries over, and the discount defaults to the
// stored value.
func (s *BillingService) Update(ctx context.Context, id string, patch ports.InvoicePatch) (*domain.Invoice, error) {
	existing, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == domain.InvoicePaid {
		return nil, domain.NewBusinessError("Cannot edit paid invoice", "Không thể sửa hóa đơn đã thanh toán")
	}

	fields := map[string]any{"updated_at": s.now()}

	var items []domain.InvoiceItem
	if patch.Items != nil {
		for _, item := range patch.Items {
			if item.Description == "" || item.Quantity <= 0 || item.Price <= 0 {
				return nil, domain.NewValidationError("Validation Error", "Mỗi dịch vụ phải có mô tả, số lượng và giá")
			}
		}

		discount := existing.Discount
		if patch.Discount != nil {
			discount = *patch.Discount
		}

		var totals domain.InvoiceTotals
		if patch.Tax != nil {
			totals = domain.ComputeInvoiceTotals(patch.Items, *patch.Tax, discount)
		} else {
			// The stored tax is an absolute amount, not a rate. Without a
			// new rate in the patch it carries over unchanged.
			totals = domain.ComputeInvoiceTotals(patch.Items, 0, discount)
			totals.Tax = existing.Tax
			totals.Total = totals.Subtotal + totals.Tax - totals.Discount
		}
		fields["subtotal"] = totals.Subtotal
		fields["tax"] = totals.Tax
		fields["discount"] = totals.Discount
		fields["total_amount"] = totals.Total

		items = buildItems(id, patch.Items, s.now())
	}

	if patch.PatientID != nil {
		fields["patient_id"] = *patch.PatientID
	}
	if patch.AppointmentID != nil {
		fields["appointment_id"] = *patch.AppointmentID
	}
	if patch.MedicalRecordID != nil {
		fields["medical_record_id"] = *patch.MedicalRecordID
	}
	if patch.DueDate != nil {
		fields["due_date"] = *patch.DueDate
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	return s.invoices.Update(ctx, id, fields, items)
}

func (s *BillingService) MarkPaid(ctx context.Context, id string, in ports.MarkPaidInput) (*domain.Invoice, error) {
	existing, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == domain.InvoicePaid {
		return nil, domain.NewBusinessError("Already paid", "Hóa đơn đã được thanh toán rồi")
	}

	method := in.PaymentMethod
	if method == "" {
		method = string(domain.PaymentCash)
	}
	amount := existing.TotalAmount
	if in.PaidAmount != nil {
		amount = *in.PaidAmount
	}

	now := s.now()
	return s.invoices.Update(ctx, id, map[string]any{
		"status":         domain.InvoicePaid,
		"payment_method": method,
		"paid_amount":    amount,
		"payment_date":   now,
		"updated_at":     now,
	}, nil)
}

func (s *BillingService) Delete(ctx context.Context, id string) error {
	existing, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Status == domain.InvoicePaid {
		return domain.NewBusinessError("Cannot delete paid invoice", "Không thể xóa hóa đơn đã thanh toán")
	}

	return s.invoices.Delete(ctx, id)
}

func (s *BillingService) Stats(ctx context.Context) (*domain.BillingStats, error) {
	return s.invoices.Stats(ctx, s.now())
}
