package domain

import (
	"fmt"
	"time"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Invoice owns an ordered set of items. Totals always satisfy
// total = subtotal + tax - discount, with subtotal the sum of the item line
// totals. Once status is paid the invoice and its items are immutable.
type Invoice struct {
	ID              string        `json:"id" db:"id"`
	InvoiceNumber   string        `json:"invoiceNumber" db:"invoice_number"`
	PatientID       string        `json:"patientId" db:"patient_id"`
	AppointmentID   *string       `json:"appointmentId,omitempty" db:"appointment_id"`
	MedicalRecordID *string       `json:"medicalRecordId,omitempty" db:"medical_record_id"`
	IssueDate       string        `json:"issueDate" db:"issue_date"`
	DueDate         *string       `json:"dueDate,omitempty" db:"due_date"`
	Subtotal        float64       `json:"subtotal" db:"subtotal"`
	Tax             float64       `json:"tax" db:"tax"`
	Discount        float64       `json:"discount" db:"discount"`
	TotalAmount     float64       `json:"totalAmount" db:"total_amount"`
	PaidAmount      float64       `json:"paidAmount" db:"paid_amount"`
	Status          InvoiceStatus `json:"status" db:"status"`
	PaymentMethod   *string       `json:"paymentMethod,omitempty" db:"payment_method"`
	PaymentDate     *time.Time    `json:"paymentDate,omitempty" db:"payment_date"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

type InvoiceItem struct {
	ID          string    `json:"id" db:"id"`
	InvoiceID   string    `json:"invoiceId" db:"invoice_id"`
	Description string    `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unitPrice" db:"unit_price"`
	TotalPrice  float64   `json:"totalPrice" db:"total_price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// InvoiceDetail is an invoice with its items and joined patient fields.
type InvoiceDetail struct {
	Invoice
	PatientName    *string       `json:"patientName,omitempty" db:"patient_name"`
	PatientPhone   *string       `json:"patientPhone,omitempty" db:"patient_phone"`
	PatientEmail   *string       `json:"patientEmail,omitempty" db:"patient_email"`
	PatientAddress *string       `json:"patientAddress,omitempty" db:"patient_address"`
	Items          []InvoiceItem `json:"items"`
}

type InvoiceFilter struct {
	Search    string
	Status    string
	DateFrom  string
	DateTo    string
	PatientID string
	Page      int
	Limit     int
}

// LineItemInput is one service line as submitted by the caller.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceTotals is the computed money breakdown for a set of line items.
type InvoiceTotals struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// ComputeInvoiceTotals applies the billing formula: subtotal is the sum of
// quantity x unit price over the items, tax is taxPercent of the subtotal,
// and the discount is an absolute amount.
func ComputeInvoiceTotals(items []LineItemInput, taxPercent, discount float64) InvoiceTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.Price
	}
	tax := subtotal * taxPercent / 100
	return InvoiceTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal + tax - discount,
	}
}

// NewInvoiceNumber builds INV-YYYYMMDD-<last 6 digits of epoch millis>.
// The fine-grained suffix minimizes collisions but does not rule them out;
// the unique constraint on invoice_number stays authoritative.
func NewInvoiceNumber(now time.Time) string {
	millis := now.UnixMilli()
	return fmt.Sprintf("INV-%s-%06d", now.Format("20060102"), millis%1000000)
}

// BillingStats is the /billing/stats projection: revenue sums paid_amount
// over paid invoices within the window on the payment timestamp.
type BillingStats struct {
	TodayRevenue    float64 `json:"todayRevenue"`
	TodayInvoices   int     `json:"todayInvoices"`
	PendingPayments int     `json:"pendingPayments"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
}
