package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type InvoiceRepository struct {
	db *sqlx.DB
}

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func errInvNotFound() error {
	return domain.NewNotFoundError("Invoice not found", "Không tìm thấy hóa đơn")
}

func invoiceRecord(invoice domain.Invoice) goqu.Record {
	return goqu.Record{
		"id":                invoice.ID,
		"invoice_number":    invoice.InvoiceNumber,
		"patient_id":        invoice.PatientID,
		"appointment_id":    invoice.AppointmentID,
		"medical_record_id": invoice.MedicalRecordID,
		"issue_date":        invoice.IssueDate,
		"due_date":          invoice.DueDate,
		"subtotal":          invoice.Subtotal,
		"tax":               invoice.Tax,
		"discount":          invoice.Discount,
		"total_amount":      invoice.TotalAmount,
		"paid_amount":       invoice.PaidAmount,
		"status":            invoice.Status,
		"notes":             invoice.Notes,
		"created_at":        invoice.CreatedAt,
		"updated_at":        invoice.UpdatedAt,
	}
}

func itemRows(items []domain.InvoiceItem) []any {
	rows := make([]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, goqu.Record{
			"id":          item.ID,
			"invoice_id":  item.InvoiceID,
			"description": item.Description,
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"total_price": item.TotalPrice,
			"created_at":  item.CreatedAt,
		})
	}
	return rows
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := dialect.Insert("invoices").Rows(invoiceRecord(invoice)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapUniqueViolation(err)
	}

	itemsQuery, itemsArgs, err := dialect.Insert("invoice_items").Rows(itemRows(items)...).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query, args, err := dialect.From("invoices").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var invoice domain.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errInvNotFound()
		}
		return nil, err
	}
	return &invoice, nil
}

func invoiceDetailDataset() *goqu.SelectDataset {
	return dialect.From(goqu.T("invoices").As("i")).
		LeftJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("i.patient_id").Eq(goqu.I("p.id")))).
		Select(
			goqu.I("i.*"),
			goqu.I("p.name").As("patient_name"),
			goqu.I("p.phone").As("patient_phone"),
			goqu.I("p.email").As("patient_email"),
			goqu.I("p.address").As("patient_address"),
		)
}

func (r *InvoiceRepository) GetDetail(ctx context.Context, id string) (*domain.InvoiceDetail, error) {
	query, args, err := invoiceDetailDataset().Where(goqu.I("i.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var detail domain.InvoiceDetail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errInvNotFound()
		}
		return nil, err
	}

	itemsQuery, itemsArgs, err := dialect.From("invoice_items").
		Where(goqu.C("invoice_id").Eq(id)).
		Order(goqu.C("created_at").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	detail.Items = make([]domain.InvoiceItem, 0)
	if err := r.db.SelectContext(ctx, &detail.Items, itemsQuery, itemsArgs...); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceDetail, error) {
	conditions := make([]goqu.Expression, 0)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("i.invoice_number").ILike(pattern),
			goqu.I("p.name").ILike(pattern),
			goqu.I("p.phone").Like(pattern),
		))
	}
	if filter.Status != "" {
		conditions = append(conditions, goqu.I("i.status").Eq(filter.Status))
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, goqu.I("i.issue_date").Gte(filter.DateFrom))
	}
	if filter.DateTo != "" {
		conditions = append(conditions, goqu.I("i.issue_date").Lte(filter.DateTo))
	}
	if filter.PatientID != "" {
		conditions = append(conditions, goqu.I("i.patient_id").Eq(filter.PatientID))
	}

	offset := uint((filter.Page - 1) * filter.Limit)
	query, args, err := invoiceDetailDataset().
		Where(conditions...).
		Order(goqu.I("i.created_at").Desc()).
		Limit(uint(filter.Limit)).
		Offset(offset).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.InvoiceDetail, 0)
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Update applies the field map and, when items is non-nil, replaces the item
// set via delete-then-insert in the same transaction.
func (r *InvoiceRepository) Update(ctx context.Context, id string, fields map[string]any, items []domain.InvoiceItem) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if items != nil {
		deleteQuery, deleteArgs, err := dialect.Delete("invoice_items").
			Where(goqu.C("invoice_id").Eq(id)).
			Prepared(true).ToSQL()
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return nil, err
		}

		insertQuery, insertArgs, err := dialect.Insert("invoice_items").Rows(itemRows(items)...).Prepared(true).ToSQL()
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return nil, err
		}
	}

	query, args, err := dialect.Update("invoices").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var invoice domain.Invoice
	if err := tx.GetContext(ctx, &invoice, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errInvNotFound()
		}
		return nil, mapUniqueViolation(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	itemsQuery, itemsArgs, err := dialect.Delete("invoice_items").
		Where(goqu.C("invoice_id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return err
	}

	query, args, err := dialect.Delete("invoices").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// Stats sums paid_amount over paid invoices on the payment timestamp window;
// it is a read-only projection of current persisted state.
func (r *InvoiceRepository) Stats(ctx context.Context, now time.Time) (*domain.BillingStats, error) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &domain.BillingStats{}

	if err := r.sumPaid(ctx, startOfToday, &stats.TodayRevenue); err != nil {
		return nil, err
	}
	if err := r.sumPaid(ctx, startOfMonth, &stats.MonthlyRevenue); err != nil {
		return nil, err
	}

	todayQuery, todayArgs, err := dialect.From("invoices").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("issue_date").Eq(now.Format("2006-01-02"))).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.TodayInvoices, todayQuery, todayArgs...); err != nil {
		return nil, err
	}

	pendingQuery, pendingArgs, err := dialect.From("invoices").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("status").Eq(domain.InvoicePending)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.PendingPayments, pendingQuery, pendingArgs...); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *InvoiceRepository) sumPaid(ctx context.Context, since time.Time, dest *float64) error {
	query, args, err := dialect.From("invoices").
		Select(goqu.COALESCE(goqu.SUM(goqu.C("paid_amount")), 0)).
		Where(
			goqu.C("status").Eq(domain.InvoicePaid),
			goqu.C("payment_date").Gte(since),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, dest, query, args...)
}
