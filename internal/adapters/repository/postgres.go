package repository

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/lib/pq"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
)

// All repositories build SQL through goqu's postgres dialect with prepared
// placeholders and scan rows through sqlx struct tags.
var dialect = goqu.Dialect("postgres")

const pqUniqueViolation = "23505"

// mapUniqueViolation translates a postgres unique-constraint violation into
// the domain Conflict error matching the violated index. The active-slot
// index is the authoritative guard for the booking race: two concurrent
// inserts for the same (doctor, date, time) both pass the availability check,
// but only one survives the constraint.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return err
	}

	switch pqErr.Constraint {
	case "uniq_active_slot":
		return domain.NewConflictError("Time slot conflict", "Thời gian này đã có lịch hẹn khác")
	case "invoices_invoice_number_key":
		return domain.NewConflictError("Duplicate invoice number", "Số hóa đơn bị trùng")
	case "patients_phone_key":
		return domain.NewConflictError("Phone already registered", "Số điện thoại đã được đăng ký")
	case "staff_email_key":
		return domain.NewConflictError("Email already registered", "Email đã được đăng ký")
	default:
		return domain.NewConflictError("Conflict", "Dữ liệu bị trùng lặp")
	}
}

// outboxTable is shared with the relay, which drains rows the triggers on
// this table announce via pg_notify.
const outboxTable = "outbox_events"

// outboxInsert returns the insert statement for one outbox row. A trigger on
// outbox_events issues pg_notify so the relay picks the event up
// immediately; the relay's periodic sweep covers missed notifications.
func outboxInsert(id, eventType string, payload []byte) *goqu.InsertDataset {
	return dialect.Insert(outboxTable).Rows(goqu.Record{
		"id":         id,
		"event_type": eventType,
		"payload":    payload,
	})
}
