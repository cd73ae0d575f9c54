package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type AppointmentRepository struct {
	db *sqlx.DB
}

var _ ports.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func errApptNotFound() error {
	return domain.NewNotFoundError("Appointment not found", "Không tìm thấy lịch hẹn")
}

// appointmentDetailDataset joins the display fields the frontend shows next
// to each appointment row.
func appointmentDetailDataset() *goqu.SelectDataset {
	return dialect.From(goqu.T("appointments").As("a")).
		LeftJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("a.patient_id").Eq(goqu.I("p.id")))).
		LeftJoin(goqu.T("staff").As("s"), goqu.On(goqu.I("a.doctor_id").Eq(goqu.I("s.id")))).
		Select(
			goqu.I("a.*"),
			goqu.I("p.name").As("patient_name"),
			goqu.I("p.phone").As("patient_phone"),
			goqu.I("s.name").As("doctor_name"),
			goqu.I("s.specialization").As("doctor_specialization"),
		)
}

func (r *AppointmentRepository) FindConflict(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (*domain.Appointment, error) {
	conditions := []goqu.Expression{
		goqu.C("doctor_id").Eq(doctorID),
		goqu.C("date").Eq(date),
		goqu.C("time").Eq(timeOfDay),
		goqu.C("status").Neq(domain.AppointmentCancelled),
	}
	if excludeID != "" {
		conditions = append(conditions, goqu.C("id").Neq(excludeID))
	}

	query, args, err := dialect.From("appointments").
		Where(conditions...).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var appt domain.Appointment
	if err := r.db.GetContext(ctx, &appt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

// Create inserts the appointment, stamps the patient's last visit and writes
// the outbox row in one transaction. A concurrent booking of the same slot
// fails here on the uniq_active_slot index and surfaces as Conflict.
func (r *AppointmentRepository) Create(ctx context.Context, appt domain.Appointment, outboxPayload []byte) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery, insertArgs, err := dialect.Insert("appointments").Rows(goqu.Record{
		"id":         appt.ID,
		"patient_id": appt.PatientID,
		"doctor_id":  appt.DoctorID,
		"date":       appt.Date,
		"time":       appt.Time,
		"duration":   appt.Duration,
		"reason":     appt.Reason,
		"notes":      appt.Notes,
		"status":     appt.Status,
		"created_at": appt.CreatedAt,
		"updated_at": appt.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return mapUniqueViolation(err)
	}

	visitQuery, visitArgs, err := dialect.Update("patients").
		Set(goqu.Record{"last_visit": time.Now(), "updated_at": time.Now()}).
		Where(goqu.C("id").Eq(appt.PatientID)).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, visitQuery, visitArgs...); err != nil {
		return err
	}

	if err := execOutbox(ctx, tx, ports.EventAppointmentCreated, outboxPayload); err != nil {
		return err
	}

	return tx.Commit()
}

func execOutbox(ctx context.Context, tx *sqlx.Tx, eventType string, payload []byte) error {
	query, args, err := outboxInsert(uuid.NewString(), eventType, payload).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query, args, err := dialect.From("appointments").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var appt domain.Appointment
	if err := r.db.GetContext(ctx, &appt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errApptNotFound()
		}
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) GetDetail(ctx context.Context, id string) (*domain.AppointmentDetail, error) {
	query, args, err := appointmentDetailDataset().
		Where(goqu.I("a.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var detail domain.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errApptNotFound()
		}
		return nil, err
	}
	return &detail, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.AppointmentDetail, error) {
	conditions := make([]goqu.Expression, 0)

	if filter.Date != "" {
		conditions = append(conditions, goqu.I("a.date").Eq(filter.Date))
	}
	if filter.DoctorID != "" {
		conditions = append(conditions, goqu.I("a.doctor_id").Eq(filter.DoctorID))
	}
	if filter.PatientID != "" {
		conditions = append(conditions, goqu.I("a.patient_id").Eq(filter.PatientID))
	}
	if filter.Status != "" {
		conditions = append(conditions, goqu.I("a.status").Eq(filter.Status))
	}

	offset := uint((filter.Page - 1) * filter.Limit)
	query, args, err := appointmentDetailDataset().
		Where(conditions...).
		Order(goqu.I("a.date").Asc(), goqu.I("a.time").Asc()).
		Limit(uint(filter.Limit)).
		Offset(offset).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	details := make([]domain.AppointmentDetail, 0)
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Appointment, error) {
	query, args, err := dialect.Update("appointments").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var appt domain.Appointment
	if err := r.db.GetContext(ctx, &appt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errApptNotFound()
		}
		return nil, mapUniqueViolation(err)
	}
	return &appt, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id string, fields map[string]any, outboxPayload []byte) (*domain.Appointment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query, args, err := dialect.Update("appointments").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var appt domain.Appointment
	if err := tx.GetContext(ctx, &appt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errApptNotFound()
		}
		return nil, err
	}

	if err := execOutbox(ctx, tx, ports.EventAppointmentCancelled, outboxPayload); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.Delete("appointments").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
