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

type MedicalRecordRepository struct {
	db *sqlx.DB
}

var _ ports.MedicalRecordRepository = (*MedicalRecordRepository)(nil)

func NewMedicalRecordRepository(db *sqlx.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func errRecordNotFound() error {
	return domain.NewNotFoundError("Medical record not found", "Không tìm thấy hồ sơ bệnh án")
}

func recordDetailDataset() *goqu.SelectDataset {
	return dialect.From(goqu.T("medical_records").As("m")).
		LeftJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("m.patient_id").Eq(goqu.I("p.id")))).
		LeftJoin(goqu.T("staff").As("s"), goqu.On(goqu.I("m.doctor_id").Eq(goqu.I("s.id")))).
		Select(
			goqu.I("m.*"),
			goqu.I("p.name").As("patient_name"),
			goqu.I("s.name").As("doctor_name"),
		)
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record domain.MedicalRecord, completeAppointmentID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := dialect.Insert("medical_records").Rows(goqu.Record{
		"id":             record.ID,
		"patient_id":     record.PatientID,
		"doctor_id":      record.DoctorID,
		"appointment_id": record.AppointmentID,
		"visit_date":     record.VisitDate,
		"weight":         record.Weight,
		"height":         record.Height,
		"temperature":    record.Temperature,
		"blood_pressure": record.BloodPressure,
		"heart_rate":     record.HeartRate,
		"symptoms":       record.Symptoms,
		"examination":    record.Examination,
		"diagnosis":      record.Diagnosis,
		"treatment":      record.Treatment,
		"prescription":   record.Prescription,
		"follow_up_date": record.FollowUpDate,
		"notes":          record.Notes,
		"status":         record.Status,
		"created_at":     record.CreatedAt,
		"updated_at":     record.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	// Documenting a visit closes out its appointment.
	if completeAppointmentID != "" {
		now := time.Now()
		completeQuery, completeArgs, err := dialect.Update("appointments").
			Set(goqu.Record{
				"status":       domain.AppointmentCompleted,
				"completed_at": now,
				"updated_at":   now,
			}).
			Where(goqu.C("id").Eq(completeAppointmentID)).
			Prepared(true).ToSQL()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, completeQuery, completeArgs...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	query, args, err := dialect.From("medical_records").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var record domain.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errRecordNotFound()
		}
		return nil, err
	}
	return &record, nil
}

func (r *MedicalRecordRepository) GetDetail(ctx context.Context, id string) (*domain.RecordDetail, error) {
	query, args, err := recordDetailDataset().Where(goqu.I("m.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var detail domain.RecordDetail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errRecordNotFound()
		}
		return nil, err
	}
	return &detail, nil
}

func (r *MedicalRecordRepository) List(ctx context.Context, filter domain.RecordFilter) ([]domain.RecordDetail, error) {
	conditions := make([]goqu.Expression, 0)

	if filter.PatientID != "" {
		conditions = append(conditions, goqu.I("m.patient_id").Eq(filter.PatientID))
	}
	if filter.DoctorID != "" {
		conditions = append(conditions, goqu.I("m.doctor_id").Eq(filter.DoctorID))
	}
	if filter.Status != "" {
		conditions = append(conditions, goqu.I("m.status").Eq(filter.Status))
	}

	offset := uint((filter.Page - 1) * filter.Limit)
	query, args, err := recordDetailDataset().
		Where(conditions...).
		Order(goqu.I("m.visit_date").Desc()).
		Limit(uint(filter.Limit)).
		Offset(offset).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	details := make([]domain.RecordDetail, 0)
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.MedicalRecord, error) {
	query, args, err := dialect.Update("medical_records").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var record domain.MedicalRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errRecordNotFound()
		}
		return nil, err
	}
	return &record, nil
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.Delete("medical_records").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
