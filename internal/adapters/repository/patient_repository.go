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

type PatientRepository struct {
	db *sqlx.DB
}

var _ ports.PatientRepository = (*PatientRepository)(nil)

func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient domain.Patient) error {
	query, args, err := dialect.Insert("patients").Rows(goqu.Record{
		"id":              patient.ID,
		"name":            patient.Name,
		"date_of_birth":   patient.DateOfBirth,
		"gender":          patient.Gender,
		"guardian_name":   patient.GuardianName,
		"phone":           patient.Phone,
		"email":           patient.Email,
		"address":         patient.Address,
		"medical_history": patient.MedicalHistory,
		"notes":           patient.Notes,
		"created_at":      patient.CreatedAt,
		"updated_at":      patient.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	query, args, err := dialect.From("patients").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var patient domain.Patient
	if err := r.db.GetContext(ctx, &patient, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Patient not found", "Không tìm thấy bệnh nhân")
		}
		return nil, err
	}
	return &patient, nil
}

// ageBandBounds translates an age band into date_of_birth window boundaries,
// mirroring the frontend's 0-1 / 1-5 / 5-12 / 12+ buckets.
func ageBandBounds(band string, today time.Time) (from, to string) {
	yearsAgo := func(n int) string {
		return today.AddDate(-n, 0, 0).Format("2006-01-02")
	}
	switch band {
	case "0-1":
		return yearsAgo(1), today.Format("2006-01-02")
	case "1-5":
		return yearsAgo(5), yearsAgo(1)
	case "5-12":
		return yearsAgo(12), yearsAgo(5)
	case "12+":
		return "", yearsAgo(12)
	}
	return "", ""
}

func (r *PatientRepository) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	conditions := make([]goqu.Expression, 0)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("guardian_name").ILike(pattern),
			goqu.C("phone").Like(pattern),
			goqu.C("email").ILike(pattern),
		))
	}
	if filter.Gender == string(domain.GenderMale) || filter.Gender == string(domain.GenderFemale) {
		conditions = append(conditions, goqu.C("gender").Eq(filter.Gender))
	}
	if filter.AgeBand != "" {
		from, to := ageBandBounds(filter.AgeBand, time.Now())
		if from != "" {
			conditions = append(conditions, goqu.C("date_of_birth").Gte(from))
		}
		if to != "" {
			conditions = append(conditions, goqu.C("date_of_birth").Lte(to))
		}
	}

	sortCol := "created_at"
	switch filter.SortBy {
	case "name":
		sortCol = "name"
	case "dateOfBirth":
		sortCol = "date_of_birth"
	case "lastVisit":
		sortCol = "last_visit"
	}
	order := goqu.C(sortCol).Desc()
	if filter.SortOrder == "asc" {
		order = goqu.C(sortCol).Asc()
	}

	offset := uint((filter.Page - 1) * filter.Limit)
	query, args, err := dialect.From("patients").
		Where(conditions...).
		Order(order).
		Limit(uint(filter.Limit)).
		Offset(offset).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	patients := make([]domain.Patient, 0)
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := dialect.From("patients").
		Select(goqu.COUNT(goqu.Star())).
		Where(conditions...).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *PatientRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Patient, error) {
	query, args, err := dialect.Update("patients").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var patient domain.Patient
	if err := r.db.GetContext(ctx, &patient, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Patient not found", "Không tìm thấy bệnh nhân")
		}
		return nil, mapUniqueViolation(err)
	}
	return &patient, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.Delete("patients").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// HasDependents reports whether any appointment, medical record or invoice
// still references the patient.
func (r *PatientRepository) HasDependents(ctx context.Context, id string) (bool, error) {
	for _, table := range []string{"appointments", "medical_records", "invoices"} {
		query, args, err := dialect.From(table).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.C("patient_id").Eq(id)).
			Prepared(true).ToSQL()
		if err != nil {
			return false, err
		}

		var count int
		if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
