package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type StaffRepository struct {
	db *sqlx.DB
}

var _ ports.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func errStaffNotFound() error {
	return domain.NewNotFoundError("Staff not found", "Không tìm thấy nhân viên")
}

func (r *StaffRepository) Create(ctx context.Context, staff domain.Staff) error {
	query, args, err := dialect.Insert("staff").Rows(goqu.Record{
		"id":             staff.ID,
		"name":           staff.Name,
		"email":          staff.Email,
		"phone":          staff.Phone,
		"role":           staff.Role,
		"specialization": staff.Specialization,
		"license_number": staff.LicenseNumber,
		"hire_date":      staff.HireDate,
		"status":         staff.Status,
		"created_at":     staff.CreatedAt,
		"updated_at":     staff.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	return r.getOne(ctx, goqu.Ex{"id": id}, errStaffNotFound())
}

func (r *StaffRepository) GetDoctor(ctx context.Context, id string) (*domain.Staff, error) {
	notFound := domain.NewNotFoundError("Doctor not found", "Không tìm thấy bác sĩ")
	return r.getOne(ctx, goqu.Ex{"id": id, "role": domain.StaffRoleDoctor}, notFound)
}

func (r *StaffRepository) getOne(ctx context.Context, where goqu.Ex, notFound error) (*domain.Staff, error) {
	query, args, err := dialect.From("staff").Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var staff domain.Staff
	if err := r.db.GetContext(ctx, &staff, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) List(ctx context.Context, filter domain.StaffFilter) ([]domain.Staff, int, error) {
	conditions := make([]goqu.Expression, 0)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("email").ILike(pattern),
			goqu.C("phone").Like(pattern),
			goqu.C("specialization").ILike(pattern),
		))
	}
	if filter.Role != "" {
		conditions = append(conditions, goqu.C("role").Eq(filter.Role))
	}
	if filter.Status != "" {
		conditions = append(conditions, goqu.C("status").Eq(filter.Status))
	}

	offset := uint((filter.Page - 1) * filter.Limit)
	query, args, err := dialect.From("staff").
		Where(conditions...).
		Order(goqu.C("name").Asc()).
		Limit(uint(filter.Limit)).
		Offset(offset).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	members := make([]domain.Staff, 0)
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := dialect.From("staff").
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

	return members, total, nil
}

// ListDoctors returns active doctors only, for the booking form.
func (r *StaffRepository) ListDoctors(ctx context.Context) ([]domain.Staff, error) {
	query, args, err := dialect.From("staff").
		Where(goqu.Ex{"role": domain.StaffRoleDoctor, "status": domain.StaffActive}).
		Order(goqu.C("name").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	doctors := make([]domain.Staff, 0)
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *StaffRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Staff, error) {
	query, args, err := dialect.Update("staff").
		Set(goqu.Record(fields)).
		Where(goqu.C("id").Eq(id)).
		Returning(goqu.Star()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var staff domain.Staff
	if err := r.db.GetContext(ctx, &staff, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errStaffNotFound()
		}
		return nil, mapUniqueViolation(err)
	}
	return &staff, nil
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	query, args, err := dialect.Delete("staff").Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *StaffRepository) HasDependents(ctx context.Context, id string) (bool, error) {
	for _, table := range []string{"appointments", "medical_records"} {
		query, args, err := dialect.From(table).
			Select(goqu.COUNT(goqu.Star())).
			Where(goqu.C("doctor_id").Eq(id)).
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

func (r *StaffRepository) Stats(ctx context.Context) (*domain.StaffStats, error) {
	query, args, err := dialect.From("staff").
		Select(goqu.C("role"), goqu.C("status"), goqu.COUNT(goqu.Star()).As("count")).
		GroupBy(goqu.C("role"), goqu.C("status")).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows := make([]struct {
		Role   string `db:"role"`
		Status string `db:"status"`
		Count  int    `db:"count"`
	}, 0)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	stats := &domain.StaffStats{ByRole: make(map[string]int)}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByRole[row.Role] += row.Count
		if row.Status == string(domain.StaffActive) {
			stats.Active += row.Count
		}
		if row.Role == string(domain.StaffRoleDoctor) {
			stats.Doctors += row.Count
		}
	}
	return stats, nil
}
