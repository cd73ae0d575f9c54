package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// DashboardRepository aggregates across the other tables for the landing
// page; it owns no table of its own.
type DashboardRepository struct {
	db *sqlx.DB
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) count(ctx context.Context, ds *goqu.SelectDataset, dest *int) error {
	query, args, err := ds.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *DashboardRepository) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	today := now.Format("2006-01-02")
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &domain.DashboardStats{}

	if err := r.count(ctx, dialect.From("appointments").
		Where(goqu.C("date").Eq(today)), &stats.TodayAppointments); err != nil {
		return nil, err
	}

	if err := r.count(ctx, dialect.From("appointments").
		Where(goqu.C("date").Eq(today), goqu.C("status").Eq(domain.AppointmentCheckedIn)),
		&stats.WaitingPatients); err != nil {
		return nil, err
	}

	if err := r.count(ctx, dialect.From("patients"), &stats.TotalPatients); err != nil {
		return nil, err
	}

	revenueQuery, revenueArgs, err := dialect.From("invoices").
		Select(goqu.COALESCE(goqu.SUM(goqu.C("paid_amount")), 0)).
		Where(
			goqu.C("status").Eq(domain.InvoicePaid),
			goqu.C("payment_date").Gte(startOfToday),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.TodayRevenue, revenueQuery, revenueArgs...); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *DashboardRepository) MonthlyStats(ctx context.Context, now time.Time) (*domain.MonthlyStats, error) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthStartDate := firstOfMonth.Format("2006-01-02")

	stats := &domain.MonthlyStats{}

	if err := r.count(ctx, dialect.From("appointments").
		Where(goqu.C("date").Gte(monthStartDate)), &stats.Appointments); err != nil {
		return nil, err
	}

	if err := r.count(ctx, dialect.From("patients").
		Where(goqu.C("created_at").Gte(firstOfMonth)), &stats.NewPatients); err != nil {
		return nil, err
	}

	if err := r.count(ctx, dialect.From("medical_records").
		Where(goqu.C("visit_date").Gte(monthStartDate)), &stats.MedicalRecords); err != nil {
		return nil, err
	}

	revenueQuery, revenueArgs, err := dialect.From("invoices").
		Select(goqu.COALESCE(goqu.SUM(goqu.C("paid_amount")), 0)).
		Where(
			goqu.C("status").Eq(domain.InvoicePaid),
			goqu.C("payment_date").Gte(firstOfMonth),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.Revenue, revenueQuery, revenueArgs...); err != nil {
		return nil, err
	}

	return stats, nil
}
