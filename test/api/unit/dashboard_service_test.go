package unit

import (
	"context"
	"errors"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

func TestDashboardService_Stats_CachesResult(t *testing.T) {
	repo := &mocks.MockDashboardRepository{
		StatsValue: &domain.DashboardStats{TodayAppointments: 12, TotalPatients: 340},
	}
	cache := mocks.NewMockCache()
	service := services.NewDashboardService(repo, cache)

	ctx := context.Background()

	first, err := service.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TodayAppointments != 12 {
		t.Errorf("expected 12 appointments, got %d", first.TodayAppointments)
	}
	if repo.StatsCalls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.StatsCalls)
	}

	// Second call must be served from the cache.
	second, err := service.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.StatsCalls != 1 {
		t.Errorf("expected cache hit to skip the repository, got %d calls", repo.StatsCalls)
	}
	if second.TotalPatients != 340 {
		t.Errorf("cached value corrupted: got %d patients", second.TotalPatients)
	}
}

// Cache infrastructure failures degrade to direct reads; the caller never
// sees them.
func TestDashboardService_Stats_CacheFailureFallsThrough(t *testing.T) {
	repo := &mocks.MockDashboardRepository{
		StatsValue: &domain.DashboardStats{TodayAppointments: 7},
	}
	cache := mocks.NewMockCache()
	cache.GetError = errors.New("redis down")
	cache.SetError = errors.New("redis down")
	service := services.NewDashboardService(repo, cache)

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to repository, got error: %v", err)
	}
	if stats.TodayAppointments != 7 {
		t.Errorf("expected 7 appointments, got %d", stats.TodayAppointments)
	}
}

func TestDashboardService_Stats_RepositoryErrorSurfaces(t *testing.T) {
	repo := &mocks.MockDashboardRepository{StatsError: errors.New("db down")}
	service := services.NewDashboardService(repo, mocks.NewMockCache())

	if _, err := service.Stats(context.Background()); err == nil {
		t.Error("expected repository error to surface")
	}
}

func TestDashboardService_MonthlyStats(t *testing.T) {
	repo := &mocks.MockDashboardRepository{
		MonthlyStatsValue: &domain.MonthlyStats{Appointments: 98, NewPatients: 21},
	}
	cache := mocks.NewMockCache()
	service := services.NewDashboardService(repo, cache)

	stats, err := service.MonthlyStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Appointments != 98 || stats.NewPatients != 21 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if _, err := service.MonthlyStats(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.MonthlyStatsCalls != 1 {
		t.Errorf("expected cache hit on second call, repository was hit %d times", repo.MonthlyStatsCalls)
	}
}
