package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

const (
	dashboardStatsKey   = "dashboard:stats"
	dashboardMonthlyKey = "dashboard:monthly"
	dashboardCacheTTL   = 30 * time.Second
)

// DashboardService serves the read-only stat projections. Results are cached
// briefly in Redis; cache failures are logged and fall through to the
// database, never to the caller.
type DashboardService struct {
	dashboard ports.DashboardRepository
	cache     ports.Cache
	now       func() time.Time
}

var _ ports.DashboardService = (*DashboardService)(nil)

func NewDashboardService(dashboard ports.DashboardRepository, cache ports.Cache) *DashboardService {
	return &DashboardService{
		dashboard: dashboard,
		cache:     cache,
		now:       time.Now,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	if s.readCache(ctx, dashboardStatsKey, &cached) {
		return &cached, nil
	}

	stats, err := s.dashboard.Stats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, dashboardStatsKey, stats)
	return stats, nil
}

func (s *DashboardService) MonthlyStats(ctx context.Context) (*domain.MonthlyStats, error) {
	var cached domain.MonthlyStats
	if s.readCache(ctx, dashboardMonthlyKey, &cached) {
		return &cached, nil
	}

	stats, err := s.dashboard.MonthlyStats(ctx, s.now())
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, dashboardMonthlyKey, stats)
	return stats, nil
}

func (s *DashboardService) readCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("dashboard cache read failed for %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("dashboard cache entry %s is corrupt: %v", key, err)
		return false
	}
	return true
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), dashboardCacheTTL); err != nil {
		log.Printf("dashboard cache write failed for %s: %v", key, err)
	}
}
