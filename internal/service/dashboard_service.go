package service

import (
	"context"

	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/metrics"
	"github.com/spm-engineering/billing-service/internal/models"
	"github.com/spm-engineering/billing-service/internal/repository"
)

type DashboardService struct {
	repo   repository.StatsRepository
	cache  repository.InvoiceCache
	config *config.Config
	logger *logging.Logger
}

func NewDashboardService(repo repository.StatsRepository, cache repository.InvoiceCache, cfg *config.Config) *DashboardService {
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		config: cfg,
		logger: logging.NewLogger("dashboard-service"),
	}
}

// Stats returns the dashboard summary, served from cache while it is fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	caching := s.config.Features.EnableInvoiceCaching

	if caching {
		if stats, err := s.cache.GetStats(ctx); err == nil && stats != nil {
			metrics.CacheLookups.WithLabelValues("stats", "hit").Inc()
			return stats, nil
		}
		metrics.CacheLookups.WithLabelValues("stats", "miss").Inc()
	}

	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if caching {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.logger.Warn("Failed to cache dashboard stats", logging.Fields{"error": err.Error()})
		}
	}
	return stats, nil
}
