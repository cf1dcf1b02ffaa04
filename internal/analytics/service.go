package analytics

import (
	"context"
	"time"

	"github.com/swasthikkulal/parking-backend/pkg/cache"
)

// Service defines the analytics service interface
type Service interface {
	SetCacheService(cacheService cache.Service)

	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetPaymentAnalytics(ctx context.Context) (*PaymentAnalytics, error)
	GetSectionStats(ctx context.Context) ([]SectionStats, error)
	GetAvailabilitySummary(ctx context.Context) (*AvailabilitySummary, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new analytics service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.cacheService != nil {
		var cached DashboardStats
		err := s.cacheService.GetOrSet(ctx, cache.KeyDashboardStats, 15*time.Second, func() (interface{}, error) {
			return s.repo.GetDashboardStats(ctx)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}
	return s.repo.GetDashboardStats(ctx)
}

func (s *service) GetPaymentAnalytics(ctx context.Context) (*PaymentAnalytics, error) {
	return s.repo.GetPaymentAnalytics(ctx)
}

func (s *service) GetSectionStats(ctx context.Context) ([]SectionStats, error) {
	return s.repo.GetSectionStats(ctx)
}

func (s *service) GetAvailabilitySummary(ctx context.Context) (*AvailabilitySummary, error) {
	if s.cacheService != nil {
		var cached AvailabilitySummary
		err := s.cacheService.GetOrSet(ctx, cache.KeyAvailabilitySummary, 30*time.Second, func() (interface{}, error) {
			return s.repo.GetAvailabilitySummary(ctx)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}
	return s.repo.GetAvailabilitySummary(ctx)
}
