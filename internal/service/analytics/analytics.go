// Package analytics assembles the admin dashboard aggregates over a
// configurable trailing window.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
)

type Service struct {
	repo       Repo
	windowDays int
	log        logger.Logger
}

func New(repo Repo, windowDays int, log logger.Logger) *Service {
	return &Service{
		repo:       repo,
		windowDays: windowDays,
		log:        log,
	}
}

// WindowDays is the trailing window every dashboard aggregate covers.
func (s *Service) WindowDays() int {
	return s.windowDays
}

// Dashboard gathers every dashboard section for the trailing window.
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	ctx = wrap.WithAction(ctx, "dashboard")

	since := time.Now().UTC().AddDate(0, 0, -s.windowDays)

	stats, err := s.repo.BookingStats(ctx, since)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("booking stats: %w", err))
	}

	trends, err := s.repo.DailyTrends(ctx, s.windowDays)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("daily trends: %w", err))
	}

	performance, err := s.repo.DriverPerformance(ctx, since)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("driver performance: %w", err))
	}

	statuses, err := s.repo.StatusDistribution(ctx, since)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("status distribution: %w", err))
	}

	hours, err := s.repo.PeakHours(ctx, since)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("peak hours: %w", err))
	}

	return &models.Dashboard{
		BookingStats:       *stats,
		DailyTrends:        trends,
		DriverPerformance:  performance,
		StatusDistribution: statuses,
		PeakHours:          hours,
	}, nil
}
