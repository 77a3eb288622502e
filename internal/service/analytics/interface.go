package analytics

import (
	"context"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
)

// Repo is the aggregate query contract. The postgres adapter answers with
// GROUP BY queries, the memory store by scanning its maps.
type Repo interface {
	BookingStats(ctx context.Context, since time.Time) (*models.BookingStats, error)
	DailyTrends(ctx context.Context, days int) ([]models.DailyTrend, error)
	DriverPerformance(ctx context.Context, since time.Time) ([]models.DriverPerformance, error)
	StatusDistribution(ctx context.Context, since time.Time) ([]models.StatusCount, error)
	PeakHours(ctx context.Context, since time.Time) ([]models.HourCount, error)
}
