package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
)

// AnalyticsRepo computes the dashboard aggregates by scanning the store.
// Fine at demo scale; the postgres adapter does the same with GROUP BY.
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) BookingStats(ctx context.Context, since time.Time) (*models.BookingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &models.BookingStats{}
	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		stats.TotalBookings++
		switch b.Status {
		case types.BookingCompleted:
			stats.CompletedBookings++
			stats.TotalRevenue += b.Fare
		case types.BookingCancelled:
			stats.CancelledBookings++
		}
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)
	stats.CompletionRate = rate(stats.CompletedBookings, stats.TotalBookings)
	return stats, nil
}

// DailyTrends returns one entry per calendar day for the last days days,
// oldest first, with zero rows for days without bookings.
func (r *AnalyticsRepo) DailyTrends(ctx context.Context, days int) ([]models.DailyTrend, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type bucket struct {
		count   int
		revenue float64
	}
	byDay := make(map[string]*bucket)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		day := b.CreatedAt.UTC().Format(time.DateOnly)
		bk := byDay[day]
		if bk == nil {
			bk = &bucket{}
			byDay[day] = bk
		}
		bk.count++
		if b.Status == types.BookingCompleted {
			bk.revenue += b.Fare
		}
	}

	out := make([]models.DailyTrend, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format(time.DateOnly)
		trend := models.DailyTrend{Date: day}
		if bk := byDay[day]; bk != nil {
			trend.Count = bk.count
			trend.Revenue = round2(bk.revenue)
		}
		out = append(out, trend)
	}
	return out, nil
}

// DriverPerformance aggregates per-driver booking counts and revenue inside
// the window, sorted by revenue descending.
func (r *AnalyticsRepo) DriverPerformance(ctx context.Context, since time.Time) ([]models.DriverPerformance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byDriver := make(map[int64]*models.DriverPerformance, len(r.s.drivers))
	out := make([]models.DriverPerformance, 0, len(r.s.drivers))
	for _, d := range r.s.drivers {
		byDriver[d.ID] = &models.DriverPerformance{
			DriverID: d.ID,
			Name:     d.Name,
			Status:   d.Status,
		}
	}

	for _, b := range r.s.bookings {
		if b.DriverID == nil || b.CreatedAt.Before(since) {
			continue
		}
		perf, ok := byDriver[*b.DriverID]
		if !ok {
			continue
		}
		perf.TotalBookings++
		if b.Status == types.BookingCompleted {
			perf.CompletedBookings++
			perf.Revenue += b.Fare
		}
	}

	for _, d := range r.s.drivers {
		perf := byDriver[d.ID]
		perf.Revenue = round2(perf.Revenue)
		perf.CompletionRate = rate(perf.CompletedBookings, perf.TotalBookings)
		out = append(out, *perf)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out, nil
}

func (r *AnalyticsRepo) StatusDistribution(ctx context.Context, since time.Time) ([]models.StatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[types.BookingStatus]int)
	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		counts[b.Status]++
	}

	var out []models.StatusCount
	for _, status := range types.BookingStatuses {
		if n := counts[status]; n > 0 {
			out = append(out, models.StatusCount{Status: status, Count: n})
		}
	}
	return out, nil
}

// PeakHours returns all 24 hour-of-day slots with their booking counts.
func (r *AnalyticsRepo) PeakHours(ctx context.Context, since time.Time) ([]models.HourCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.HourCount, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, b := range r.s.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		out[b.CreatedAt.UTC().Hour()].Count++
	}
	return out, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// rate is the whole-percent completion ratio, 0 when nothing was booked.
func rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
