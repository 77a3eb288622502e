package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepo computes the dashboard aggregates with GROUP BY queries
// instead of loading bookings into memory.
type AnalyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepo(db *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{
		db: db,
	}
}

func (r *AnalyticsRepo) BookingStats(ctx context.Context, since time.Time) (*models.BookingStats, error) {
	const op = "AnalyticsRepo.BookingStats"
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COALESCE(ROUND(SUM(fare) FILTER (WHERE status = $2), 2), 0)
		FROM bookings
		WHERE created_at >= $1`

	stats := &models.BookingStats{}
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, since, types.BookingCompleted, types.BookingCancelled).Scan(
		&stats.TotalBookings,
		&stats.CompletedBookings,
		&stats.CancelledBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	if stats.TotalBookings > 0 {
		stats.CompletionRate = int(float64(stats.CompletedBookings)/float64(stats.TotalBookings)*100 + 0.5)
	}

	return stats, nil
}

// DailyTrends returns one row per calendar day for the last days days,
// oldest first. generate_series fills the days without bookings.
func (r *AnalyticsRepo) DailyTrends(ctx context.Context, days int) ([]models.DailyTrend, error) {
	const op = "AnalyticsRepo.DailyTrends"
	query := `
		SELECT
			to_char(day, 'YYYY-MM-DD'),
			COALESCE(COUNT(b.id), 0),
			COALESCE(ROUND(SUM(b.fare) FILTER (WHERE b.status = $2), 2), 0)
		FROM generate_series(
			(now() AT TIME ZONE 'UTC')::date - ($1::int - 1),
			(now() AT TIME ZONE 'UTC')::date,
			'1 day'
		) AS day
		LEFT JOIN bookings b ON (b.created_at AT TIME ZONE 'UTC')::date = day
		GROUP BY day
		ORDER BY day`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, days, types.BookingCompleted)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var trends []models.DailyTrend
	for rows.Next() {
		var t models.DailyTrend
		if err := rows.Scan(&t.Date, &t.Count, &t.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return trends, nil
}

func (r *AnalyticsRepo) DriverPerformance(ctx context.Context, since time.Time) ([]models.DriverPerformance, error) {
	const op = "AnalyticsRepo.DriverPerformance"
	query := `
		SELECT
			d.id,
			d.name,
			d.status,
			COUNT(b.id),
			COUNT(b.id) FILTER (WHERE b.status = $2),
			COALESCE(ROUND(SUM(b.fare) FILTER (WHERE b.status = $2), 2), 0)
		FROM drivers d
		LEFT JOIN bookings b ON b.driver_id = d.id AND b.created_at >= $1
		GROUP BY d.id, d.name, d.status
		ORDER BY 6 DESC, d.id`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, since, types.BookingCompleted)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var perf []models.DriverPerformance
	for rows.Next() {
		var p models.DriverPerformance
		if err := rows.Scan(&p.DriverID, &p.Name, &p.Status, &p.TotalBookings, &p.CompletedBookings, &p.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		if p.TotalBookings > 0 {
			p.CompletionRate = int(float64(p.CompletedBookings)/float64(p.TotalBookings)*100 + 0.5)
		}
		perf = append(perf, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return perf, nil
}

// StatusDistribution returns the booking status histogram in the canonical
// status order, matching the in-memory adapter.
func (r *AnalyticsRepo) StatusDistribution(ctx context.Context, since time.Time) ([]models.StatusCount, error) {
	const op = "AnalyticsRepo.StatusDistribution"
	query := `
		SELECT status, COUNT(*)
		FROM bookings
		WHERE created_at >= $1
		GROUP BY status
		ORDER BY array_position($2::text[], status)`

	order := make([]string, len(types.BookingStatuses))
	for i, s := range types.BookingStatuses {
		order[i] = s.String()
	}

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, since, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return counts, nil
}

// PeakHours returns all 24 hour-of-day slots with their booking counts.
func (r *AnalyticsRepo) PeakHours(ctx context.Context, since time.Time) ([]models.HourCount, error) {
	const op = "AnalyticsRepo.PeakHours"
	query := `
		SELECT
			hour,
			COALESCE(COUNT(b.id), 0)
		FROM generate_series(0, 23) AS hour
		LEFT JOIN bookings b
			ON EXTRACT(HOUR FROM b.created_at AT TIME ZONE 'UTC') = hour
			AND b.created_at >= $1
		GROUP BY hour
		ORDER BY hour`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	hours := make([]models.HourCount, 0, 24)
	for rows.Next() {
		var h models.HourCount
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return hours, nil
}
