package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{
		db: db,
	}
}

// driver_name is denormalized onto the booking row so the booking payload
// survives driver deletion intact.
const bookingColumns = `id, customer_name, customer_phone, pickup, dropoff, fare,
		distance_km, status, driver_id, driver_name, created_at, updated_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.Pickup,
		&b.Dropoff,
		&b.Fare,
		&b.DistanceKm,
		&b.Status,
		&b.DriverID,
		&b.DriverName,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	const op = "BookingRepo.Create"
	query := `
		INSERT INTO bookings(id, customer_name, customer_phone, pickup, dropoff,
			fare, distance_km, status, driver_id, driver_name, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := TxorDB(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.Pickup,
		booking.Dropoff,
		booking.Fare,
		booking.DistanceKm,
		booking.Status,
		booking.DriverID,
		booking.DriverName,
		booking.CreatedAt,
		booking.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}

	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	const op = "BookingRepo.Get"
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	b, err := scanBooking(TxorDB(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrBookingNotFound
		}
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return b, nil
}

func (r *BookingRepo) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	const op = "BookingRepo.Recent"
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", op, err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", op, err)
	}

	return bookings, nil
}

func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	const op = "BookingRepo.Count"

	var n int
	if err := TxorDB(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %v", op, err)
	}

	return n, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error {
	const op = "BookingRepo.UpdateStatus"
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %v", op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrBookingNotFound
	}

	return nil
}
