package dispatch

import (
	"context"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

// DriverRepo is the driver registry contract. Both the postgres and the
// in-memory store implement it.
type DriverRepo interface {
	List(ctx context.Context) ([]models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)

	// FindAvailable returns the first driver in registry order whose
	// status is available, or types.ErrNoDriversAvailable.
	FindAvailable(ctx context.Context) (*models.Driver, error)

	// ClaimFirstAvailable atomically finds the first available driver and
	// marks it busy. The find and the mark are one unit with respect to
	// concurrent booking attempts.
	ClaimFirstAvailable(ctx context.Context) (*models.Driver, error)

	// SetStatus updates a driver's availability. Unknown id yields
	// types.ErrDriverNotFound.
	SetStatus(ctx context.Context, id int64, status types.DriverStatus) error

	CountByStatus(ctx context.Context, status types.DriverStatus) (int, error)
	Create(ctx context.Context, driver *models.Driver) error
}

type BookingRepo interface {
	Create(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Recent(ctx context.Context, limit int) ([]models.Booking, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error
}

type MissionRepo interface {
	Create(ctx context.Context, mission *models.Mission) error
	Get(ctx context.Context, id uuid.UUID) (*models.Mission, error)
	Update(ctx context.Context, mission *models.Mission) error
	ListActive(ctx context.Context) ([]models.Mission, error)
	ListCompleted(ctx context.Context, limit int) ([]models.Mission, error)
	CountActive(ctx context.Context) (int, error)
	CountActiveForDriver(ctx context.Context, driverID int64) (int, error)
	CountCompleted(ctx context.Context) (int, error)
}
