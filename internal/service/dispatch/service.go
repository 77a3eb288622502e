package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/Yun12-yu/smart-taxis/pkg/metrics"
	"github.com/Yun12-yu/smart-taxis/pkg/trm"
	"github.com/google/uuid"
)

// Service is the booking/mission lifecycle: it pairs a validated booking
// request with the first available driver, creates the dependent mission
// and drives it through its status sequence until the driver is released.
type Service struct {
	drivers   DriverRepo
	bookings  BookingRepo
	missions  MissionRepo
	estimator *FareEstimator
	trm       trm.TxManager
	sim       SimulationParams
	log       logger.Logger

	wg   sync.WaitGroup
	quit chan struct{}
}

func New(
	drivers DriverRepo,
	bookings BookingRepo,
	missions MissionRepo,
	estimator *FareEstimator,
	txm trm.TxManager,
	sim SimulationParams,
	log logger.Logger,
) *Service {
	return &Service{
		drivers:   drivers,
		bookings:  bookings,
		missions:  missions,
		estimator: estimator,
		trm:       txm,
		sim:       sim,
		log:       log,
		quit:      make(chan struct{}),
	}
}

// CreateBooking runs the booking creation algorithm: estimate the fare,
// claim a driver, write the booking and its mission as one transaction, then
// kick off the progress simulation. When no driver is available the whole
// operation is a no-op and types.ErrNoDriversAvailable is returned so the
// caller can retry later.
func (s *Service) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.Mission, error) {
	ctx = wrap.WithAction(ctx, "create_booking")

	fare, distance := s.estimator.Estimate(req.Pickup, req.Dropoff)

	var (
		booking *models.Booking
		mission *models.Mission
	)

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		driver, err := s.drivers.ClaimFirstAvailable(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		booking = &models.Booking{
			ID:            uuid.New(),
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Pickup:        req.Pickup,
			Dropoff:       req.Dropoff,
			Fare:          fare,
			DistanceKm:    distance,
			Status:        types.BookingAssigned,
			DriverID:      &driver.ID,
			DriverName:    driver.Name,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.bookings.Create(ctx, booking); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not create booking: %w", err))
		}

		mission = &models.Mission{
			ID:         uuid.New(),
			BookingID:  booking.ID,
			DriverID:   driver.ID,
			DriverName: driver.Name,
			Status:     types.MissionAssigned,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.missions.Create(ctx, mission); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not create mission: %w", err))
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	ctx = wrap.WithBookingID(ctx, booking.ID.String())
	s.log.Info(ctx, "booking created",
		"mission_id", mission.ID.String(),
		"driver_id", mission.DriverID,
		"fare", booking.Fare,
		"distance_km", booking.DistanceKm,
	)

	metrics.RecordBooking("created")
	metrics.ActiveMissionsGauge.Inc()

	if s.sim.Enabled {
		s.startSimulation(mission.ID)
	}

	return booking, mission, nil
}

// GetMission looks up a single mission by id.
func (s *Service) GetMission(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	return s.missions.Get(ctx, id)
}

// GetBooking looks up a single booking by id.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.bookings.Get(ctx, id)
}

// MissionsOverview holds the active missions plus the most recently
// completed ones, for the administrative mission list.
type MissionsOverview struct {
	Active    []models.Mission `json:"active"`
	Completed []models.Mission `json:"completed"`
}

const completedMissionsLimit = 10

func (s *Service) ListMissions(ctx context.Context) (*MissionsOverview, error) {
	active, err := s.missions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.missions.ListCompleted(ctx, completedMissionsLimit)
	if err != nil {
		return nil, err
	}
	return &MissionsOverview{Active: active, Completed: completed}, nil
}

// ListDrivers returns the whole registry in stable order.
func (s *Service) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.drivers.List(ctx)
}

// SetDriverStatus is the administrative availability mutation. It refuses
// to free a driver that is paired with a non-terminal mission: only the
// mission's own terminal transition may release the driver, otherwise the
// next booking could claim it mid-ride.
func (s *Service) SetDriverStatus(ctx context.Context, id int64, status types.DriverStatus) (*models.Driver, error) {
	ctx = wrap.WithAction(ctx, "set_driver_status")

	var driver *models.Driver
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if status == types.DriverAvailable {
			active, err := s.missions.CountActiveForDriver(ctx, id)
			if err != nil {
				return wrap.Error(ctx, fmt.Errorf("could not check driver missions: %w", err))
			}
			if active > 0 {
				return types.ErrDriverOnMission
			}
		}
		if err := s.drivers.SetStatus(ctx, id, status); err != nil {
			return err
		}
		var err error
		driver, err = s.drivers.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "driver status updated", "driver_id", id, "status", status.String())
	return driver, nil
}

// Status returns the public aggregate counters.
func (s *Service) Status(ctx context.Context) (*models.SystemStatus, error) {
	available, err := s.drivers.CountByStatus(ctx, types.DriverAvailable)
	if err != nil {
		return nil, err
	}
	active, err := s.missions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.missions.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}

	metrics.AvailableDriversGauge.Set(float64(available))

	return &models.SystemStatus{
		AvailableDrivers:  available,
		ActiveMissions:    active,
		TotalBookings:     total,
		CompletedMissions: completed,
	}, nil
}

// Overview is the landing page payload: who is free, what was booked last.
type Overview struct {
	AvailableDrivers []models.Driver  `json:"available_drivers"`
	RecentBookings   []models.Booking `json:"recent_bookings"`
}

const recentBookingsLimit = 5

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.Available() {
			available = append(available, d)
		}
	}

	recent, err := s.bookings.Recent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{AvailableDrivers: available, RecentBookings: recent}, nil
}

// Stop signals all simulation goroutines to finish and waits for them,
// bounded by the context deadline.
func (s *Service) Stop(ctx context.Context) error {
	close(s.quit)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
