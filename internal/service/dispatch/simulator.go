package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/Yun12-yu/smart-taxis/pkg/metrics"
	"github.com/google/uuid"
)

// SimulationParams tunes the per-mission progress timers.
type SimulationParams struct {
	Enabled      bool
	InitialDelay time.Duration
	MinDelay     time.Duration
	MaxDelay     time.Duration
}

// AdvanceMission performs exactly one forward status transition as a single
// transaction. On the terminal transition it also completes the booking and
// releases the paired driver. Advancing a terminal mission returns
// types.ErrMissionCompleted.
func (s *Service) AdvanceMission(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	ctx = wrap.WithAction(ctx, "advance_mission")

	var advanced *models.Mission

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		mission, err := s.missions.Get(ctx, id)
		if err != nil {
			return err
		}

		if mission.Status.Terminal() {
			return types.ErrMissionCompleted
		}

		next, ok := mission.Status.Next()
		if !ok {
			return types.ErrMissionCompleted
		}

		now := time.Now().UTC()
		if mission.StartedAt == nil {
			mission.StartedAt = &now
		}
		mission.Status = next
		mission.UpdatedAt = now
		if next == types.MissionCompleted {
			mission.CompletedAt = &now
		}

		if err := s.missions.Update(ctx, mission); err != nil {
			return wrap.Error(ctx, fmt.Errorf("could not update mission: %w", err))
		}

		switch next {
		case types.MissionPassengerOnboard:
			if err := s.bookings.UpdateStatus(ctx, mission.BookingID, types.BookingInProgress); err != nil {
				return wrap.Error(ctx, fmt.Errorf("could not update booking status: %w", err))
			}
		case types.MissionCompleted:
			if err := s.bookings.UpdateStatus(ctx, mission.BookingID, types.BookingCompleted); err != nil {
				return wrap.Error(ctx, fmt.Errorf("could not complete booking: %w", err))
			}
			if err := s.drivers.SetStatus(ctx, mission.DriverID, types.DriverAvailable); err != nil {
				return wrap.Error(ctx, fmt.Errorf("could not release driver: %w", err))
			}
		}

		advanced = mission
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMissionTransition(advanced.Status.String())

	ctx = wrap.WithBookingID(ctx, advanced.BookingID.String())
	s.log.Debug(ctx, "mission status updated",
		"mission_id", advanced.ID.String(),
		"status", advanced.Status.String(),
	)

	if advanced.Status == types.MissionCompleted {
		metrics.ActiveMissionsGauge.Dec()
		s.log.Info(ctx, "mission completed, driver released",
			"mission_id", advanced.ID.String(),
			"driver_id", advanced.DriverID,
		)
	}

	return advanced, nil
}

// startSimulation spawns the fire-and-forget timer chain for one mission.
func (s *Service) startSimulation(missionID uuid.UUID) {
	s.wg.Add(1)
	go s.runMission(missionID)
}

// runMission advances the mission through its status sequence with a fixed
// initial delay and a fresh random delay before each transition, until the
// mission is terminal or the service is stopped.
func (s *Service) runMission(missionID uuid.UUID) {
	defer s.wg.Done()

	ctx := wrap.WithAction(context.Background(), "mission_simulation")

	if !s.pause(s.sim.InitialDelay) {
		return
	}

	for {
		if !s.pause(s.transitionDelay()) {
			return
		}

		mission, err := s.AdvanceMission(ctx, missionID)
		if err != nil {
			if !errors.Is(err, types.ErrMissionCompleted) {
				s.log.Error(wrap.ErrorCtx(ctx, err), "mission simulation aborted", err,
					"mission_id", missionID.String(),
				)
			}
			return
		}

		if mission.Status.Terminal() {
			return
		}
	}
}

// transitionDelay draws a fresh delay uniformly from [MinDelay, MaxDelay].
func (s *Service) transitionDelay() time.Duration {
	span := s.sim.MaxDelay - s.sim.MinDelay
	if span <= 0 {
		return s.sim.MinDelay
	}
	return s.sim.MinDelay + rand.N(span)
}

// pause sleeps for d, returning false if the service is stopping.
func (s *Service) pause(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.quit:
		return false
	}
}
