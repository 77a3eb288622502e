package memory

import (
	"context"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

type MissionRepo struct {
	s *Store
}

func (r *MissionRepo) Create(ctx context.Context, mission *models.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *mission
	r.s.missions[mission.ID] = &stored
	r.s.missionOrder = append(r.s.missionOrder, mission.ID)
	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.missions[id]
	if !ok {
		return nil, types.ErrMissionNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MissionRepo) Update(ctx context.Context, mission *models.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.missions[mission.ID]; !ok {
		return types.ErrMissionNotFound
	}
	stored := *mission
	r.s.missions[mission.ID] = &stored
	return nil
}

func (r *MissionRepo) ListActive(ctx context.Context) ([]models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Mission
	for _, id := range r.s.missionOrder {
		m := r.s.missions[id]
		if !m.Status.Terminal() {
			out = append(out, *m)
		}
	}
	return out, nil
}

// ListCompleted returns the most recently completed missions first.
func (r *MissionRepo) ListCompleted(ctx context.Context, limit int) ([]models.Mission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Mission, 0, limit)
	for i := len(r.s.missionOrder) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.s.missions[r.s.missionOrder[i]]
		if m.Status.Terminal() {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *MissionRepo) CountActive(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, m := range r.s.missions {
		if !m.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

// CountActiveForDriver reports how many non-terminal missions reference the
// driver. At most one when the lifecycle invariants hold.
func (r *MissionRepo) CountActiveForDriver(ctx context.Context, driverID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, m := range r.s.missions {
		if m.DriverID == driverID && !m.Status.Terminal() {
			n++
		}
	}
	return n, nil
}

func (r *MissionRepo) CountCompleted(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, m := range r.s.missions {
		if m.Status == types.MissionCompleted {
			n++
		}
	}
	return n, nil
}
