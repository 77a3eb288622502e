package memory

import (
	"context"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
)

type DriverRepo struct {
	s *Store
}

func (r *DriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	driver.ID = r.s.nextDriverID
	r.s.nextDriverID++

	now := time.Now().UTC()
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = now
	}
	driver.UpdatedAt = now

	stored := *driver
	r.s.drivers = append(r.s.drivers, &stored)
	return nil
}

func (r *DriverRepo) List(ctx context.Context) ([]models.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Driver, 0, len(r.s.drivers))
	for _, d := range r.s.drivers {
		out = append(out, *d)
	}
	return out, nil
}

func (r *DriverRepo) Get(ctx context.Context, id int64) (*models.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d := r.s.findDriver(id)
	if d == nil {
		return nil, types.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *DriverRepo) FindAvailable(ctx context.Context) (*models.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.drivers {
		if d.Available() {
			cp := *d
			return &cp, nil
		}
	}
	return nil, types.ErrNoDriversAvailable
}

func (r *DriverRepo) ClaimFirstAvailable(ctx context.Context) (*models.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.drivers {
		if d.Available() {
			d.Status = types.DriverBusy
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, types.ErrNoDriversAvailable
}

func (r *DriverRepo) SetStatus(ctx context.Context, id int64, status types.DriverStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := r.s.findDriver(id)
	if d == nil {
		return types.ErrDriverNotFound
	}
	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *DriverRepo) CountByStatus(ctx context.Context, status types.DriverStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, d := range r.s.drivers {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

// findDriver must be called with the store lock held.
func (s *Store) findDriver(id int64) *models.Driver {
	for _, d := range s.drivers {
		if d.ID == id {
			return d
		}
	}
	return nil
}
