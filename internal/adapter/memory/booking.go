package memory

import (
	"context"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

type BookingRepo struct {
	s *Store
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *booking
	r.s.bookings[booking.ID] = &stored
	r.s.bookingOrder = append(r.s.bookingOrder, booking.ID)
	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, types.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

// Recent returns the newest bookings first, at most limit of them.
func (r *BookingRepo) Recent(ctx context.Context, limit int) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Booking, 0, limit)
	for i := len(r.s.bookingOrder) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.s.bookings[r.s.bookingOrder[i]])
	}
	return out, nil
}

func (r *BookingRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.bookings), nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status types.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return types.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}
