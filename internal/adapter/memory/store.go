// Package memory is the non-persistent fallback store. It keeps the same
// records as the postgres adapter in process memory behind the same
// repository contracts, so the lifecycle behaves identically in both modes
// except for durability: everything here is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/pkg/trm"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	drivers      []*models.Driver // registry order by id
	nextDriverID int64

	bookings     map[uuid.UUID]*models.Booking
	bookingOrder []uuid.UUID // insertion order

	missions     map[uuid.UUID]*models.Mission
	missionOrder []uuid.UUID

	users map[uuid.UUID]*models.User

	// txMu serializes logical transactions. The store cannot roll back,
	// but its operations cannot fail mid-flight either: serializing the
	// check-then-act in booking creation is what the contract needs.
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		nextDriverID: 1,
		bookings:     make(map[uuid.UUID]*models.Booking),
		missions:     make(map[uuid.UUID]*models.Mission),
		users:        make(map[uuid.UUID]*models.User),
	}
}

func (s *Store) Drivers() *DriverRepo       { return &DriverRepo{s: s} }
func (s *Store) Bookings() *BookingRepo     { return &BookingRepo{s: s} }
func (s *Store) Missions() *MissionRepo     { return &MissionRepo{s: s} }
func (s *Store) Users() *UserRepo           { return &UserRepo{s: s} }
func (s *Store) Analytics() *AnalyticsRepo  { return &AnalyticsRepo{s: s} }
func (s *Store) TxManager() trm.TxManager   { return &txManager{s: s} }

// txManager serializes Do blocks with a store-wide mutex.
type txManager struct {
	s *Store
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return fn(ctx)
}
