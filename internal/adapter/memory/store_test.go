package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

func seedDrivers(t *testing.T, s *Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		d := &models.Driver{
			Name:   "Driver " + string(rune('A'+i)),
			Status: types.DriverAvailable,
		}
		if err := s.Drivers().Create(context.Background(), d); err != nil {
			t.Fatalf("seed driver: %v", err)
		}
	}
}

func TestDriverRepo_ClaimFirstAvailable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedDrivers(t, s, 3)

	if err := s.Drivers().SetStatus(ctx, 1, types.DriverOffline); err != nil {
		t.Fatalf("set status: %v", err)
	}

	d, err := s.Drivers().ClaimFirstAvailable(ctx)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if d.ID != 2 {
		t.Errorf("claimed driver %d, want first available (2)", d.ID)
	}
	if d.Status != types.DriverBusy {
		t.Errorf("claimed driver status = %s, want busy", d.Status)
	}

	stored, err := s.Drivers().Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != types.DriverBusy {
		t.Errorf("stored status = %s, want busy", stored.Status)
	}
}

func TestDriverRepo_ClaimExhaustion(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedDrivers(t, s, 1)

	if _, err := s.Drivers().ClaimFirstAvailable(ctx); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := s.Drivers().ClaimFirstAvailable(ctx)
	if !errors.Is(err, types.ErrNoDriversAvailable) {
		t.Errorf("got %v, want ErrNoDriversAvailable", err)
	}
}

func TestDriverRepo_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedDrivers(t, s, 1)

	const attempts = 20
	var wg sync.WaitGroup
	claims := make(chan int64, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d, err := s.Drivers().ClaimFirstAvailable(ctx); err == nil {
				claims <- d.ID
			}
		}()
	}
	wg.Wait()
	close(claims)

	var won []int64
	for id := range claims {
		won = append(won, id)
	}
	if len(won) != 1 {
		t.Errorf("driver claimed %d times, want exactly once", len(won))
	}
}

func TestDriverRepo_SetStatusUnknown(t *testing.T) {
	s := NewStore()
	err := s.Drivers().SetStatus(context.Background(), 42, types.DriverAvailable)
	if !errors.Is(err, types.ErrDriverNotFound) {
		t.Errorf("got %v, want ErrDriverNotFound", err)
	}
}

func TestBookingRepo_RecentOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		b := &models.Booking{
			ID:        uuid.New(),
			Status:    types.BookingAssigned,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Bookings().Create(ctx, b); err != nil {
			t.Fatalf("create booking: %v", err)
		}
		ids = append(ids, b.ID)
	}

	recent, err := s.Bookings().Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("got %d bookings, want 5", len(recent))
	}
	for i := range recent {
		want := ids[len(ids)-1-i]
		if recent[i].ID != want {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, want)
		}
	}
}

func TestBookingRepo_GetCopyIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := &models.Booking{ID: uuid.New(), Status: types.BookingAssigned, Fare: 31.50}
	if err := s.Bookings().Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Bookings().Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Fare = 0
	got.Status = types.BookingCancelled

	again, err := s.Bookings().Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Fare != 31.50 || again.Status != types.BookingAssigned {
		t.Errorf("stored booking mutated through a returned copy: %+v", again)
	}
}

func TestMissionRepo_ActiveCompletedSplit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	mkMission := func(status types.MissionStatus) uuid.UUID {
		m := &models.Mission{ID: uuid.New(), BookingID: uuid.New(), DriverID: 1, Status: status}
		if err := s.Missions().Create(ctx, m); err != nil {
			t.Fatalf("create mission: %v", err)
		}
		return m.ID
	}

	mkMission(types.MissionAssigned)
	mkMission(types.MissionEnRouteDestination)
	done := mkMission(types.MissionCompleted)

	active, err := s.Missions().ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active missions, want 2", len(active))
	}

	completed, err := s.Missions().ListCompleted(ctx, 10)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != done {
		t.Errorf("completed = %+v, want single mission %s", completed, done)
	}

	nActive, _ := s.Missions().CountActive(ctx)
	nDone, _ := s.Missions().CountCompleted(ctx)
	if nActive != 2 || nDone != 1 {
		t.Errorf("counts = (%d active, %d completed), want (2, 1)", nActive, nDone)
	}
}

func TestUserRepo_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	u := &models.User{ID: uuid.New(), Username: "dispatch", Email: "dispatch@example.com", Role: types.RoleAdmin}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &models.User{ID: uuid.New(), Username: "dispatch", Email: "other@example.com"}
	if err := s.Users().Create(ctx, dup); !errors.Is(err, types.ErrUserExists) {
		t.Errorf("duplicate username: got %v, want ErrUserExists", err)
	}

	dup = &models.User{ID: uuid.New(), Username: "other", Email: "dispatch@example.com"}
	if err := s.Users().Create(ctx, dup); !errors.Is(err, types.ErrUserExists) {
		t.Errorf("duplicate email: got %v, want ErrUserExists", err)
	}
}

func TestUserRepo_GetByLogin(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	u := &models.User{ID: uuid.New(), Username: "ops", Email: "ops@example.com", Role: types.RoleAdmin}
	u.SetPasswordHash("hash")
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, login := range []string{"ops", "ops@example.com"} {
		got, err := s.Users().GetByLogin(ctx, login)
		if err != nil {
			t.Fatalf("get by %q: %v", login, err)
		}
		if got.ID != u.ID {
			t.Errorf("get by %q returned user %s, want %s", login, got.ID, u.ID)
		}
		if got.PasswordHash() != "hash" {
			t.Errorf("password hash lost on copy for login %q", login)
		}
	}

	if _, err := s.Users().GetByLogin(ctx, "nobody"); !errors.Is(err, types.ErrUserNotFound) {
		t.Errorf("unknown login: got %v, want ErrUserNotFound", err)
	}
}

func TestAnalyticsRepo_BookingStats(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()

	add := func(status types.BookingStatus, fare float64, age time.Duration) {
		b := &models.Booking{ID: uuid.New(), Status: status, Fare: fare, CreatedAt: now.Add(-age)}
		if err := s.Bookings().Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	add(types.BookingCompleted, 20.00, time.Hour)
	add(types.BookingCompleted, 30.00, 2*time.Hour)
	add(types.BookingCancelled, 15.00, time.Hour)
	add(types.BookingAssigned, 10.00, time.Hour)
	add(types.BookingCompleted, 99.00, 48*time.Hour) // outside window

	stats, err := s.Analytics().BookingStats(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("booking stats: %v", err)
	}
	if stats.TotalBookings != 4 {
		t.Errorf("total = %d, want 4", stats.TotalBookings)
	}
	if stats.CompletedBookings != 2 {
		t.Errorf("completed = %d, want 2", stats.CompletedBookings)
	}
	if stats.CancelledBookings != 1 {
		t.Errorf("cancelled = %d, want 1", stats.CancelledBookings)
	}
	if stats.TotalRevenue != 50.00 {
		t.Errorf("revenue = %.2f, want 50.00", stats.TotalRevenue)
	}
	if stats.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", stats.CompletionRate)
	}
}

func TestAnalyticsRepo_DailyTrendsZeroFilled(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	trends, err := s.Analytics().DailyTrends(ctx, 7)
	if err != nil {
		t.Fatalf("daily trends: %v", err)
	}
	if len(trends) != 7 {
		t.Fatalf("got %d days, want 7", len(trends))
	}
	today := time.Now().UTC().Format(time.DateOnly)
	if trends[6].Date != today {
		t.Errorf("last day = %s, want %s", trends[6].Date, today)
	}
	for _, tr := range trends {
		if tr.Count != 0 || tr.Revenue != 0 {
			t.Errorf("empty store produced non-zero trend: %+v", tr)
		}
	}
}

func TestAnalyticsRepo_DriverPerformanceOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedDrivers(t, s, 2)
	now := time.Now().UTC()

	book := func(driverID int64, fare float64, status types.BookingStatus) {
		b := &models.Booking{ID: uuid.New(), DriverID: &driverID, Fare: fare, Status: status, CreatedAt: now}
		if err := s.Bookings().Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	book(1, 10.00, types.BookingCompleted)
	book(2, 40.00, types.BookingCompleted)
	book(2, 5.00, types.BookingCancelled)

	perf, err := s.Analytics().DriverPerformance(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("driver performance: %v", err)
	}
	if len(perf) != 2 {
		t.Fatalf("got %d rows, want 2", len(perf))
	}
	if perf[0].DriverID != 2 {
		t.Errorf("top earner = driver %d, want 2", perf[0].DriverID)
	}
	if perf[0].Revenue != 40.00 {
		t.Errorf("top revenue = %.2f, want 40.00", perf[0].Revenue)
	}
	if perf[0].CompletionRate != 50 {
		t.Errorf("driver 2 completion rate = %d, want 50", perf[0].CompletionRate)
	}
}

func TestAnalyticsRepo_StatusDistributionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()

	add := func(status types.BookingStatus, n int) {
		for i := 0; i < n; i++ {
			b := &models.Booking{ID: uuid.New(), Status: status, CreatedAt: now}
			if err := s.Bookings().Create(ctx, b); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
	}

	// counts deliberately reversed relative to the canonical status order
	add(types.BookingAssigned, 1)
	add(types.BookingInProgress, 2)
	add(types.BookingCompleted, 3)

	counts, err := s.Analytics().StatusDistribution(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("status distribution: %v", err)
	}

	// canonical status order, zero statuses omitted
	want := []models.StatusCount{
		{Status: types.BookingAssigned, Count: 1},
		{Status: types.BookingInProgress, Count: 2},
		{Status: types.BookingCompleted, Count: 3},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d rows, want %d", len(counts), len(want))
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, counts[i], w)
		}
	}
}

func TestAnalyticsRepo_PeakHoursAllSlots(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	hours, err := s.Analytics().PeakHours(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("peak hours: %v", err)
	}
	if len(hours) != 24 {
		t.Fatalf("got %d slots, want 24", len(hours))
	}
	for i, h := range hours {
		if h.Hour != i {
			t.Errorf("slot %d labelled hour %d", i, h.Hour)
		}
	}
}
