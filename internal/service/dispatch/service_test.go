package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/adapter/memory"
	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/internal/service/dispatch"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
)

func newService(t *testing.T, store *memory.Store, sim dispatch.SimulationParams) *dispatch.Service {
	t.Helper()
	svc := dispatch.New(
		store.Drivers(),
		store.Bookings(),
		store.Missions(),
		dispatch.NewFareEstimator(),
		store.TxManager(),
		sim,
		logger.NewDiscard(),
	)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svc.Stop(ctx)
	})
	return svc
}

func seedDrivers(t *testing.T, store *memory.Store, names ...string) {
	t.Helper()
	for _, name := range names {
		d := &models.Driver{Name: name, Status: types.DriverAvailable}
		if err := store.Drivers().Create(context.Background(), d); err != nil {
			t.Fatalf("seed driver %s: %v", name, err)
		}
	}
}

func request() models.BookingRequest {
	return models.BookingRequest{
		Pickup:        "Downtown",
		Dropoff:       "Airport",
		CustomerName:  "Alice",
		CustomerPhone: "+1-555-0100",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith", "Maria Garcia")
	svc := newService(t, store, dispatch.SimulationParams{})

	booking, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if booking.Status != types.BookingAssigned {
		t.Errorf("booking status = %s, want assigned", booking.Status)
	}
	if booking.DriverID == nil || *booking.DriverID != 1 {
		t.Errorf("driver id = %v, want first driver (1)", booking.DriverID)
	}
	if booking.DriverName != "John Smith" {
		t.Errorf("driver name = %s, want John Smith", booking.DriverName)
	}
	if booking.Fare < 10.00 || booking.Fare > 60.00 {
		t.Errorf("fare %.2f outside tariff range", booking.Fare)
	}

	if mission.Status != types.MissionAssigned {
		t.Errorf("mission status = %s, want assigned", mission.Status)
	}
	if mission.BookingID != booking.ID {
		t.Errorf("mission booking id = %s, want %s", mission.BookingID, booking.ID)
	}
	if mission.StartedAt != nil {
		t.Error("mission started before first transition")
	}

	claimed, err := store.Drivers().Get(ctx, 1)
	if err != nil {
		t.Fatalf("get driver: %v", err)
	}
	if claimed.Status != types.DriverBusy {
		t.Errorf("claimed driver status = %s, want busy", claimed.Status)
	}
}

func TestCreateBooking_Exhaustion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(t, store, dispatch.SimulationParams{})

	_, _, err := svc.CreateBooking(ctx, request())
	if !errors.Is(err, types.ErrNoDriversAvailable) {
		t.Fatalf("got %v, want ErrNoDriversAvailable", err)
	}

	// a failed attempt must leave nothing behind
	if n, _ := store.Bookings().Count(ctx); n != 0 {
		t.Errorf("bookings after failed attempt = %d, want 0", n)
	}
	if n, _ := store.Missions().CountActive(ctx); n != 0 {
		t.Errorf("missions after failed attempt = %d, want 0", n)
	}
}

func TestCreateBooking_ConcurrentSingleDriver(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "Only Driver")
	svc := newService(t, store, dispatch.SimulationParams{})

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.CreateBooking(ctx, request()); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d bookings succeeded with one driver, want exactly 1", succeeded)
	}
	if n, _ := store.Bookings().Count(ctx); n != 1 {
		t.Errorf("bookings = %d, want 1", n)
	}
}

func TestAdvanceMission_FullSequence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith")
	svc := newService(t, store, dispatch.SimulationParams{})

	booking, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	want := []types.MissionStatus{
		types.MissionEnRoutePickup,
		types.MissionArrivedPickup,
		types.MissionPassengerOnboard,
		types.MissionEnRouteDestination,
		types.MissionCompleted,
	}

	for i, status := range want {
		m, err := svc.AdvanceMission(ctx, mission.ID)
		if err != nil {
			t.Fatalf("advance %d: %v", i+1, err)
		}
		if m.Status != status {
			t.Fatalf("transition %d: status = %s, want %s", i+1, m.Status, status)
		}
		if m.StartedAt == nil {
			t.Errorf("transition %d: StartedAt not set", i+1)
		}
	}

	final, err := svc.GetMission(ctx, mission.ID)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if final.CompletedAt == nil {
		t.Error("CompletedAt not set on terminal mission")
	}

	// driver released, booking completed
	driver, _ := store.Drivers().Get(ctx, 1)
	if driver.Status != types.DriverAvailable {
		t.Errorf("driver status = %s, want available", driver.Status)
	}
	b, _ := store.Bookings().Get(ctx, booking.ID)
	if b.Status != types.BookingCompleted {
		t.Errorf("booking status = %s, want completed", b.Status)
	}

	// fare and route fields never change over the lifecycle
	if b.Fare != booking.Fare || b.Pickup != booking.Pickup || b.Dropoff != booking.Dropoff {
		t.Errorf("booking mutated during lifecycle: %+v", b)
	}

	if _, err := svc.AdvanceMission(ctx, mission.ID); !errors.Is(err, types.ErrMissionCompleted) {
		t.Errorf("advance after terminal: got %v, want ErrMissionCompleted", err)
	}
}

func TestAdvanceMission_BookingInProgressAtOnboard(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith")
	svc := newService(t, store, dispatch.SimulationParams{})

	booking, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// two transitions before onboard keep the booking assigned
	for i := 0; i < 2; i++ {
		if _, err := svc.AdvanceMission(ctx, mission.ID); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	b, _ := store.Bookings().Get(ctx, booking.ID)
	if b.Status != types.BookingAssigned {
		t.Errorf("booking status before onboard = %s, want assigned", b.Status)
	}

	if _, err := svc.AdvanceMission(ctx, mission.ID); err != nil {
		t.Fatalf("advance to onboard: %v", err)
	}
	b, _ = store.Bookings().Get(ctx, booking.ID)
	if b.Status != types.BookingInProgress {
		t.Errorf("booking status at onboard = %s, want in_progress", b.Status)
	}
}

func TestStatusCounters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "A", "B", "C")
	svc := newService(t, store, dispatch.SimulationParams{})

	if _, _, err := svc.CreateBooking(ctx, request()); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	_, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// run the second mission to completion
	for {
		m, err := svc.AdvanceMission(ctx, mission.ID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if m.Status.Terminal() {
			break
		}
	}

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	// driver C untouched, driver B released on completion
	if status.AvailableDrivers != 2 {
		t.Errorf("available drivers = %d, want 2", status.AvailableDrivers)
	}
	if status.ActiveMissions != 1 {
		t.Errorf("active missions = %d, want 1", status.ActiveMissions)
	}
	if status.TotalBookings != 2 {
		t.Errorf("total bookings = %d, want 2", status.TotalBookings)
	}
	if status.CompletedMissions != 1 {
		t.Errorf("completed missions = %d, want 1", status.CompletedMissions)
	}
}

func TestSetDriverStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith")
	svc := newService(t, store, dispatch.SimulationParams{})

	d, err := svc.SetDriverStatus(ctx, 1, types.DriverOffline)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if d.Status != types.DriverOffline {
		t.Errorf("status = %s, want offline", d.Status)
	}

	if _, err := svc.SetDriverStatus(ctx, 99, types.DriverAvailable); !errors.Is(err, types.ErrDriverNotFound) {
		t.Errorf("unknown driver: got %v, want ErrDriverNotFound", err)
	}
}

func TestSetDriverStatus_RefusesReleaseMidMission(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith")
	svc := newService(t, store, dispatch.SimulationParams{})

	_, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// the driver is mid-mission: freeing it would let a second booking
	// claim it while the first ride is still running
	if _, err := svc.SetDriverStatus(ctx, 1, types.DriverAvailable); !errors.Is(err, types.ErrDriverOnMission) {
		t.Fatalf("free busy driver: got %v, want ErrDriverOnMission", err)
	}
	d, _ := store.Drivers().Get(ctx, 1)
	if d.Status != types.DriverBusy {
		t.Errorf("driver status after refused release = %s, want busy", d.Status)
	}
	if _, _, err := svc.CreateBooking(ctx, request()); !errors.Is(err, types.ErrNoDriversAvailable) {
		t.Errorf("second booking: got %v, want ErrNoDriversAvailable", err)
	}

	// taking the driver off shift is still allowed
	if _, err := svc.SetDriverStatus(ctx, 1, types.DriverOffline); err != nil {
		t.Fatalf("set offline mid-mission: %v", err)
	}

	for {
		m, err := svc.AdvanceMission(ctx, mission.ID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if m.Status.Terminal() {
			break
		}
	}

	// with the mission terminal the release goes through
	if _, err := svc.SetDriverStatus(ctx, 1, types.DriverAvailable); err != nil {
		t.Fatalf("release after completion: %v", err)
	}
}

func TestSimulation_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("timer-driven")
	}

	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "John Smith")
	svc := newService(t, store, dispatch.SimulationParams{
		Enabled:      true,
		InitialDelay: time.Millisecond,
		MinDelay:     time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
	})

	booking, mission, err := svc.CreateBooking(ctx, request())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		m, err := svc.GetMission(ctx, mission.ID)
		if err != nil {
			t.Fatalf("get mission: %v", err)
		}
		if m.Status == types.MissionCompleted {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("mission stuck at %s", m.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}

	b, _ := store.Bookings().Get(ctx, booking.ID)
	if b.Status != types.BookingCompleted {
		t.Errorf("booking status = %s, want completed", b.Status)
	}
	d, _ := store.Drivers().Get(ctx, 1)
	if d.Status != types.DriverAvailable {
		t.Errorf("driver status = %s, want available", d.Status)
	}
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDrivers(t, store, "A", "B")
	svc := newService(t, store, dispatch.SimulationParams{})

	if _, _, err := svc.CreateBooking(ctx, request()); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	overview, err := svc.GetOverview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.AvailableDrivers) != 1 {
		t.Errorf("available drivers = %d, want 1", len(overview.AvailableDrivers))
	}
	if len(overview.RecentBookings) != 1 {
		t.Errorf("recent bookings = %d, want 1", len(overview.RecentBookings))
	}
}
