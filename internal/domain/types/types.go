package types

// DriverStatus describes driver availability.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffline   DriverStatus = "offline"
)

func (s DriverStatus) String() string {
	return string(s)
}

// BookingStatus is the booking's own status, independent of its mission.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAssigned   BookingStatus = "assigned"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// BookingStatuses is the canonical display order for status breakdowns.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingAssigned,
	BookingInProgress,
	BookingCompleted,
	BookingCancelled,
}

func (s BookingStatus) String() string {
	return string(s)
}

// MissionStatus is the operational status of a mission. A mission moves
// strictly forward through MissionSequence until MissionCompleted.
type MissionStatus string

const (
	MissionAssigned           MissionStatus = "assigned"
	MissionEnRoutePickup      MissionStatus = "en_route_pickup"
	MissionArrivedPickup      MissionStatus = "arrived_pickup"
	MissionPassengerOnboard   MissionStatus = "passenger_onboard"
	MissionEnRouteDestination MissionStatus = "en_route_destination"
	MissionCompleted          MissionStatus = "completed"

	// MissionCancelled is reserved for administrative use. The core
	// lifecycle never produces it.
	MissionCancelled MissionStatus = "cancelled"
)

// MissionSequence is the full ordered status progression.
var MissionSequence = []MissionStatus{
	MissionAssigned,
	MissionEnRoutePickup,
	MissionArrivedPickup,
	MissionPassengerOnboard,
	MissionEnRouteDestination,
	MissionCompleted,
}

func (s MissionStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are allowed.
func (s MissionStatus) Terminal() bool {
	return s == MissionCompleted || s == MissionCancelled
}

// Next returns the following status in the sequence. ok is false when the
// status is terminal or unknown.
func (s MissionStatus) Next() (MissionStatus, bool) {
	for i, st := range MissionSequence {
		if st == s && i < len(MissionSequence)-1 {
			return MissionSequence[i+1], true
		}
	}
	return s, false
}

// UserRole for capability checks at administrative entry points.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleDriver UserRole = "driver"
)

func (r UserRole) String() string {
	return string(r)
}

// StorageMode selects the persistence backend at startup.
type StorageMode string

const (
	StorageAuto     StorageMode = "auto"
	StoragePostgres StorageMode = "postgres"
	StorageMemory   StorageMode = "memory"
)

func (m StorageMode) String() string {
	return string(m)
}
