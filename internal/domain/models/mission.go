package models

import (
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

// Mission tracks a booking's fulfillment through pickup and drop-off.
// Exactly one mission exists per booking, and its driver reference always
// equals the booking's.
type Mission struct {
	ID          uuid.UUID           `json:"id"`
	BookingID   uuid.UUID           `json:"booking_id"`
	DriverID    int64               `json:"driver_id"`
	DriverName  string              `json:"driver_name,omitempty"`
	Status      types.MissionStatus `json:"status"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
