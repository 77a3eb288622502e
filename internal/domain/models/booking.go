package models

import (
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

// Booking is a customer's accepted request for transport. Fare, distance
// and the location labels are fixed at creation and never recomputed.
type Booking struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	Pickup        string              `json:"pickup"`
	Dropoff       string              `json:"dropoff"`
	Fare          float64             `json:"fare"`        // 2 decimal places
	DistanceKm    float64             `json:"distance_km"` // 1 decimal place
	Status        types.BookingStatus `json:"status"`
	DriverID      *int64              `json:"driver_id"`
	DriverName    string              `json:"driver_name,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// BookingRequest carries the validated submission fields.
type BookingRequest struct {
	Pickup        string
	Dropoff       string
	CustomerName  string
	CustomerPhone string
}
