package models

import (
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
)

type Driver struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Status          types.DriverStatus `json:"status"`
	CurrentLocation string             `json:"current_location"`
	Rating          float64            `json:"rating"` // informational only
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// Available reports whether the driver can be paired with a new mission.
func (d *Driver) Available() bool {
	return d.Status == types.DriverAvailable
}
