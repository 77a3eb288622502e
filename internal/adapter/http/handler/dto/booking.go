package dto

import (
	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/validator"
)

// CreateBookingRequest mirrors the public booking form.
type CreateBookingRequest struct {
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
}

func (r *CreateBookingRequest) ToModel() models.BookingRequest {
	return models.BookingRequest{
		Pickup:        r.Pickup,
		Dropoff:       r.Destination,
		CustomerName:  r.Name,
		CustomerPhone: r.Phone,
	}
}

func ValidateCreateBooking(v *validator.Validator, r *CreateBookingRequest) {
	v.Check(validator.NotBlank(r.Pickup), "pickup", "must be provided")
	v.Check(validator.MaxChars(r.Pickup, 200), "pickup", "must not be more than 200 characters")
	v.Check(validator.NotBlank(r.Destination), "destination", "must be provided")
	v.Check(validator.MaxChars(r.Destination, 200), "destination", "must not be more than 200 characters")
	v.Check(validator.NotBlank(r.Name), "name", "must be provided")
	v.Check(validator.MaxChars(r.Name, 100), "name", "must not be more than 100 characters")
	v.Check(validator.NotBlank(r.Phone), "phone", "must be provided")
	v.Check(validator.MaxChars(r.Phone, 30), "phone", "must not be more than 30 characters")
}

// DriverStatusRequest is the administrative availability mutation body.
type DriverStatusRequest struct {
	Status string `json:"status"`
}

func ValidateDriverStatus(v *validator.Validator, r *DriverStatusRequest) {
	v.Check(validator.NotBlank(r.Status), "status", "must be provided")
	v.Check(validator.In(types.DriverStatus(r.Status),
		types.DriverAvailable, types.DriverBusy, types.DriverOffline),
		"status", "must be one of: available, busy, offline")
}
