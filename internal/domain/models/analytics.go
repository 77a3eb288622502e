package models

import "github.com/Yun12-yu/smart-taxis/internal/domain/types"

/* ======================= status query ======================= */

// SystemStatus is the public aggregate counter payload.
type SystemStatus struct {
	AvailableDrivers  int `json:"availableDrivers"`
	ActiveMissions    int `json:"activeMissions"`
	TotalBookings     int `json:"totalBookings"`
	CompletedMissions int `json:"completedMissions"`
}

/* ======================= dashboard ======================= */

type BookingStats struct {
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	CompletionRate    int     `json:"completion_rate"` // whole percent
}

type DailyTrend struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DriverPerformance struct {
	DriverID          int64              `json:"id"`
	Name              string             `json:"name"`
	Status            types.DriverStatus `json:"status"`
	TotalBookings     int                `json:"total_bookings"`
	CompletedBookings int                `json:"completed_bookings"`
	Revenue           float64            `json:"revenue"`
	CompletionRate    int                `json:"completion_rate"`
}

type StatusCount struct {
	Status types.BookingStatus `json:"status"`
	Count  int                 `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Dashboard bundles every aggregate the admin dashboard renders.
type Dashboard struct {
	BookingStats       BookingStats        `json:"bookingStats"`
	DailyTrends        []DailyTrend        `json:"dailyTrends"`
	DriverPerformance  []DriverPerformance `json:"driverPerformance"`
	StatusDistribution []StatusCount       `json:"statusDistribution"`
	PeakHours          []HourCount         `json:"peakHours"`
}
