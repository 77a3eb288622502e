package server

import (
	"net/http"

	"github.com/Yun12-yu/smart-taxis/internal/adapter/http/middleware"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	// System health and metrics
	mux.HandleFunc("GET /health", routes.health.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public booking flow
	mux.HandleFunc("POST /api/bookings", routes.booking.Create)         // Submit a booking request
	mux.HandleFunc("GET /api/bookings/{id}", routes.booking.Get)        // Booking details
	mux.HandleFunc("GET /api/missions/{id}", routes.mission.Get)        // Mission progress (polled)
	mux.HandleFunc("GET /api/status", routes.booking.Status)            // Aggregate counters
	mux.HandleFunc("GET /api/overview", routes.booking.Overview)        // Landing page payload

	// Auth
	mux.HandleFunc("POST /api/auth/register", routes.auth.Register)
	mux.HandleFunc("POST /api/auth/login", routes.auth.Login)
	mux.Handle("GET /api/auth/me", m.RequireRoles(routes.auth.Profile)) // any authenticated user

	// Administrative
	mux.Handle("GET /api/missions", m.RequireRoles(routes.mission.List, types.RoleAdmin))
	mux.Handle("GET /api/drivers", m.RequireRoles(routes.driver.List, types.RoleAdmin))
	mux.Handle("PATCH /api/drivers/{id}/status", m.RequireRoles(routes.driver.SetStatus, types.RoleAdmin))
	mux.Handle("GET /api/admin/dashboard", m.RequireRoles(routes.admin.Dashboard, types.RoleAdmin))
}
