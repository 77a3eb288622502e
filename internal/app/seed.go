package app

import (
	"context"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/internal/service/auth"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
)

// defaultDrivers is the demo fleet, created once when the registry is empty.
var defaultDrivers = []models.Driver{
	{Name: "John Smith", Phone: "+1-555-0101", CurrentLocation: "Downtown", Rating: 4.8},
	{Name: "Maria Garcia", Phone: "+1-555-0102", CurrentLocation: "Airport", Rating: 4.9},
	{Name: "Ahmed Hassan", Phone: "+1-555-0103", CurrentLocation: "Mall", Rating: 4.7},
	{Name: "Lisa Chen", Phone: "+1-555-0104", CurrentLocation: "University", Rating: 4.6},
	{Name: "David Wilson", Phone: "+1-555-0105", CurrentLocation: "Hospital", Rating: 4.8},
}

// seed bootstraps the admin account and, when enabled and the registry is
// empty, the demo driver fleet.
func (a *App) seed(ctx context.Context, r *repos, authSvc *auth.Service) error {
	ctx = wrap.WithAction(ctx, "seed")

	if err := authSvc.EnsureAdmin(ctx,
		a.cfg.Auth.AdminUsername,
		a.cfg.Auth.AdminEmail,
		a.cfg.Auth.AdminPassword,
	); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	if !a.cfg.Seed {
		return nil
	}

	existing, err := r.drivers.List(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, d := range defaultDrivers {
		driver := d
		driver.Status = types.DriverAvailable
		if err := r.drivers.Create(ctx, &driver); err != nil {
			return fmt.Errorf("create driver %s: %w", driver.Name, err)
		}
	}

	a.log.Info(ctx, "seeded demo drivers", "count", len(defaultDrivers))
	return nil
}
