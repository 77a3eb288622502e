package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yun12-yu/smart-taxis/config"
	httpserver "github.com/Yun12-yu/smart-taxis/internal/adapter/http/server"
	"github.com/Yun12-yu/smart-taxis/internal/adapter/memory"
	repo "github.com/Yun12-yu/smart-taxis/internal/adapter/postgres"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/internal/service/analytics"
	"github.com/Yun12-yu/smart-taxis/internal/service/auth"
	"github.com/Yun12-yu/smart-taxis/internal/service/dispatch"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	postgresclient "github.com/Yun12-yu/smart-taxis/pkg/postgres"
	"github.com/Yun12-yu/smart-taxis/pkg/trm"
)

// repos bundles every repository contract behind one storage backend.
type repos struct {
	drivers   dispatch.DriverRepo
	bookings  dispatch.BookingRepo
	missions  dispatch.MissionRepo
	users     auth.UserRepo
	analytics analytics.Repo
	txm       trm.TxManager
}

type App struct {
	postgresDB *postgresclient.PostgreDB // nil when running on the memory store
	storage    types.StorageMode
	dispatch   *dispatch.Service
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log,
	}

	r, err := app.initStorage(ctx)
	if err != nil {
		return nil, err
	}

	// services
	app.dispatch = dispatch.New(
		r.drivers,
		r.bookings,
		r.missions,
		dispatch.NewFareEstimator(),
		r.txm,
		dispatch.SimulationParams{
			Enabled:      cfg.Simulation.Enabled,
			InitialDelay: cfg.Simulation.InitialDelay,
			MinDelay:     cfg.Simulation.MinDelay,
			MaxDelay:     cfg.Simulation.MaxDelay,
		},
		log,
	)
	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authSvc := auth.NewService(r.users, tokenSvc, log)
	analyticsSvc := analytics.New(r.analytics, cfg.Analytics.WindowDays, log)

	if err := app.seed(ctx, r, authSvc); err != nil {
		return nil, fmt.Errorf("failed to seed storage: %w", err)
	}

	server, err := httpserver.New(cfg, app.storage.String(), app.dispatch, analyticsSvc, authSvc, log)
	if err != nil {
		return nil, err
	}
	app.httpServer = server

	return app, nil
}

// initStorage opens the configured backend. In auto mode an unreachable
// database degrades to the in-memory store instead of failing startup.
func (a *App) initStorage(ctx context.Context) (*repos, error) {
	mode := types.StorageMode(a.cfg.Storage.Mode)

	switch mode {
	case types.StoragePostgres:
		return a.openPostgres(ctx)
	case types.StorageMemory:
		return a.openMemory(), nil
	case types.StorageAuto:
		r, err := a.openPostgres(ctx)
		if err != nil {
			a.log.Warn(ctx, "database unreachable, falling back to in-memory store", "error", err.Error())
			return a.openMemory(), nil
		}
		return r, nil
	default:
		return nil, fmt.Errorf("invalid storage mode: %s", a.cfg.Storage.Mode)
	}
}

func (a *App) openPostgres(ctx context.Context) (*repos, error) {
	db, err := postgresclient.New(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := repo.Migrate(ctx, db.Pool); err != nil {
		db.Pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.postgresDB = db
	a.storage = types.StoragePostgres

	return &repos{
		drivers:   repo.NewDriverRepo(db.Pool),
		bookings:  repo.NewBookingRepo(db.Pool),
		missions:  repo.NewMissionRepo(db.Pool),
		users:     repo.NewUserRepo(db.Pool),
		analytics: repo.NewAnalyticsRepo(db.Pool),
		txm:       trm.New(db.Pool),
	}, nil
}

func (a *App) openMemory() *repos {
	store := memory.NewStore()
	a.storage = types.StorageMemory

	return &repos{
		drivers:   store.Drivers(),
		bookings:  store.Bookings(),
		missions:  store.Missions(),
		users:     store.Users(),
		analytics: store.Analytics(),
		txm:       store.TxManager(),
	}
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "application started", "storage", a.storage.String())
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	// let in-flight mission simulations finish their current step
	if err := a.dispatch.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to stop mission simulations", err)
	}

	if a.postgresDB != nil {
		a.postgresDB.Pool.Close()
	}
}
