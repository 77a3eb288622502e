package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Yun12-yu/smart-taxis/config"
	"github.com/Yun12-yu/smart-taxis/internal/adapter/http/handler"
	"github.com/Yun12-yu/smart-taxis/internal/adapter/http/middleware"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
)

const serviceName = "smart-taxis"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	log  logger.Logger
}

type handlers struct {
	booking *handler.Booking
	mission *handler.Mission
	driver  *handler.Driver
	admin   *handler.Admin
	auth    *handler.Auth
	health  *handler.Health
}

func New(
	cfg config.Config,
	storageMode string,
	dispatchService handler.DispatchService,
	analyticsService handler.AnalyticsService,
	authService handler.AuthService,
	log logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}

	routes := &handlers{
		booking: handler.NewBooking(dispatchService, log),
		mission: handler.NewMission(dispatchService, log),
		driver:  handler.NewDriver(dispatchService, log),
		admin:   handler.NewAdmin(analyticsService, log),
		auth:    handler.NewAuth(authService, log),
		health:  handler.NewHealth(serviceName, storageMode, log),
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(authService, log),
		addr:   fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		log:    log,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	setupRoutes(api.mux, api.routes, api.m)

	return api, nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

// Handler exposes the fully wrapped handler, for in-process tests.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// withMiddleware applies the middleware chain to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Metrics(a.m.Logging(a.m.Auth(a.mux)))))
}
