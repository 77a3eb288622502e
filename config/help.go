package config

import (
	"context"
	"fmt"

	"github.com/Yun12-yu/smart-taxis/pkg/logger"
)

// PrintHelp writes usage information to stdout.
func PrintHelp() {
	fmt.Println(`Smart Taxis dispatch service

Usage:
  taxi [flags]

Flags:
  --config-path   Path to the config yaml file (default "config.yaml")
  --help          Show this help message

Configuration is read from the YAML file, with environment variables taking
precedence. Key variables:

  SERVER_PORT               HTTP listen port (default 3000)
  STORAGE_MODE              auto | postgres | memory (default auto)
  DATABASE_HOST/PORT/...    PostgreSQL connection settings
  AUTH_JWT_SECRET           HMAC secret for bearer tokens
  SIMULATION_ENABLED        Drive missions through their status sequence
  LOG_LEVEL                 DEBUG | INFO | WARN | ERROR`)
}

// PrintConfig logs the effective configuration, omitting secrets.
func PrintConfig(log logger.Logger, cfg *Config) {
	ctx := context.Background()
	log.Info(ctx, "configuration loaded",
		"server_port", cfg.Server.Port,
		"storage_mode", cfg.Storage.Mode,
		"database_host", cfg.Database.Host,
		"database_name", cfg.Database.Database,
		"simulation_enabled", cfg.Simulation.Enabled,
		"analytics_window_days", cfg.Analytics.WindowDays,
		"log_level", cfg.LogLevel,
		"seed", cfg.Seed,
	)
}
