package config

import (
	"fmt"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server     ServerConfig
		Database   DatabaseConfig
		Storage    StorageConfig
		Auth       AuthConfig
		Simulation SimulationConfig
		Analytics  AnalyticsConfig

		LogLevel string `env:"LOG_LEVEL" default:"DEBUG"`
		Seed     bool   `env:"SEED" default:"true"`
	}

	ServerConfig struct {
		Host string `env:"SERVER_HOST" default:"0.0.0.0"`
		Port string `env:"SERVER_PORT" default:"3000"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"taxi_user"`
		Password string `env:"DATABASE_PASSWORD" default:"taxi_pass"`
		Database string `env:"DATABASE_DATABASE" default:"taxi_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	// StorageConfig selects the persistence backend. "auto" tries postgres
	// and degrades to the in-memory store when the database is unreachable.
	StorageConfig struct {
		Mode string `env:"STORAGE_MODE" default:"auto"`
	}

	AuthConfig struct {
		JWTSecret      string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
		AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"24h"`

		// Bootstrap admin account, created at startup when absent.
		AdminUsername string `env:"AUTH_ADMIN_USERNAME" default:"admin"`
		AdminEmail    string `env:"AUTH_ADMIN_EMAIL" default:"admin@smarttaxis.local"`
		AdminPassword string `env:"AUTH_ADMIN_PASSWORD" default:"admin123"`
	}

	// SimulationConfig tunes the mission progress timers. The exact delay
	// bounds are parameters, not part of the lifecycle contract.
	SimulationConfig struct {
		Enabled      bool          `env:"SIMULATION_ENABLED" default:"true"`
		InitialDelay time.Duration `env:"SIMULATION_INITIAL_DELAY" default:"1s"`
		MinDelay     time.Duration `env:"SIMULATION_MIN_DELAY" default:"2s"`
		MaxDelay     time.Duration `env:"SIMULATION_MAX_DELAY" default:"5s"`
	}

	AnalyticsConfig struct {
		WindowDays int `env:"ANALYTICS_WINDOW_DAYS" default:"30"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c StorageConfig) StorageMode() types.StorageMode {
	return types.StorageMode(c.Mode)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading environment variables and parsing into the config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	switch types.StorageMode(cfg.Storage.Mode) {
	case types.StorageAuto, types.StoragePostgres, types.StorageMemory:
	default:
		return nil, fmt.Errorf("invalid storage mode: %q", cfg.Storage.Mode)
	}

	if cfg.Simulation.MinDelay > cfg.Simulation.MaxDelay {
		return nil, fmt.Errorf("simulation min delay %s exceeds max delay %s", cfg.Simulation.MinDelay, cfg.Simulation.MaxDelay)
	}

	return cfg, nil
}
