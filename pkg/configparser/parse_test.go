package configparser

import (
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Port string `env:"TESTCFG_SERVER_PORT" default:"8080"`
	}
	Timeout time.Duration `env:"TESTCFG_TIMEOUT" default:"15m"`
	Seed    bool          `env:"TESTCFG_SEED" default:"true"`
	Window  int           `env:"TESTCFG_WINDOW" default:"30"`
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port: got %q, want 8080", cfg.Server.Port)
	}
	if cfg.Timeout != 15*time.Minute {
		t.Errorf("timeout: got %v, want 15m", cfg.Timeout)
	}
	if !cfg.Seed {
		t.Error("seed default not applied")
	}
	if cfg.Window != 30 {
		t.Errorf("window: got %d, want 30", cfg.Window)
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TESTCFG_SERVER_PORT", "9000")
	t.Setenv("TESTCFG_TIMEOUT", "1h")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("port: got %q, want 9000", cfg.Server.Port)
	}
	if cfg.Timeout != time.Hour {
		t.Errorf("timeout: got %v, want 1h", cfg.Timeout)
	}
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(cfg); err == nil {
		t.Fatal("expected error for non-pointer argument")
	}
}
