package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Polling.Interval != time.Second {
		t.Fatalf("default interval = %s, want 1s", cfg.Polling.Interval)
	}
	if cfg.Polling.BurstLimit != 90 || cfg.Polling.BurstWindow != 5*time.Minute {
		t.Fatalf("default burst = %d/%s, want 90/5m", cfg.Polling.BurstLimit, cfg.Polling.BurstWindow)
	}
	if cfg.Polling.Timeout != 10*time.Second {
		t.Fatalf("default timeout = %s, want 10s", cfg.Polling.Timeout)
	}
	if cfg.Booking.Dose != 1 {
		t.Fatalf("default dose = %d, want 1", cfg.Booking.Dose)
	}
	if cfg.Session.MaxAge != 10*time.Minute {
		t.Fatalf("default session max age = %s, want 10m", cfg.Session.MaxAge)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
polling:
  interval: 2s
  burst_limit: 20
  burst_window: 60s
booking:
  dose: 2
  vaccine: COVAXIN
  beneficiaries: ["1234", "5678"]
location:
  district_id: 188
status:
  addr: "127.0.0.1:9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Polling.Interval != 2*time.Second || cfg.Polling.BurstLimit != 20 || cfg.Polling.BurstWindow != time.Minute {
		t.Fatalf("polling = %+v", cfg.Polling)
	}
	if cfg.Booking.Dose != 2 || cfg.Booking.VaccinePreference != "COVAXIN" || len(cfg.Booking.Beneficiaries) != 2 {
		t.Fatalf("booking = %+v", cfg.Booking)
	}
	if cfg.Location.DistrictID != 188 {
		t.Fatalf("location = %+v", cfg.Location)
	}
	if cfg.Status.Addr != "127.0.0.1:9090" {
		t.Fatalf("status = %+v", cfg.Status)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := func() Config {
		return Config{
			Polling: PollingConfig{
				Interval:    time.Second,
				BurstLimit:  90,
				BurstWindow: 5 * time.Minute,
				Timeout:     10 * time.Second,
			},
			Booking: BookingConfig{Dose: 1},
			Session: SessionConfig{MaxAge: 10 * time.Minute},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"dose zero", func(c *Config) { c.Booking.Dose = 0 }},
		{"dose three", func(c *Config) { c.Booking.Dose = 3 }},
		{"zero interval", func(c *Config) { c.Polling.Interval = 0 }},
		{"zero burst limit", func(c *Config) { c.Polling.BurstLimit = 0 }},
		{"zero burst window", func(c *Config) { c.Polling.BurstWindow = 0 }},
		{"zero timeout", func(c *Config) { c.Polling.Timeout = 0 }},
		{"zero session max age", func(c *Config) { c.Session.MaxAge = 0 }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			if err := cfg.Validate(); err != nil {
				t.Fatalf("base config must validate: %v", err)
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			var cfgErr *apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want ConfigError", err)
			}
		})
	}
}
