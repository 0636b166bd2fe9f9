package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
)

// Config is the immutable run configuration. It is built once at startup
// and passed into the services; nothing mutates it afterwards.
type Config struct {
	Polling  PollingConfig  `mapstructure:"polling"`
	Booking  BookingConfig  `mapstructure:"booking"`
	Location LocationConfig `mapstructure:"location"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Session  SessionConfig  `mapstructure:"session"`
	Status   StatusConfig   `mapstructure:"status"`
}

// PollingConfig paces the query loop and bounds bursts so the server does
// not start blocking the client.
type PollingConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	PinDelay    time.Duration `mapstructure:"pin_delay"`
	BurstLimit  int           `mapstructure:"burst_limit"`
	BurstWindow time.Duration `mapstructure:"burst_window"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type BookingConfig struct {
	Dose              int      `mapstructure:"dose"`
	VaccinePreference string   `mapstructure:"vaccine"`
	CenterPreference  string   `mapstructure:"center"`
	Beneficiaries     []string `mapstructure:"beneficiaries"`
}

type LocationConfig struct {
	DistrictID int      `mapstructure:"district_id"`
	Pincodes   []string `mapstructure:"pincodes"`
}

// NotifyConfig holds alert destinations. Credentials (SendGrid, Twilio) come
// from the environment, not from here.
type NotifyConfig struct {
	Email string `mapstructure:"email"`
	Phone string `mapstructure:"phone"`
}

type SessionConfig struct {
	StateFile string        `mapstructure:"state_file"`
	MaxAge    time.Duration `mapstructure:"max_age"`
}

// StatusConfig enables the local status server when Addr is set.
type StatusConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("polling.interval", time.Second)
	v.SetDefault("polling.pin_delay", time.Second)
	v.SetDefault("polling.burst_limit", 90)
	v.SetDefault("polling.burst_window", 5*time.Minute)
	v.SetDefault("polling.timeout", 10*time.Second)
	v.SetDefault("booking.dose", 1)
	v.SetDefault("session.state_file", ".bookvaccine-session.json")
	v.SetDefault("session.max_age", 10*time.Minute)
}

// Load reads the optional yaml config file at path plus BOOKVACCINE_*
// environment overrides, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("BOOKVACCINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigError("reading config %s: %v", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigError("parsing config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Booking.Dose != 1 && c.Booking.Dose != 2 {
		return apperrors.NewConfigError("booking.dose must be 1 or 2, got %d", c.Booking.Dose)
	}
	if c.Polling.Interval <= 0 {
		return apperrors.NewConfigError("polling.interval must be positive")
	}
	if c.Polling.BurstLimit <= 0 {
		return apperrors.NewConfigError("polling.burst_limit must be positive")
	}
	if c.Polling.BurstWindow <= 0 {
		return apperrors.NewConfigError("polling.burst_window must be positive")
	}
	if c.Polling.Timeout <= 0 {
		return apperrors.NewConfigError("polling.timeout must be positive")
	}
	if c.Session.MaxAge <= 0 {
		return apperrors.NewConfigError("session.max_age must be positive")
	}
	return nil
}
