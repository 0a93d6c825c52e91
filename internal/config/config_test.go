package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Host:         "192.168.1.100",
		Port:         9898,
		PollInterval: 10,
		LogLevel:     "info",
		HTTPTimeout:  5,
	}
}

func TestPollIntervalDuration(t *testing.T) {
	cfg := validConfig()
	cfg.PollInterval = 30

	if got := cfg.PollIntervalDuration(); got != 30*time.Second {
		t.Errorf("PollIntervalDuration() = %v, want %v", got, 30*time.Second)
	}
}

func TestHTTPTimeoutDuration(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPTimeout = 15

	if got := cfg.HTTPTimeoutDuration(); got != 15*time.Second {
		t.Errorf("HTTPTimeoutDuration() = %v, want %v", got, 15*time.Second)
	}
}

func TestMetricsBindAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 3000

	if got := cfg.MetricsBindAddr(); got != "0.0.0.0:3000" {
		t.Errorf("MetricsBindAddr() = %q, want %q", got, "0.0.0.0:3000")
	}
}

func TestHomeWizardURL(t *testing.T) {
	cfg := validConfig()

	want := "http://192.168.1.100/api/v1/data"
	if got := cfg.HomeWizardURL(); got != want {
		t.Errorf("HomeWizardURL() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: true,
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.PollInterval = 0 },
			wantErr: true,
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *Config) { c.PollInterval = -5 },
			wantErr: true,
		},
		{
			name:    "zero http timeout",
			mutate:  func(c *Config) { c.HTTPTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "api token is optional",
			mutate:  func(c *Config) { c.APIToken = "" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
