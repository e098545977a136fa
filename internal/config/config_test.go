package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Connection: ConnectionConfig{
			Host:         "localhost",
			Port:         5432,
			Database:     "postgres",
			User:         "postgres",
			SSLMode:      "prefer",
			PoolMaxConns: 10,
			PoolMinConns: 2,
		},
		Query:    QueryConfig{Timeout: 5 * time.Minute},
		UI:       UIConfig{Theme: "dark", DateFormat: "2006-01-02 15:04:05"},
		LogLevel: "info",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty host", func(c *Config) { c.Connection.Host = "" }, true},
		{"port too low", func(c *Config) { c.Connection.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Connection.Port = 70000 }, true},
		{"empty database", func(c *Config) { c.Connection.Database = "" }, true},
		{"bad sslmode", func(c *Config) { c.Connection.SSLMode = "verify-full" }, true},
		{"zero max conns", func(c *Config) { c.Connection.PoolMaxConns = 0 }, true},
		{"min above max", func(c *Config) { c.Connection.PoolMinConns = 20 }, true},
		{"timeout too short", func(c *Config) { c.Query.Timeout = time.Millisecond }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnectionDSN(t *testing.T) {
	cfg := validConfig()
	want := "host=localhost port=5432 dbname=postgres user=postgres sslmode=prefer pool_max_conns=10 pool_min_conns=2"
	if got := cfg.Connection.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
