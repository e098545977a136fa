package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Connection ConnectionConfig `mapstructure:"connection"`
	Query      QueryConfig      `mapstructure:"query"`
	UI         UIConfig         `mapstructure:"ui"`
	Storage    StorageConfig    `mapstructure:"storage"`
	LogLevel   string           `mapstructure:"log_level"`
	LogFile    string           `mapstructure:"log_file"`
}

// ConnectionConfig holds database connection parameters
type ConnectionConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	User         string `mapstructure:"user"`
	SSLMode      string `mapstructure:"sslmode"`
	PoolMaxConns int    `mapstructure:"pool_max_conns"`
	PoolMinConns int    `mapstructure:"pool_min_conns"`
	ReadOnly     bool   `mapstructure:"read_only"`
}

// QueryConfig holds query execution settings
type QueryConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	DateFormat string `mapstructure:"date_format"`
}

// StorageConfig holds local state database settings
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// DSN returns a keyword/value connection string for the pool.
func (c *ConnectionConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s sslmode=%s pool_max_conns=%d pool_min_conns=%d",
		c.Host, c.Port, c.Database, c.User, c.SSLMode, c.PoolMaxConns, c.PoolMinConns)
}

// LoadConfig loads configuration from YAML file and environment variables
func LoadConfig() (*Config, error) {
	// Set config file details
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/sift")
	viper.AddConfigPath(".")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Apply defaults
	applyDefaults()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, defaults apply
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	// Validate connection config
	if cfg.Connection.Host == "" {
		return fmt.Errorf("connection.host cannot be empty")
	}
	if cfg.Connection.Port < 1 || cfg.Connection.Port > 65535 {
		return fmt.Errorf("connection.port must be between 1 and 65535, got %d", cfg.Connection.Port)
	}
	if cfg.Connection.Database == "" {
		return fmt.Errorf("connection.database cannot be empty")
	}

	// Validate SSL mode
	validSSLModes := []string{"disable", "prefer", "require"}
	validMode := false
	for _, mode := range validSSLModes {
		if cfg.Connection.SSLMode == mode {
			validMode = true
			break
		}
	}
	if !validMode {
		return fmt.Errorf("connection.sslmode must be one of: %v, got %s", validSSLModes, cfg.Connection.SSLMode)
	}

	// Validate pool settings
	if cfg.Connection.PoolMaxConns < 1 {
		return fmt.Errorf("connection.pool_max_conns must be >= 1, got %d", cfg.Connection.PoolMaxConns)
	}
	if cfg.Connection.PoolMinConns < 0 {
		return fmt.Errorf("connection.pool_min_conns must be >= 0, got %d", cfg.Connection.PoolMinConns)
	}
	if cfg.Connection.PoolMaxConns < cfg.Connection.PoolMinConns {
		return fmt.Errorf("connection.pool_max_conns (%d) must be >= pool_min_conns (%d)",
			cfg.Connection.PoolMaxConns, cfg.Connection.PoolMinConns)
	}

	// Validate query settings
	if cfg.Query.Timeout < time.Second || cfg.Query.Timeout > time.Hour {
		return fmt.Errorf("query.timeout must be between 1s and 1h, got %v", cfg.Query.Timeout)
	}

	// Validate UI config
	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	// Validate log level
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error, got %s", cfg.LogLevel)
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults() {
	// Connection defaults
	viper.SetDefault("connection.host", "localhost")
	viper.SetDefault("connection.port", 5432)
	viper.SetDefault("connection.database", "postgres")

	// Get current user for default username
	if user := os.Getenv("USER"); user != "" {
		viper.SetDefault("connection.user", user)
	} else {
		viper.SetDefault("connection.user", "postgres")
	}

	viper.SetDefault("connection.sslmode", "prefer")
	viper.SetDefault("connection.pool_max_conns", 10)
	viper.SetDefault("connection.pool_min_conns", 2)
	viper.SetDefault("connection.read_only", false)

	// Query defaults
	viper.SetDefault("query.timeout", "5m")

	// UI defaults
	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.date_format", "2006-01-02 15:04:05")

	// Storage defaults: empty means ~/.config/sift/sift.db
	viper.SetDefault("storage.path", "")

	// Logging defaults
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")
}
