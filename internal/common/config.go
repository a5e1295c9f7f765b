// Package common provides shared utilities for fincatch
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for fincatch
type Config struct {
	Environment     string        `toml:"environment"`
	DisplayCurrency string        `toml:"display_currency"` // default currency for portfolio totals ("VND" or "USD", default "VND")
	Server          ServerConfig  `toml:"server"`
	Storage         StorageConfig `toml:"storage"`
	Clients         ClientsConfig `toml:"clients"`
	Logging         LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration for the embedded store.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	SSI         ClientConfig `toml:"ssi"`
	SJC         ClientConfig `toml:"sjc"`
	Vietcombank ClientConfig `toml:"vietcombank"`
}

// ClientConfig holds configuration common to the market data clients.
type ClientConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ClientConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment:     "development",
		DisplayCurrency: "VND",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/fincatch",
		},
		Clients: ClientsConfig{
			SSI:         ClientConfig{RateLimit: 10, Timeout: "30s"},
			SJC:         ClientConfig{RateLimit: 5, Timeout: "30s"},
			Vietcombank: ClientConfig{RateLimit: 5, Timeout: "30s"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a TOML file, applying defaults for
// missing values and environment variable overrides on top.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// Missing file is fine: defaults + env apply.
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.applyEnvOverrides()

	return config, nil
}

// applyEnvOverrides applies FINCATCH_* environment variables over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FINCATCH_ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("FINCATCH_DISPLAY_CURRENCY"); v != "" {
		c.DisplayCurrency = v
	}
	if v := os.Getenv("FINCATCH_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("FINCATCH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FINCATCH_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("FINCATCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FINCATCH_SSI_BASE_URL"); v != "" {
		c.Clients.SSI.BaseURL = v
	}
	if v := os.Getenv("FINCATCH_SJC_BASE_URL"); v != "" {
		c.Clients.SJC.BaseURL = v
	}
	if v := os.Getenv("FINCATCH_VIETCOMBANK_BASE_URL"); v != "" {
		c.Clients.Vietcombank.BaseURL = v
	}
}

// IsProduction returns true when running in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
