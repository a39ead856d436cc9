// Package config handles loading and managing application configuration
// from YAML files, .env files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MerchantConfig holds the receiving side of every generated charge.
type MerchantConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

// Config holds all application configuration values.
type Config struct {
	Port     int            `yaml:"port"`
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
	QRSize   int            `yaml:"qr_size"`
	Merchant MerchantConfig `yaml:"merchant"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		Port:     8060,
		DataDir:  filepath.Join(homeDir, ".schoolhub-pix"),
		LogLevel: "info",
		QRSize:   512,
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working
// directory is loaded if present, and PIX_* environment variables
// override any file or default values.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies PIX_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIX_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("PIX_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PIX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PIX_QR_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QRSize = n
		}
	}
	if v := os.Getenv("PIX_KEY"); v != "" {
		cfg.Merchant.Key = v
	}
	if v := os.Getenv("PIX_MERCHANT_NAME"); v != "" {
		cfg.Merchant.Name = v
	}
	if v := os.Getenv("PIX_MERCHANT_CITY"); v != "" {
		cfg.Merchant.City = v
	}
}

// validate checks the values a running service cannot do without.
func (c *Config) validate() error {
	if c.Merchant.Key == "" {
		return fmt.Errorf("merchant.key is required (set it in the config file or via PIX_KEY)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("invalid qr_size %d", c.QRSize)
	}
	return nil
}

// EnsureDataDir creates the DataDir if it does not already exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", c.DataDir, err)
	}
	return nil
}
