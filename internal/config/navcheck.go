package config

import (
	"fmt"
	"os"
	"runtime"
)

// EnvConfigPath overrides the config file path for the command-line tools.
const EnvConfigPath = "WASTELAND_CONFIG"

// Navigation tunes the pathfinder.
type Navigation struct {
	// MaxIterations caps A* node expansions per query. 0 keeps the engine default.
	MaxIterations int `yaml:"max_iterations"`
}

// Metrics controls the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"` // host:port for /metrics
}

// NavCheck holds configuration for the navcheck and mapimport tools.
type NavCheck struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Navigation Navigation     `yaml:"navigation"`
	Database   DatabaseConfig `yaml:"database"`
	Metrics    Metrics        `yaml:"metrics"`

	// Workers bounds concurrent scenario queries.
	Workers int `yaml:"workers"`
	// Report is the CSV output path; empty disables the report.
	Report string `yaml:"report"`
}

// DefaultNavCheck returns NavCheck config with sensible defaults.
func DefaultNavCheck() NavCheck {
	return NavCheck{
		LogLevel: "info",
		Database: DefaultDatabase(),
		Metrics: Metrics{
			Address: "127.0.0.1:9464",
		},
		Workers: runtime.NumCPU(),
		Report:  "navcheck_report.csv",
	}
}

// LoadNavCheck loads navcheck config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadNavCheck(path string) (NavCheck, error) {
	cfg := DefaultNavCheck()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath returns the path from WASTELAND_CONFIG, or def.
func ConfigPath(def string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return def
}

// Validate rejects values the tools cannot run with.
func (c NavCheck) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Navigation.MaxIterations < 0 {
		return fmt.Errorf("navigation.max_iterations must not be negative, got %d", c.Navigation.MaxIterations)
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics are enabled")
	}
	return nil
}
