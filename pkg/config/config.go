// Package config provides configuration loading and management for hdfview.
// Application settings come from an optional YAML file; the per-user
// session record (last used folder) is a small JSON file at an
// OS-conventional location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Server parameters
	Server struct {
		// Port is the default listen port; the --port flag overrides it.
		Port int `yaml:"port"`
	} `yaml:"server"`

	// Viewer parameters
	Viewer struct {
		// UpdateRateMs is the polling interval of the display loop in
		// milliseconds.
		UpdateRateMs int `yaml:"updateRateMs"`

		// Colormap is the initial image colormap.
		Colormap string `yaml:"colormap"`

		// Marker is the initial plot marker.
		Marker string `yaml:"marker"`

		// ZoomFactors are the selectable ROI magnifications.
		ZoomFactors []int `yaml:"zoomFactors"`
	} `yaml:"viewer"`

	// Export parameters
	Export struct {
		// JpegQuality applies to saved JPEG slices.
		JpegQuality int `yaml:"jpegQuality"`
	} `yaml:"export"`
}

// DefaultConfigPath returns the fixed location of the optional settings
// file, next to the session record.
func DefaultConfigPath() string {
	return filepath.Join(filepath.Dir(DefaultSessionPath()), "settings.yaml")
}

// UpdateInterval returns the display loop polling interval.
func (c *Config) UpdateInterval() time.Duration {
	if c.Viewer.UpdateRateMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.Viewer.UpdateRateMs) * time.Millisecond
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Port = 8180

	cfg.Viewer.UpdateRateMs = 200
	cfg.Viewer.Colormap = "gray"
	cfg.Viewer.Marker = ","
	cfg.Viewer.ZoomFactors = []int{2, 4, 8, 16}

	cfg.Export.JpegQuality = 90

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
