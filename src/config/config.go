// Package config holds the plotter's run configuration. The defaults reproduce the fixed
// batch (five LineDirect logs in the working directory); a YAML file can override them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLogs are the log base names processed when nothing else is configured.
var DefaultLogs = []string{"LineDirectGZ", "LineDirectHK", "LineDirectSeoul", "LineDirectUS", "LineDirectFrance"}

// Config holds all settings for one plotting run.
type Config struct {
	Dir        string   `yaml:"dir"`  // where <name>.log is read and <name>.png is written
	Logs       []string `yaml:"logs"` // base names without extension
	SortByTime bool     `yaml:"sort_by_time"`
	Annotate   bool     `yaml:"annotate"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	LatencyMax float64  `yaml:"latency_max"`
	LossMax    float64  `yaml:"loss_max"`
	LogLevel   string   `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dir:        ".",
		Logs:       append([]string(nil), DefaultLogs...),
		Width:      1024,
		Height:     600,
		LatencyMax: 600,
		LossMax:    100,
		LogLevel:   "info",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Logs) == 0 {
		return errors.New("logs: at least one log name is required")
	}
	for _, name := range c.Logs {
		if strings.TrimSpace(name) == "" {
			return errors.New("logs: empty log name")
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("logs: %q must be a base name, use dir for the folder", name)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width/height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.LatencyMax <= 0 {
		return fmt.Errorf("latency_max must be positive, got %v", c.LatencyMax)
	}
	if c.LossMax <= 0 {
		return fmt.Errorf("loss_max must be positive, got %v", c.LossMax)
	}
	return nil
}
