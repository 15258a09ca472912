package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration
type Config struct {
	Split    SplitConfig    `yaml:"split" env:",prefix=AC_SPLIT_"`
	Playback PlaybackConfig `yaml:"playback" env:",prefix=AC_PLAYBACK_"`
	Metrics  MetricsConfig  `yaml:"metrics" env:",prefix=AC_METRICS_"`
	Logging  LoggingConfig  `yaml:"logging" env:",prefix=AC_LOG_"`
}

// SplitConfig contains silence segmentation parameters
type SplitConfig struct {
	MinSilenceMS  int     `yaml:"min_silence_ms" env:"MIN_SILENCE_MS"`
	ThresholdDBFS float64 `yaml:"silence_threshold_dbfs" env:"THRESHOLD_DBFS"`
	OutputDir     string  `yaml:"output_dir" env:"OUTPUT_DIR"`
}

// PlaybackConfig contains device playback parameters
type PlaybackConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

// MetricsConfig contains the optional Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Address string `yaml:"address" env:"ADDRESS"`
	Port    int    `yaml:"port" env:"PORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the configuration used when no file is present. The
// segmentation defaults match the values the tool has always split with:
// 500ms minimum silence at -48 dBFS.
func Default() Config {
	return Config{
		Split: SplitConfig{
			MinSilenceMS:  500,
			ThresholdDBFS: -48,
			OutputDir:     "audio",
		},
		Playback: PlaybackConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: "127.0.0.1",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file if it exists, applies environment
// overrides, and validates the result. A missing file is not an error;
// defaults are used.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate performs validation of the full configuration
func (c *Config) Validate() error {
	if err := c.Split.Validate(); err != nil {
		return fmt.Errorf("split config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates segmentation configuration
func (s *SplitConfig) Validate() error {
	if s.MinSilenceMS <= 0 {
		return fmt.Errorf("min_silence_ms must be positive, got %d", s.MinSilenceMS)
	}

	if s.ThresholdDBFS >= 0 {
		return fmt.Errorf("silence_threshold_dbfs must be negative, got %f", s.ThresholdDBFS)
	}

	if s.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}

// Validate validates metrics configuration
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.Port < 1 || m.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", m.Port)
		}

		if m.Address == "" {
			return fmt.Errorf("address cannot be empty when metrics are enabled")
		}
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// GetMinSilence returns the minimum silence duration as a time.Duration
func (s *SplitConfig) GetMinSilence() time.Duration {
	return time.Duration(s.MinSilenceMS) * time.Millisecond
}

// ListenAddr returns the metrics endpoint address in host:port form
func (m *MetricsConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", m.Address, m.Port)
}
