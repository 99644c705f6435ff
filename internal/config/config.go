// Package config loads blockie settings from defaults, an optional YAML file
// and BLOCKIE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plus3/blockie/internal/logging"
	"github.com/plus3/blockie/partition"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. BLOCKIE_GRID_WIDTH.
const EnvPrefix = "BLOCKIE"

// GridConfig sizes the board and picks the split overlap rule.
type GridConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Bounds string `mapstructure:"bounds"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	CellSize float64       `mapstructure:"cellSize"`
	Notice   time.Duration `mapstructure:"notice"`
	Overlay  bool          `mapstructure:"overlay"`
	Title    string        `mapstructure:"title"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    string `mapstructure:"file"`
}

// AudioConfig holds sound cue settings.
type AudioConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	SampleRate int  `mapstructure:"sampleRate"`
}

// MetricsConfig controls the in-process metrics reader.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the full set of blockie settings.
type Config struct {
	Grid    GridConfig    `mapstructure:"grid"`
	Display DisplayConfig `mapstructure:"display"`
	Log     LogConfig     `mapstructure:"log"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Seed drives debug colours; zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.width", 10)
	v.SetDefault("grid.height", 10)
	v.SetDefault("grid.bounds", "inclusive")

	v.SetDefault("display.cellSize", 100.0)
	v.SetDefault("display.notice", "3s")
	v.SetDefault("display.overlay", true)
	v.SetDefault("display.title", "Blockie")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", "")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sampleRate", 44100)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("seed", 0)
}

// Load reads configuration. An empty path uses defaults and the environment
// only.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load reads configuration without validating it.
func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d: %w", c.Grid.Width, c.Grid.Height, partition.ErrInvalidDimensions))
	}
	if _, err := partition.ParseBounds(c.Grid.Bounds); err != nil {
		errs = append(errs, err)
	}
	if c.Display.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("display.cellSize must be positive, got %v", c.Display.CellSize))
	}
	if c.Display.Notice < 0 {
		errs = append(errs, fmt.Errorf("display.notice must not be negative, got %s", c.Display.Notice))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sampleRate must be positive, got %d", c.Audio.SampleRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Bounds returns the parsed grid bounds mode. Call after Validate.
func (c *Config) Bounds() partition.Bounds {
	b, _ := partition.ParseBounds(c.Grid.Bounds)
	return b
}

// LogOptions converts the log section for logging.New.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:   c.Log.Level,
		Console: c.Log.Console,
		File:    c.Log.File,
	}
}
