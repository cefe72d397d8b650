// Package config loads the settings of the framedemo command from a TOML
// file and the environment.
//
// A minimal configuration file:
//
//	backend = "webgpu"
//	max_consecutive_drops = 120
//	log_level = "info"
//
//	[window]
//	width = 1280
//	height = 720
//	title = "frameloop"
//
//	[headless]
//	frames = 60
//	snapshot = "frame.png"
//
// Unknown keys are rejected. The FRAMELOOP_LOG environment variable
// overrides log_level.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvLogLevel is the environment variable that overrides the log level.
const EnvLogLevel = "FRAMELOOP_LOG"

// Backend selection values.
const (
	BackendAuto     = "auto"
	BackendWebGPU   = "webgpu"
	BackendSoftware = "software"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("config: invalid")

// Config holds the framedemo settings.
type Config struct {
	Window   Window   `toml:"window"`
	Headless Headless `toml:"headless"`

	// Backend is "auto", "webgpu" or "software".
	Backend string `toml:"backend"`

	// MaxConsecutiveDrops stops the loop after that many dropped frames
	// in a row. Zero means no limit.
	MaxConsecutiveDrops int `toml:"max_consecutive_drops"`

	// LogLevel is "debug", "info", "warn", "error" or "off".
	LogLevel string `toml:"log_level"`
}

// Window holds the window settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Headless holds the settings for running without a window.
type Headless struct {
	Enabled bool `toml:"enabled"`

	// Frames is the number of frames rendered before exiting.
	Frames int `toml:"frames"`

	// Snapshot is the PNG file the last frame is written to. Empty
	// disables the snapshot.
	Snapshot string `toml:"snapshot"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "frameloop",
		},
		Headless: Headless{
			Frames: 60,
		},
		Backend:  BackendAuto,
		LogLevel: "warn",
	}
}

// Load reads the TOML file at path over the defaults, applies the
// environment and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, missing.String())
		}
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	switch c.Backend {
	case BackendAuto, BackendWebGPU, BackendSoftware:
	default:
		errs = append(errs, fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend))
	}
	if c.MaxConsecutiveDrops < 0 {
		errs = append(errs, fmt.Errorf("%w: max_consecutive_drops %d", ErrInvalid, c.MaxConsecutiveDrops))
	}
	if _, _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Headless.Enabled {
		if c.Headless.Frames <= 0 {
			errs = append(errs, fmt.Errorf("%w: headless frames %d", ErrInvalid, c.Headless.Frames))
		}
		if c.Backend == BackendWebGPU {
			errs = append(errs, fmt.Errorf("%w: headless mode needs the software backend", ErrInvalid))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel returns the log level. ok is false when logging is off.
func (c Config) SlogLevel() (level slog.Level, ok bool) {
	level, ok, _ = parseLevel(c.LogLevel)
	return level, ok
}

func parseLevel(s string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "", "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	case "off", "none":
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
}
