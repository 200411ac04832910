package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the simulation
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	AliveProbability    float64       `json:"alive_probability"`
	TickInterval        time.Duration `json:"tick_interval"`
	Seed                int64         `json:"seed"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	InjectionCount      int           `json:"injection_count"`
	RefreshInterval     int           `json:"refresh_interval"`
	MaxGenerations      int           `json:"max_generations"`
	CellSize            int           `json:"cell_size"`
	VideoFPS            int           `json:"video_fps"`
	LogFile             string        `json:"log_file"`
}

// DefaultConfig returns the classic 100x80 board seeded at 40% density
func DefaultConfig() Config {
	return Config{
		Width:               100,
		Height:              80,
		AliveProbability:    0.4,
		TickInterval:        10 * time.Millisecond,
		Seed:                0, // 0 seeds from the clock
		UseMemoryPool:       true,
		AutoRestart:         false,
		StagnationThreshold: 5,
		InjectionCount:      3,
		RefreshInterval:     0,
		MaxGenerations:      0,
		CellSize:            6,
		VideoFPS:            25,
	}
}

// LoadConfig loads configuration from JSON file over the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.AliveProbability < 0 || c.AliveProbability > 1:
		return errors.Wrapf(ErrInvalidConfig, "alive_probability must be within [0, 1], got %v", c.AliveProbability)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval must be positive, got %v", c.TickInterval)
	case c.StagnationThreshold < 0, c.InjectionCount < 0, c.RefreshInterval < 0, c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "counters must not be negative")
	case c.CellSize <= 0 || c.VideoFPS <= 0:
		return errors.Wrapf(ErrInvalidConfig, "cell_size and video_fps must be positive, got %d and %d", c.CellSize, c.VideoFPS)
	}
	return nil
}
