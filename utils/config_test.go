package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Width != 100 || c.Height != 80 || c.AliveProbability != 0.4 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"width": 20, "height": 10, "tick_interval": 50000000, "auto_restart": true}`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Width != 20 || c.Height != 10 {
		t.Errorf("got %dx%d, want 20x10", c.Width, c.Height)
	}
	if c.TickInterval != 50*time.Millisecond {
		t.Errorf("tick interval = %v, want 50ms", c.TickInterval)
	}
	if !c.AutoRestart {
		t.Error("auto_restart not applied")
	}
	if c.AliveProbability != 0.4 {
		t.Errorf("unset field lost its default: %v", c.AliveProbability)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		invalid bool
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, false},
		{"malformed json", func(t *testing.T) string { return writeConfig(t, `{"width": `) }, false},
		{"zero width", func(t *testing.T) string { return writeConfig(t, `{"width": 0}`) }, true},
		{"probability above one", func(t *testing.T) string { return writeConfig(t, `{"alive_probability": 1.5}`) }, true},
		{"negative probability", func(t *testing.T) string { return writeConfig(t, `{"alive_probability": -0.1}`) }, true},
		{"zero tick", func(t *testing.T) string { return writeConfig(t, `{"tick_interval": 0}`) }, true},
		{"negative max generations", func(t *testing.T) string { return writeConfig(t, `{"max_generations": -1}`) }, true},
		{"zero cell size", func(t *testing.T) string { return writeConfig(t, `{"cell_size": 0}`) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}
