package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{"width": 32, "height": 16, "interval": 5000000, "template": "glider"}`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 32 || c.Height != 16 {
		t.Fatalf("dimension: got %v x %v", c.Width, c.Height)
	}
	if c.Interval != 5*time.Millisecond {
		t.Fatalf("interval: got %v", c.Interval)
	}
	if c.Template != "glider" {
		t.Fatalf("template: got %q", c.Template)
	}
	//keys missing from the file keep the defaults
	if c.MaxSteps != DefaultConfig().MaxSteps || c.Seed != 42 {
		t.Fatalf("defaults lost: %+v", c)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("got %v, expected not exist", err)
	}
	if _, err := LoadConfig(writeConfig(t, `{"width": `)); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if _, err := LoadConfig(writeConfig(t, `{"width": 0}`)); errors.Cause(err) != ErrInvalidConfig {
		t.Fatalf("got %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero height", func(c *Config) { c.Height = 0 }, false},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, false},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }, false},
		{"negative skipped ticks", func(c *Config) { c.MaxSkippedTicks = -1 }, false},
		{"window without scale", func(c *Config) { c.Window = true; c.Scale = 0 }, false},
		{"no window without scale", func(c *Config) { c.Scale = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && errors.Cause(err) != ErrInvalidConfig {
				t.Fatalf("got %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSimulationOptions(t *testing.T) {
	c := DefaultConfig()
	c.Width, c.Height, c.MaxSteps = 10, 20, 7
	o := c.SimulationOptions()
	if o.Width != 10 || o.Height != 20 || o.MaxSteps != 7 || o.Interval != c.Interval {
		t.Fatalf("got %+v", o)
	}
}

func TestFromArgs_NoFile(t *testing.T) {
	c, _, err := FromArgs([]string{"-x", "10", "-y", "20", "-r", "--seed", "7"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 10 || c.Height != 20 || !c.RandomData || c.Seed != 7 {
		t.Fatalf("got %+v", c)
	}
	if c.MaxSteps != DefaultConfig().MaxSteps {
		t.Fatalf("max steps: got %v", c.MaxSteps)
	}
}

func TestFromArgs_FlagsOverFile(t *testing.T) {
	path := writeConfig(t, `{"width": 100, "height": 50, "template": "glider", "interactive": true, "max_steps": 9}`)

	//flags equal to the defaults still win over the file
	c, _, err := FromArgs([]string{"-c", path, "-x", "64", "--interactive=false"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 64 || c.Height != 50 {
		t.Fatalf("dimension: got %v x %v", c.Width, c.Height)
	}
	if c.Interactive {
		t.Fatal("interactive from the file was not turned off")
	}
	if c.Template != "glider" || c.MaxSteps != 9 {
		t.Fatalf("file values lost: %+v", c)
	}
}

func TestFromArgs_FlagFixesFile(t *testing.T) {
	path := writeConfig(t, `{"width": 0}`)
	c, _, err := FromArgs([]string{"-c", path, "-x", "8"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 8 {
		t.Fatalf("width: got %v", c.Width)
	}

	if _, _, err := FromArgs([]string{"-c", path}, nil); errors.Cause(err) != ErrInvalidConfig {
		t.Fatalf("got %v, expected ErrInvalidConfig", err)
	}
}
