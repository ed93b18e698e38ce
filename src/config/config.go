package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"bitlife/src/simulation"
	"bitlife/src/universe"
)

var ErrInvalidConfig = errors.New("invalid config")

//Config holds the host configuration, values come from a JSON file and are overridden by flags
type Config struct {
	Width           uint32        `json:"width"`
	Height          uint32        `json:"height"`
	Interval        time.Duration `json:"interval"`
	MaxSteps        int           `json:"max_steps"`
	MaxSkippedTicks int           `json:"max_skipped_ticks"`
	Interactive     bool          `json:"interactive"`
	RandomData      bool          `json:"random_data"`
	Seed            int64         `json:"seed"`
	Template        string        `json:"template"`
	Window          bool          `json:"window"`
	Scale           int           `json:"scale"`
}

//DefaultConfig returns the defaults: the seeded 64x64 universe stepped every 100ms
func DefaultConfig() Config {
	return Config{
		Width:           universe.DefWidth,
		Height:          universe.DefHeight,
		Interval:        simulation.DefSimulationInterval,
		MaxSteps:        simulation.DefMaxSteps,
		MaxSkippedTicks: simulation.DefMaxSkippedTicks,
		Seed:            42,
		Scale:           8,
	}
}

//LoadConfig loads configuration from JSON file, missing keys keep their defaults
func LoadConfig(filename string) (Config, error) {
	config, err := readConfig(filename)
	if err != nil {
		return config, err
	}
	return config, config.Validate()
}

//readConfig reads the file over the defaults without validating it
func readConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//Validate checks the values the simulation can not run with
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return errors.Wrapf(ErrInvalidConfig, "dimension %v x %v", c.Width, c.Height)
	case c.Interval < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative interval %v", c.Interval)
	case c.MaxSteps < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative max steps %v", c.MaxSteps)
	case c.MaxSkippedTicks < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative max skipped ticks %v", c.MaxSkippedTicks)
	case c.Window && c.Scale <= 0:
		return errors.Wrapf(ErrInvalidConfig, "window scale %v", c.Scale)
	}
	return nil
}

//SimulationOptions converts the config to the simulation options
func (c Config) SimulationOptions() *simulation.Options {
	o := simulation.DefaultOptions
	o.Width = c.Width
	o.Height = c.Height
	o.Interval = c.Interval
	o.MaxSteps = c.MaxSteps
	o.MaxSkippedTicks = c.MaxSkippedTicks
	return &o
}
