package config

import (
	"fmt"

	"github.com/integrii/flaggy"
)

//NewParser binds the command line flags to c, the config file name goes to configFile
func NewParser(c *Config, configFile *string, templates []string) *flaggy.Parser {
	p := flaggy.NewParser("bitlife")
	p.Description = "Conway's Game of Life on a toroidal bit-packed grid"
	p.ShowHelpOnUnexpected = true
	p.String(configFile, "c", "config", "JSON config file, only the flags given on the command line override its values")
	p.UInt32(&c.Width, "x", "width", "Width of a simulation field")
	p.UInt32(&c.Height, "y", "height", "Height of a simulation field")
	p.Duration(&c.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.Int(&c.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 for no limit")
	p.Bool(&c.Interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&c.RandomData, "r", "random", "Settle with random data")
	p.Int64(&c.Seed, "", "seed", "Seed for the random data")
	p.String(&c.Template, "t", "template", fmt.Sprintf("Settle the template on an empty field %v", templates))
	p.Bool(&c.Window, "w", "window", "Show the simulation in a window (ebiten build)")
	p.Int(&c.Scale, "", "scale", "Window pixels per cell")
	return p
}

//FromArgs builds the config from the command line args (without the binary name)
//with a config file the args are parsed once more on top of the file values,
//so a flag overrides the file only when it is actually given, booleans are turned off with --flag=false
//the returned parser is the one to show help with
func FromArgs(args []string, templates []string) (Config, *flaggy.Parser, error) {
	c := DefaultConfig()
	var configFile string
	p := NewParser(&c, &configFile, templates)
	if err := p.ParseArgs(args); err != nil {
		return c, p, err
	}
	if configFile == "" {
		return c, p, c.Validate()
	}

	fc, err := readConfig(configFile)
	if err != nil {
		return fc, p, err
	}
	if err := NewParser(&fc, &configFile, templates).ParseArgs(args); err != nil {
		return fc, p, err
	}
	return fc, p, fc.Validate()
}
