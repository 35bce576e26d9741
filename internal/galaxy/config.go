package galaxy

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"galaxy-fx/internal/core"

	"gopkg.in/yaml.v3"
)

// MaxDimension bounds Width and Height so every legal coordinate stays below
// the 0xFFFF wire sentinel.
const MaxDimension = 0xFFFF

// ErrInvalidConfig is returned by Validate for unusable run parameters.
var ErrInvalidConfig = errors.New("invalid galaxy config")

// Rounding selects how continuous screen coordinates become integers.
type Rounding string

const (
	// RoundFloor rounds toward negative infinity.
	RoundFloor Rounding = "floor"
	// RoundTruncate rounds toward zero, matching streams produced by the
	// legacy generator.
	RoundTruncate Rounding = "truncate"
)

// String implements flag.Value.
func (r *Rounding) String() string {
	if r == nil || *r == "" {
		return string(RoundFloor)
	}
	return string(*r)
}

// Set implements flag.Value.
func (r *Rounding) Set(v string) error {
	switch Rounding(v) {
	case RoundFloor, RoundTruncate:
		*r = Rounding(v)
		return nil
	}
	return fmt.Errorf("unknown rounding %q (want %q or %q)", v, RoundFloor, RoundTruncate)
}

// Config holds the fixed parameters of one precomputation run.
type Config struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	N        int      `yaml:"n"`
	Frames   int      `yaml:"frames"`
	Output   string   `yaml:"output"`
	TimeStep float64  `yaml:"timeStep"`
	Rounding Rounding `yaml:"rounding"`

	// Initial is the recurrence state at frame 0.
	Initial State `yaml:"initial"`
}

// DefaultConfig returns the standard 320x180 effect with a 125x125 grid.
func DefaultConfig() Config {
	return Config{
		Width:    320,
		Height:   180,
		N:        125,
		Frames:   600,
		Output:   "galaxy_frames.bin",
		TimeStep: 0.1,
		Rounding: RoundFloor,
	}
}

// Params returns the per-particle parameters consumed by Step.
func (c Config) Params() Params {
	return Params{N: c.N, Width: c.Width, Height: c.Height, Rounding: c.Rounding}
}

// Size returns the screen dimensions.
func (c Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// Particles returns the number of particles simulated per frame.
func (c Config) Particles() int { return c.N * c.N }

// Validate reports whether the configuration can drive a run.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Width > MaxDimension || c.Height > MaxDimension:
		return fmt.Errorf("%w: screen %dx%d collides with the absent-position sentinel", ErrInvalidConfig, c.Width, c.Height)
	case c.N <= 0:
		return fmt.Errorf("%w: grid size %d must be positive", ErrInvalidConfig, c.N)
	case c.Frames < 0:
		return fmt.Errorf("%w: frame count %d must not be negative", ErrInvalidConfig, c.Frames)
	case math.IsNaN(c.TimeStep) || math.IsInf(c.TimeStep, 0):
		return fmt.Errorf("%w: time step %v must be finite", ErrInvalidConfig, c.TimeStep)
	case c.Rounding != RoundFloor && c.Rounding != RoundTruncate:
		return fmt.Errorf("%w: unknown rounding %q", ErrInvalidConfig, c.Rounding)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "screen width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "screen height in pixels")
	fs.IntVar(&c.N, "n", c.N, "particle grid size (n*n particles)")
	fs.IntVar(&c.Frames, "frames", c.Frames, "number of frames to generate")
	fs.StringVar(&c.Output, "o", c.Output, "output stream path")
	fs.Float64Var(&c.TimeStep, "dt", c.TimeStep, "time advance per frame")
	fs.Var(&c.Rounding, "rounding", "coordinate rounding: floor or truncate")
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overrides fields from flag-style key/value pairs. Unparseable or
// out-of-range values are ignored.
func (c *Config) Apply(cfg map[string]string) {
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.N = parsed
		}
	}
	if v, ok := cfg["frames"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Frames = parsed
		}
	}
	if v, ok := cfg["output"]; ok && v != "" {
		c.Output = v
	}
	if v, ok := cfg["o"]; ok && v != "" {
		c.Output = v
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.TimeStep = parsed
		}
	}
	if v, ok := cfg["rounding"]; ok {
		_ = c.Rounding.Set(v)
	}
}

// LoadFile reads a YAML config. Keys missing from the file keep their
// DefaultConfig values.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read galaxy config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse galaxy config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Parameters exposes the run configuration as a presentation snapshot.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Screen",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
			},
		},
		{
			Name: "Field",
			Params: []core.Parameter{
				core.IntParam("n", "Grid size", c.N),
				core.IntParam("frames", "Frames", c.Frames),
				core.FloatParam("dt", "Time step", c.TimeStep),
				core.StringParam("rounding", "Rounding", c.Rounding.String()),
			},
		},
		{
			Name: "Output",
			Params: []core.Parameter{
				core.StringParam("output", "Output", c.Output),
			},
		},
	}}
}
