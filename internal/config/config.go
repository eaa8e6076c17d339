package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const (
	DefaultXMax     = 800.0
	DefaultYMax     = 600.0
	DefaultNX       = 64
	DefaultNY       = 48
	DefaultDt       = 1.0
	DefaultDuration = 400.0
)

// DefaultLevels are equipotentials suited to unit charges in a domain
// measured in pixels.
var DefaultLevels = []float64{-800, -400, -200, -100, 100, 200, 400, 800}

type Config struct {
	Name     string         `yaml:"name"`
	Domain   DomainConfig   `yaml:"domain"`
	Dt       float64        `yaml:"dt"`
	Duration float64        `yaml:"duration"`
	Charges  []ChargeConfig `yaml:"charges"`
	Levels   []float64      `yaml:"levels"`
	Probe    ProbeConfig    `yaml:"probe"`
}

type DomainConfig struct {
	XMax float64 `yaml:"x_max"`
	YMax float64 `yaml:"y_max"`
	NX   int     `yaml:"nx"`
	NY   int     `yaml:"ny"`
	// Boundary is the absorbing layer width in cells; 0 means nx/8.
	Boundary int `yaml:"boundary,omitempty"`
}

type ChargeConfig struct {
	X      float64      `yaml:"x"`
	Y      float64      `yaml:"y"`
	Charge float64      `yaml:"charge"`
	Motion MotionConfig `yaml:"motion,omitempty"`
}

// MotionConfig names a motion and carries the union of its parameters.
type MotionConfig struct {
	Type      string           `yaml:"type,omitempty"`
	CX        float64          `yaml:"cx,omitempty"`
	CY        float64          `yaml:"cy,omitempty"`
	Radius    float64          `yaml:"radius,omitempty"`
	Omega     float64          `yaml:"omega,omitempty"`
	Phase     float64          `yaml:"phase,omitempty"`
	AX        float64          `yaml:"ax,omitempty"`
	AY        float64          `yaml:"ay,omitempty"`
	Waypoints []WaypointConfig `yaml:"waypoints,omitempty"`
}

type WaypointConfig struct {
	T float64 `yaml:"t"`
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ProbeConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "dipole",
		Domain: DomainConfig{
			XMax: DefaultXMax,
			YMax: DefaultYMax,
			NX:   DefaultNX,
			NY:   DefaultNY,
		},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Charges: []ChargeConfig{
			{X: 300, Y: 300, Charge: 1},
			{X: 500, Y: 300, Charge: -1},
		},
		Levels: append([]float64(nil), DefaultLevels...),
		Probe:  ProbeConfig{X: 400, Y: 450},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks what the solver would otherwise only report as a
// diagnostic at run time.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Dt > 0) {
		errs = append(errs, fmt.Errorf("dt must be positive, got %g", c.Dt))
	}
	if !(c.Duration > 0) {
		errs = append(errs, fmt.Errorf("duration must be positive, got %g", c.Duration))
	}
	d := c.Domain
	if !(d.XMax > 0) || !(d.YMax > 0) || d.NX <= 0 || d.NY <= 0 {
		errs = append(errs, fmt.Errorf("%w: domain %gx%g with %dx%d cells", dynamo.ErrInvalidGeometry, d.XMax, d.YMax, d.NX, d.NY))
	}
	for i, q := range c.Charges {
		if q.X < 0 || q.X > d.XMax || q.Y < 0 || q.Y > d.YMax {
			errs = append(errs, fmt.Errorf("charge %d at (%g, %g) lies outside the domain", i, q.X, q.Y))
		}
	}
	return errors.Join(errs...)
}

// ChargeSet returns the resting charges.
func (c *Config) ChargeSet() []dynamo.Charge {
	out := make([]dynamo.Charge, len(c.Charges))
	for i, q := range c.Charges {
		out[i] = dynamo.Charge{X: q.X, Y: q.Y, Strength: q.Charge}
	}
	return out
}

// BoundaryCells resolves the absorbing layer width.
func (d DomainConfig) BoundaryCells() int {
	if d.Boundary > 0 {
		return d.Boundary
	}
	return d.NX / 8
}
