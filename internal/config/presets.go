package config

import "sort"

func preset(name string, duration float64, charges ...ChargeConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Duration = duration
	cfg.Charges = charges
	return cfg
}

var Presets = map[string]*Config{
	"single": preset("single", 100,
		ChargeConfig{X: 400, Y: 300, Charge: 1},
	),
	"dipole": preset("dipole", 200,
		ChargeConfig{X: 300, Y: 300, Charge: 1},
		ChargeConfig{X: 500, Y: 300, Charge: -1},
	),
	"quadrupole": preset("quadrupole", 200,
		ChargeConfig{X: 300, Y: 200, Charge: 1},
		ChargeConfig{X: 500, Y: 200, Charge: -1},
		ChargeConfig{X: 500, Y: 400, Charge: 1},
		ChargeConfig{X: 300, Y: 400, Charge: -1},
	),
	"orbit": preset("orbit", 800,
		ChargeConfig{X: 400, Y: 300, Charge: -1},
		ChargeConfig{X: 500, Y: 300, Charge: 1, Motion: MotionConfig{Type: "orbit", CX: 400, CY: 300, Radius: 100, Omega: 0.004}},
	),
	"oscillator": preset("oscillator", 600,
		ChargeConfig{X: 400, Y: 300, Charge: 1, Motion: MotionConfig{Type: "oscillate", AY: 40, Omega: 0.01}},
	),
	"drag": preset("drag", 400,
		ChargeConfig{X: 200, Y: 300, Charge: 1, Motion: MotionConfig{Type: "drag", Waypoints: []WaypointConfig{
			{T: 0, X: 200, Y: 300},
			{T: 200, X: 400, Y: 300},
			{T: 400, X: 400, Y: 450},
		}}},
		ChargeConfig{X: 600, Y: 300, Charge: -1},
	),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Levels = append([]float64(nil), c.Levels...)
	out.Charges = make([]ChargeConfig, len(c.Charges))
	for i, q := range c.Charges {
		q.Motion.Waypoints = append([]WaypointConfig(nil), q.Motion.Waypoints...)
		out.Charges[i] = q
	}
	return &out
}
