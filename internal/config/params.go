package config

import (
	"fmt"
	"math"
	"sort"
)

var params = map[string]func(c *Config, v float64){
	"dt":       func(c *Config, v float64) { c.Dt = v },
	"duration": func(c *Config, v float64) { c.Duration = v },
	"x_max":    func(c *Config, v float64) { c.Domain.XMax = v },
	"y_max":    func(c *Config, v float64) { c.Domain.YMax = v },
	"nx":       func(c *Config, v float64) { c.Domain.NX = int(math.Round(v)) },
	"ny":       func(c *Config, v float64) { c.Domain.NY = int(math.Round(v)) },
	"boundary": func(c *Config, v float64) { c.Domain.Boundary = int(math.Round(v)) },
	"probe_x":  func(c *Config, v float64) { c.Probe.X = v },
	"probe_y":  func(c *Config, v float64) { c.Probe.Y = v },
}

// SetParam sets a numeric setting by name. Cell counts are rounded.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
	}
	set(c, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
