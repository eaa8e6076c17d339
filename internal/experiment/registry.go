package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/metrics"
	"github.com/san-kum/maxwell/internal/motion"
	"github.com/san-kum/maxwell/internal/sim"
)

type Registry struct {
	motions map[string]func(config.MotionConfig) motion.Motion
	metrics map[string]func(*config.Config) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		motions: make(map[string]func(config.MotionConfig) motion.Motion),
		metrics: make(map[string]func(*config.Config) sim.Metric),
	}

	r.motions["static"] = func(config.MotionConfig) motion.Motion { return motion.Static{} }
	r.motions["orbit"] = func(m config.MotionConfig) motion.Motion {
		return motion.Orbit{CX: m.CX, CY: m.CY, Radius: m.Radius, Omega: m.Omega, Phase: m.Phase}
	}
	r.motions["oscillate"] = func(m config.MotionConfig) motion.Motion {
		return motion.Oscillate{AX: m.AX, AY: m.AY, Omega: m.Omega, Phase: m.Phase}
	}
	r.motions["drag"] = func(m config.MotionConfig) motion.Motion {
		wps := make([]motion.Waypoint, len(m.Waypoints))
		for i, w := range m.Waypoints {
			wps[i] = motion.Waypoint{T: w.T, X: w.X, Y: w.Y}
		}
		return motion.NewDrag(wps...)
	}

	r.metrics["field_energy"] = func(*config.Config) sim.Metric { return metrics.NewFieldEnergy() }
	r.metrics["energy_drift"] = func(*config.Config) sim.Metric { return metrics.NewEnergyDrift() }
	r.metrics["gauss_residual"] = func(*config.Config) sim.Metric { return metrics.NewGaussResidual() }
	r.metrics["stability"] = func(*config.Config) sim.Metric { return metrics.NewStability(1e6) }
	r.metrics["charge_travel"] = func(*config.Config) sim.Metric { return metrics.NewChargeTravel() }
	r.metrics["probe"] = func(c *config.Config) sim.Metric {
		return metrics.NewProbe(field.MagZ, c.Probe.X, c.Probe.Y)
	}

	return r
}

// GetMotion builds the motion a charge config asks for. An empty type is
// static.
func (r *Registry) GetMotion(m config.MotionConfig) (motion.Motion, error) {
	name := m.Type
	if name == "" {
		name = "static"
	}
	fn, ok := r.motions[name]
	if !ok {
		return nil, fmt.Errorf("unknown motion: %s", m.Type)
	}
	return fn(m), nil
}

func (r *Registry) GetMetric(name string, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg), nil
}

func (r *Registry) ListMotions() []string { return sortedKeys(r.motions) }
func (r *Registry) ListMetrics() []string { return sortedKeys(r.metrics) }

// DefaultMetrics returns one of every registered metric.
func (r *Registry) DefaultMetrics(cfg *config.Config) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](cfg))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
