package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/motion"
	"github.com/san-kum/maxwell/internal/sim"
)

// Experiment turns a run configuration into a ready session.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	session  *sim.Session
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// Setup validates the configuration, builds the field and the per-charge
// motions, and attaches metrics. With no metrics given, every registered
// metric is attached.
func (e *Experiment) Setup(diag dynamo.Diagnostics, metrics ...sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("config %q: %w", e.cfg.Name, err)
	}

	d := e.cfg.Domain
	f, err := field.New(d.XMax, d.YMax, d.NX, d.NY,
		field.WithBoundary(d.BoundaryCells()),
		field.WithDiagnostics(diag),
	)
	if err != nil {
		return err
	}

	motions := make([]motion.Motion, len(e.cfg.Charges))
	for i, q := range e.cfg.Charges {
		if motions[i], err = e.registry.GetMotion(q.Motion); err != nil {
			return fmt.Errorf("charge %d: %w", i, err)
		}
	}

	e.session = sim.New(f, e.cfg.ChargeSet(), motions)
	if len(metrics) == 0 {
		metrics = e.registry.DefaultMetrics(e.cfg)
	}
	for _, m := range metrics {
		e.session.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.session.Run(ctx, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	})
}

// Session returns the underlying session for adding observers.
func (e *Experiment) Session() *sim.Session {
	return e.session
}

func (e *Experiment) Config() *config.Config { return e.cfg }
