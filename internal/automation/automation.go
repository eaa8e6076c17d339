// Package automation runs scripted batches of simulations.
package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. It starts from a preset or a config file
// and overrides any settings given in Params.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Params map[string]float64 `yaml:"params"`
	// SaveAs names the stored run; empty steps are not saved.
	SaveAs string `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

func (s ScenarioStep) resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		return nil, fmt.Errorf("step needs a preset or a config")
	}

	for name, v := range s.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// Runner carries what every run in a batch shares.
type Runner struct {
	Diagnostics dynamo.Diagnostics
	// Store, if set, receives the steps that ask to be saved.
	Store *storage.Store
	// Out receives progress lines.
	Out io.Writer
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

func (r *Runner) run(ctx context.Context, cfg *config.Config) (*experiment.Experiment, *sim.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(r.Diagnostics); err != nil {
		return nil, nil, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return exp, result, nil
}

// RunScenario executes all steps in a scenario
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		r.printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		exp, result, err := r.run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if step.SaveAs != "" && r.Store != nil {
			contours := exp.Session().Field().ContoursAtLevels(cfg.Levels)
			id, err := r.Store.Save(cfg, result, contours)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			r.printf("  saved as %s\n", id)
		}

		results = append(results, result)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Base *config.Config
	// Perturbation is the largest shift applied to each resting charge
	// coordinate.
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID int
	Charges []dynamo.Charge
	Drift   float64
	Stable  bool // fields stayed finite and bounded
}

// RunMonteCarlo runs the base configuration repeatedly with its resting
// charges randomly displaced, clamped to the domain.
func (r *Runner) RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := cfg.Base.Clone()
		d := trialCfg.Domain
		for i := range trialCfg.Charges {
			q := &trialCfg.Charges[i]
			q.X = clamp(q.X+(rng.Float64()-0.5)*2*cfg.Perturbation, 0, d.XMax)
			q.Y = clamp(q.Y+(rng.Float64()-0.5)*2*cfg.Perturbation, 0, d.YMax)
		}

		_, result, err := r.run(ctx, trialCfg)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			Charges: trialCfg.ChargeSet(),
			Drift:   result.Metrics["energy_drift"],
			Stable:  len(result.Errors) == 0 && result.Metrics["stability"] == 1,
		})

		if (trial+1)%10 == 0 {
			r.printf("Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
