// Package optim searches run settings for the values that minimise a metric.
package optim

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/experiment"
)

// Point is one evaluated combination of parameters.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Builder turns a parameter combination into a ready experiment.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// ConfigBuilder applies each combination to a copy of base.
func ConfigBuilder(base *config.Config, diag dynamo.Diagnostics) Builder {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(cfg)
		if err := exp.Setup(diag); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

// Search runs every combination in the grid and returns the one with the
// smallest value of metricName, along with every point evaluated. Points
// that fail to build or run are kept with their error.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var points []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams, &points)
	if err != nil {
		return nil, 0, points, err
	}
	if bestParams == nil {
		return nil, 0, points, fmt.Errorf("no combination produced %s", metricName)
	}

	return bestParams, best, points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	points *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		p := Point{Params: maps.Clone(current), Value: math.NaN()}
		defer func() { *points = append(*points, p) }()

		exp, err := build(current)
		if err != nil {
			p.Err = err
			return nil
		}

		result, err := exp.Run(ctx)
		if err != nil {
			p.Err = err
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			p.Err = fmt.Errorf("metric %s not recorded", metricName)
			return nil
		}
		p.Value = val
		if val < *best {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := maps.Clone(current)
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, metricName, best, bestParams, points); err != nil {
			return err
		}
	}
	return nil
}
