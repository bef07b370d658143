// Package optim sweeps config parameters to find the setting that
// minimizes a diagnostic.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

var ErrNoFeasible = errors.New("optim: no parameter combination produced a result")

// Parameters lists the names accepted by Apply.
var Parameters = []string{
	"bodies",
	"dt",
	"g",
	"quantum_uncertainty",
	"relativistic_factor",
	"softening",
	"tunneling_probability",
}

// Apply sets the named parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	switch name {
	case "g":
		cfg.G = v
	case "dt":
		cfg.Dt = v
	case "softening":
		cfg.Softening = v
	case "bodies":
		cfg.Bodies = int(v)
	case "relativistic_factor":
		cfg.ModelParams.RelativisticFactor = v
	case "quantum_uncertainty":
		cfg.ModelParams.QuantumUncertainty = v
	case "tunneling_probability":
		cfg.ModelParams.TunnelingProbability = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

type BuildFunc func(params map[string]float64) (*experiment.Experiment, error)

// Builder returns a BuildFunc that applies each combination to a copy of
// base and sets up an experiment with the given metrics.
func Builder(base *config.Config, log logr.Logger, metricNames ...string) BuildFunc {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for name, v := range params {
			if err := Apply(&cfg, name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(&cfg, log)
		if err := exp.Setup(metricNames...); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination of the grid and returns the one with the
// lowest value of metricName. Combinations that fail to build or run are
// skipped.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoFeasible
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < *best || *bestParams == nil {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, metricName, best, bestParams)
	}
}
