package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// MetricFactory builds a fresh metric for one run.
type MetricFactory func(cfg *config.Config, model physics.Model, params force.Params) sim.Metric

type Registry struct {
	metrics map[string]MetricFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]MetricFactory),
	}

	r.metrics["energy"] = func(cfg *config.Config, _ physics.Model, _ force.Params) sim.Metric {
		return metrics.NewEnergy(cfg.G, cfg.Softening)
	}
	r.metrics["energy_drift"] = func(cfg *config.Config, _ physics.Model, _ force.Params) sim.Metric {
		return metrics.NewEnergyDrift(cfg.G, cfg.Softening)
	}
	r.metrics["momentum_drift"] = func(*config.Config, physics.Model, force.Params) sim.Metric {
		return metrics.NewMomentumDrift()
	}
	r.metrics["mean_gamma"] = func(_ *config.Config, model physics.Model, params force.Params) sim.Metric {
		return metrics.NewMeanGamma(model, params)
	}
	r.metrics["stability"] = func(cfg *config.Config, _ physics.Model, _ force.Params) sim.Metric {
		return metrics.NewStability(4 * cfg.World.OrbitRadius)
	}

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config, model physics.Model, params force.Params) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg, model, params), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the diagnostic set attached when a run names none.
// Gamma is only tracked for models that correct for velocity.
func (r *Registry) DefaultMetrics(model physics.Model) []string {
	names := []string{"energy_drift", "momentum_drift", "stability"}
	if model.AppliesRelativisticEffects() {
		names = append(names, "mean_gamma")
	}
	return names
}
