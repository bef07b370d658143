// Package experiment wires a config into a runnable simulation: it
// builds the scenario's bodies, picks the physics model and its
// parameters, seeds the random source and attaches diagnostics.
package experiment

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/exp/rand"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
)

type Experiment struct {
	cfg        config.Config
	log        logr.Logger
	registry   *Registry
	simulation *sim.Simulation
	model      physics.Model
	params     force.Params
	randSource *rand.Rand
}

// New copies cfg; later changes to the caller's config do not affect
// the experiment.
func New(cfg *config.Config, log logr.Logger) *Experiment {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Experiment{
		cfg:      *cfg,
		log:      log,
		registry: NewRegistry(),
	}
}

// Setup validates the config and builds the simulation. metricNames
// selects diagnostics by registry name; none selects the defaults.
func (e *Experiment) Setup(metricNames ...string) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	def, err := scenario.Default.Lookup(e.cfg.Scenario)
	if err != nil {
		return err
	}

	bodies, err := scenario.InitializeMasses(
		e.cfg.World.CenterX, e.cfg.World.CenterY, e.cfg.World.OrbitRadius,
		e.cfg.Scenario, e.cfg.Bodies, e.cfg.G,
	)
	if err != nil {
		return fmt.Errorf("initialize %s: %w", e.cfg.Scenario, err)
	}

	e.model = resolveModel(def, e.cfg.Model)
	e.params = def.ModelParams.Merge(e.cfg.ModelParams)
	e.randSource = rand.New(rand.NewSource(e.cfg.Seed))

	e.simulation = sim.New(bodies, e.model, sim.Options{
		G:         e.cfg.G,
		Softening: e.cfg.Softening,
		Params:    e.params,
		Rand:      e.randSource,
		Logger:    e.log,
	})

	if len(metricNames) == 0 {
		metricNames = e.registry.DefaultMetrics(e.model)
	}
	for _, name := range metricNames {
		m, err := e.registry.GetMetric(name, &e.cfg, e.model, e.params)
		if err != nil {
			return err
		}
		e.simulation.AddMetric(m)
	}

	e.log.Info("setup", "scenario", e.cfg.Scenario, "bodies", len(bodies),
		"model", string(e.model.Name()), "seed", e.cfg.Seed)
	return nil
}

// resolveModel lets a scenario's own tag win over the configured model.
func resolveModel(def *scenario.Definition, configured string) physics.Model {
	if def.PhysicsModel != "" {
		return physics.Get(string(def.PhysicsModel))
	}
	if configured != "" {
		return physics.Get(configured)
	}
	return physics.Default()
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulation == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	result, err := e.simulation.Run(ctx, sim.RunConfig{
		Dt:            e.cfg.Dt,
		Steps:         e.cfg.Steps,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	})
	if err != nil {
		return result, err
	}

	e.log.Info("run complete", "steps", result.StepsTaken, "frames", len(result.Frames))
	return result, nil
}

func (e *Experiment) Config() *config.Config { return &e.cfg }
func (e *Experiment) Model() physics.Model   { return e.model }
func (e *Experiment) Params() force.Params   { return e.params }

// Simulation returns the underlying simulation for adding observers or
// driving ticks directly.
func (e *Experiment) Simulation() *sim.Simulation {
	return e.simulation
}
