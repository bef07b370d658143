// Package sim advances a list of bodies under a physics model.
//
// A [Simulation] exclusively owns its bodies. One call to
// [Simulation.Step] is one tick: every unordered pair is evaluated once,
// the force is applied to the first body and its negation to the second,
// then every body is advanced exactly once. There is no internal clock;
// the host decides when to tick.
package sim

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Options struct {
	G         float64
	Softening float64
	Params    force.Params
	// Rand feeds stochastic models. A nil source falls back to the
	// process-wide source and the run is not reproducible.
	Rand   force.Source
	Logger logr.Logger
}

type Simulation struct {
	bodies    []*body.Mass
	model     physics.Model
	opts      Options
	log       logr.Logger
	t         float64
	steps     int
	metrics   []Metric
	observers []Observer
}

// New takes ownership of bodies. A nil model selects the newtonian one.
func New(bodies []*body.Mass, model physics.Model, opts Options) *Simulation {
	if model == nil {
		model = physics.Default()
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Simulation{
		bodies:    bodies,
		model:     model,
		opts:      opts,
		log:       log.WithValues("model", string(model.Name()), "bodies", len(bodies)),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Bodies returns the live body list. Callers must not retain it across
// a Reset.
func (s *Simulation) Bodies() []*body.Mass { return s.bodies }
func (s *Simulation) Model() physics.Model { return s.model }
func (s *Simulation) Options() Options     { return s.opts }
func (s *Simulation) Time() float64        { return s.t }
func (s *Simulation) Steps() int           { return s.steps }

// Reset replaces the body list and rewinds the clock.
func (s *Simulation) Reset(bodies []*body.Mass) {
	s.bodies = bodies
	s.t = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Step advances one tick and reports whether time moved. An invalid dt
// skips the tick entirely so no force is left in the accumulators.
func (s *Simulation) Step(dt float64) bool {
	if !body.ValidStep(dt) {
		return false
	}

	n := len(s.bodies)
	for i := 0; i < n; i++ {
		bi := s.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := s.bodies[j]
			f := s.model.Force(bi, bj, s.opts.G, s.opts.Softening, s.opts.Params, s.opts.Rand)
			bi.ApplyForce(f)
			bj.ApplyForce(r2.Scale(-1, f))
		}
	}

	for _, b := range s.bodies {
		b.Advance(dt)
	}

	s.t += dt
	s.steps++

	if v := s.log.V(2); v.Enabled() {
		v.Info("tick", "step", s.steps, "t", s.t)
	}
	return true
}

// Snapshot captures the current state of every body.
func (s *Simulation) Snapshot() Frame {
	frame := make(Frame, len(s.bodies))
	for i, b := range s.bodies {
		frame[i] = b.Snapshot()
	}
	return frame
}

// Finite reports whether every body is still in the finite domain.
func (s *Simulation) Finite() bool {
	for _, b := range s.bodies {
		if !b.Finite() {
			return false
		}
	}
	return true
}

// Run ticks cfg.Steps times, sampling frames and feeding metrics and
// observers after every tick. It stops early on context cancellation,
// returning the partial result together with ctx.Err().
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Steps/every+1),
		Times:   make([]float64, 0, cfg.Steps/every+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.bodies, s.t)
	}

	result.Frames = append(result.Frames, s.Snapshot())
	result.Times = append(result.Times, s.t)

	s.log.V(1).Info("run started", "steps", cfg.Steps, "dt", cfg.Dt)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt)
		result.StepsTaken++

		if cfg.ValidateState && !s.Finite() {
			s.collect(result)
			return result, &StepError{Step: s.steps, Time: s.t, Wrapped: dynamo.ErrNonFiniteState}
		}

		for _, m := range s.metrics {
			m.Observe(s.bodies, s.t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.bodies, s.t)
		}

		if (i+1)%every == 0 {
			result.Frames = append(result.Frames, s.Snapshot())
			result.Times = append(result.Times, s.t)
		}
	}

	s.collect(result)
	s.log.V(1).Info("run complete", "steps", result.StepsTaken, "t", s.t)
	return result, nil
}

func (s *Simulation) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateRunConfig(cfg RunConfig) error {
	if !body.ValidStep(cfg.Dt) {
		return fmt.Errorf("%w, got %f", dynamo.ErrInvalidStep, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
