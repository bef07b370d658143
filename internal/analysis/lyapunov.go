package analysis

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

type LyapunovConfig struct {
	Dt           float64
	Steps        int
	Perturbation float64
	// RenormEvery is the number of ticks between renormalizations of
	// the separation back to Perturbation.
	RenormEvery int
	// Seed drives both trajectories of stochastic models so that they
	// see the same draws.
	Seed uint64
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{
		Dt:           0.1,
		Steps:        2000,
		Perturbation: 1e-6,
		RenormEvery:  10,
		Seed:         1,
	}
}

// LyapunovExponent estimates the largest Lyapunov exponent of bodies
// under model by trajectory separation:
//
//	λ ≈ (1/T) Σ ln(|δ(tₖ)| / δ₀)
//
// The separation is measured in the phase space of all positions and
// velocities and renormalized to δ₀ every cfg.RenormEvery ticks. The
// caller's bodies are not modified.
func LyapunovExponent(bodies []*body.Mass, model physics.Model, opts sim.Options, cfg LyapunovConfig) (float64, error) {
	if len(bodies) == 0 {
		return 0, fmt.Errorf("no bodies")
	}
	if !body.ValidStep(cfg.Dt) {
		return 0, fmt.Errorf("invalid dt: %v", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return 0, fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Perturbation <= 0 || math.IsInf(cfg.Perturbation, 0) {
		return 0, fmt.Errorf("perturbation must be a positive finite number, got %v", cfg.Perturbation)
	}
	every := cfg.RenormEvery
	if every < 1 {
		every = 1
	}
	d0 := cfg.Perturbation

	reference := clone(bodies)
	perturbed := clone(bodies)
	perturbed[0].Pos.X += d0

	refOpts, pertOpts := opts, opts
	refOpts.Rand = rand.New(rand.NewSource(cfg.Seed))
	pertOpts.Rand = rand.New(rand.NewSource(cfg.Seed))

	a := sim.New(reference, model, refOpts)
	b := sim.New(perturbed, model, pertOpts)

	sumLog := 0.0
	elapsed := 0.0
	for i := 1; i <= cfg.Steps; i++ {
		a.Step(cfg.Dt)
		b.Step(cfg.Dt)
		elapsed += cfg.Dt

		if i%every != 0 && i != cfg.Steps {
			continue
		}

		sep := separation(reference, perturbed)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("separation degenerate at step %d", i)
		}
		sumLog += math.Log(sep / d0)
		renormalize(reference, perturbed, d0/sep)
	}

	return sumLog / elapsed, nil
}

func clone(bodies []*body.Mass) []*body.Mass {
	out := make([]*body.Mass, len(bodies))
	for i, b := range bodies {
		out[i] = b.Clone()
	}
	return out
}

func separation(a, b []*body.Mass) float64 {
	sum := 0.0
	for i := range a {
		dx := b[i].Pos.X - a[i].Pos.X
		dy := b[i].Pos.Y - a[i].Pos.Y
		dvx := b[i].Vel.X - a[i].Vel.X
		dvy := b[i].Vel.Y - a[i].Vel.Y
		sum += dx*dx + dy*dy + dvx*dvx + dvy*dvy
	}
	return math.Sqrt(sum)
}

// renormalize pulls the perturbed trajectory back toward the reference
// along the current separation.
func renormalize(ref, pert []*body.Mass, scale float64) {
	for i := range pert {
		pert[i].Pos.X = ref[i].Pos.X + (pert[i].Pos.X-ref[i].Pos.X)*scale
		pert[i].Pos.Y = ref[i].Pos.Y + (pert[i].Pos.Y-ref[i].Pos.Y)*scale
		pert[i].Vel.X = ref[i].Vel.X + (pert[i].Vel.X-ref[i].Vel.X)*scale
		pert[i].Vel.Y = ref[i].Vel.Y + (pert[i].Vel.Y-ref[i].Vel.Y)*scale
	}
}
