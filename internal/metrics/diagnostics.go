// Package metrics computes conserved-quantity diagnostics over a body
// list and provides [sim.Metric] implementations that track them
// during a run.
package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

func KineticEnergy(bodies []*body.Mass) float64 {
	ke := make([]float64, len(bodies))
	for i, b := range bodies {
		ke[i] = b.KineticEnergy()
	}
	return floats.Sum(ke)
}

// PotentialEnergy is the pairwise potential whose gradient is the
// softened classical force G·m1·m2/(d²+S²):
//
//	U(d) = -G·m1·m2·(π/2 - atan(d/S))/S
//
// which tends to -G·m1·m2/d as S goes to zero.
func PotentialEnergy(bodies []*body.Mass, g, softening float64) float64 {
	var pe float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			pe += pairPotential(bodies[i], bodies[j], g, softening)
		}
	}
	return pe
}

func pairPotential(a, b *body.Mass, g, softening float64) float64 {
	d := r2.Norm(r2.Sub(b.Pos, a.Pos))
	gm := g * (a.Mass * b.Mass)
	if softening <= 0 {
		if d == 0 {
			return 0
		}
		return -gm / d
	}
	return -gm * (math.Pi/2 - math.Atan(d/softening)) / softening
}

func TotalEnergy(bodies []*body.Mass, g, softening float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g, softening)
}

func Momentum(bodies []*body.Mass) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, b.Momentum())
	}
	return p
}

// AngularMomentum is the z component of Σ m·(r - origin) × v.
func AngularMomentum(bodies []*body.Mass, origin r2.Vec) float64 {
	l := make([]float64, len(bodies))
	for i, b := range bodies {
		r := r2.Sub(b.Pos, origin)
		l[i] = b.Mass * r2.Cross(r, b.Vel)
	}
	return floats.Sum(l)
}

func CenterOfMass(bodies []*body.Mass) r2.Vec {
	if len(bodies) == 0 {
		return r2.Vec{}
	}
	masses := make([]float64, len(bodies))
	var weighted r2.Vec
	for i, b := range bodies {
		masses[i] = b.Mass
		weighted = r2.Add(weighted, r2.Scale(b.Mass, b.Pos))
	}
	return r2.Scale(1/floats.Sum(masses), weighted)
}
