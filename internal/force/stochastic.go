package force

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/dynamo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Global is the process-wide locked source used when no source is
// injected. Runs that must be reproducible inject a seeded *rand.Rand.
var Global Source = globalSource{}

// Stochastic perturbs the squared separation by (1 + u·rnd)² and, when
// the bodies overlap closer than half their summed radii, scales the
// magnitude by (1 − tunneling).
func Stochastic(a, b *body.Mass, g, softening, uncertainty, tunneling float64, rnd Source) r2.Vec {
	if a == nil || b == nil {
		return dynamo.Zero
	}
	if !positive(g) || !positive(softening) {
		return dynamo.Zero
	}
	if rnd == nil {
		rnd = Global
	}

	d := r2.Sub(b.Pos, a.Pos)
	distSq := r2.Norm2(d)
	if distSq == 0 || !dynamo.Finite(distSq) {
		return dynamo.Zero
	}
	dist := math.Sqrt(distSq)

	u := 1 + uncertainty*rnd.Float64()
	effSq := distSq * u * u

	attenuation := 1.0
	if dist < (a.Radius+b.Radius)*0.5 {
		attenuation = 1 - tunneling
	}

	mag := g * (a.Mass * b.Mass) * attenuation / (effSq + softening*softening)
	return along(d, dist, mag)
}
