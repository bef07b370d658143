package force

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Classical returns the softened Newtonian attraction of b on a.
func Classical(a, b *body.Mass, g, softening float64) r2.Vec {
	if a == nil || b == nil {
		return dynamo.Zero
	}
	return base(a, b, g, a.Mass, b.Mass, softening)
}

// base applies G·m1·m2 / (d² + S²) along the unit vector from a to b
// using the supplied effective masses and softening.
func base(a, b *body.Mass, g, m1, m2, softening float64) r2.Vec {
	if !positive(g) || !positive(softening) {
		return dynamo.Zero
	}

	d := r2.Sub(b.Pos, a.Pos)
	distSq := r2.Norm2(d)
	if distSq == 0 || !dynamo.Finite(distSq) {
		return dynamo.Zero
	}
	dist := math.Sqrt(distSq)

	mag := g * (m1 * m2) / (distSq + softening*softening)
	return along(d, dist, mag)
}

// along scales the direction d (of length dist) to magnitude mag,
// collapsing to zero if any stage is degenerate.
func along(d r2.Vec, dist, mag float64) r2.Vec {
	if mag == 0 || !dynamo.Finite(mag) {
		return dynamo.Zero
	}
	f := r2.Scale(mag/dist, d)
	if !dynamo.FiniteVec(f) {
		return dynamo.Zero
	}
	return f
}

func positive(x float64) bool {
	return x > 0 && dynamo.Finite(x)
}
