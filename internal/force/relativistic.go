package force

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Gamma is the capped Lorentz-like factor 1/√(1 − k·|v|²). It returns 1
// for k <= 0 or non-finite, and when the radicand is not positive (or
// not finite), so the result is never below 1.
func Gamma(v r2.Vec, k float64) float64 {
	if k <= 0 || !dynamo.Finite(k) {
		return 1
	}
	arg := 1 - k*r2.Norm2(v)
	if arg > 0 && dynamo.Finite(arg) {
		return 1 / math.Sqrt(arg)
	}
	return 1
}

// VelocityCorrected applies the classical law to masses scaled by each
// body's gamma factor, with the softening widened at high speed.
func VelocityCorrected(a, b *body.Mass, g, softening, k float64) r2.Vec {
	if a == nil || b == nil {
		return dynamo.Zero
	}

	v1, v2 := a.Speed2(), b.Speed2()
	m1 := a.Mass * Gamma(a.Vel, k)
	m2 := b.Mass * Gamma(b.Vel, k)

	return base(a, b, g, m1, m2, softening+speedSoftening(v1, v2))
}

func speedSoftening(v1Sq, v2Sq float64) float64 {
	return math.Max(0, (math.Max(v1Sq, v2Sq)-SpeedSofteningThreshold)*SpeedSofteningRate)
}
