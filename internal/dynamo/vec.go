package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Finite reports whether x is neither NaN nor ±Inf.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FiniteVec reports whether both components of v are finite.
func FiniteVec(v r2.Vec) bool {
	return Finite(v.X) && Finite(v.Y)
}

// Zero is the zero vector returned by force laws on degenerate input.
var Zero = r2.Vec{}
