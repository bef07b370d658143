package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ring places n equal bodies evenly on a circle with tangential
// velocities of equal magnitude.
type ring struct {
	mass               float64
	radius             float64
	saturation         int
	lightness          int
	velocityMultiplier float64
}

func newRing(velocityMultiplier float64) ring {
	return ring{
		mass:               1000,
		radius:             20,
		saturation:         70,
		lightness:          60,
		velocityMultiplier: velocityMultiplier,
	}
}

func (r ring) Masses(n int) []float64 { return fill(n, r.mass) }
func (r ring) Radii(n int) []float64  { return fill(n, r.radius) }

func (r ring) Colors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		hue := math.Mod(float64(i)*360/float64(n), 360)
		colors[i] = fmt.Sprintf("hsl(%v, %d%%, %d%%)", hue, r.saturation, r.lightness)
	}
	return colors
}

func (r ring) Positions(g Geometry, n int) []r2.Vec {
	positions := make([]r2.Vec, n)
	for i := range positions {
		angle := float64(i) * 2 * math.Pi / float64(n)
		positions[i] = r2.Vec{
			X: g.CenterX + g.OrbitRadius*math.Cos(angle),
			Y: g.CenterY + g.OrbitRadius*math.Sin(angle),
		}
	}
	return positions
}

func (r ring) Velocities(base float64, n int) []r2.Vec {
	velocities := make([]r2.Vec, n)
	for i := range velocities {
		angle := float64(i)*2*math.Pi/float64(n) + math.Pi/2
		velocities[i] = r2.Vec{X: base * math.Cos(angle), Y: base * math.Sin(angle)}
	}
	return velocities
}

func (r ring) BaseVelocity(orbitRadius, g float64) float64 {
	return math.Sqrt(g*r.mass/orbitRadius) * r.velocityMultiplier
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
