package scenario

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const solarBodies = 6

var (
	solarMasses = []float64{3000, 80, 60, 40, 30, 20}
	solarRadii  = []float64{40, 16, 14, 12, 10, 8}
	solarColors = []string{"#ffd700", "#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4", "#ffeead"}
)

// solar is a central body, two planets and three moons. It ignores n.
type solar struct {
	inner, outer         float64
	moonOffsets          [3]float64
	innerVel, outerVel   float64
	moonVel              [3]float64
	baseMass, multiplier float64
}

func newSolar() solar {
	return solar{
		inner:       0.35,
		outer:       0.65,
		moonOffsets: [3]float64{35, 40, -40},
		innerVel:    0.35,
		outerVel:    0.25,
		moonVel:     [3]float64{0.08, 0.06, 0.06},
		baseMass:    1000,
		multiplier:  0.008,
	}
}

func (s solar) Masses(int) []float64 { return append([]float64(nil), solarMasses...) }
func (s solar) Radii(int) []float64  { return append([]float64(nil), solarRadii...) }
func (s solar) Colors(int) []string  { return append([]string(nil), solarColors...) }

func (s solar) Positions(g Geometry, _ int) []r2.Vec {
	inner := g.CenterX + g.OrbitRadius*s.inner
	outer := g.CenterX + g.OrbitRadius*s.outer
	return []r2.Vec{
		{X: g.CenterX, Y: g.CenterY},
		{X: inner, Y: g.CenterY},
		{X: outer, Y: g.CenterY},
		{X: inner + s.moonOffsets[0], Y: g.CenterY},
		{X: outer + s.moonOffsets[1], Y: g.CenterY},
		{X: outer + s.moonOffsets[2], Y: g.CenterY},
	}
}

// Velocities are all along +Y. Moons add their offset velocity to the
// planet's; the third moon trails the outer planet.
func (s solar) Velocities(base float64, _ int) []r2.Vec {
	v1 := base * s.innerVel
	v2 := base * s.outerVel
	return []r2.Vec{
		{},
		{Y: v1},
		{Y: v2},
		{Y: v1 + base*s.moonVel[0]},
		{Y: v2 + base*s.moonVel[1]},
		{Y: v2 - base*s.moonVel[2]},
	}
}

func (s solar) BaseVelocity(orbitRadius, g float64) float64 {
	return math.Sqrt(g*s.baseMass/orbitRadius) * s.multiplier
}
