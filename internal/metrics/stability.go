package metrics

import (
	"github.com/san-kum/gravsim/internal/body"
	"gonum.org/v1/gonum/spatial/r2"
)

// Stability is the fraction of observed ticks in which every body
// stayed within radius of the center of mass.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(bodies []*body.Mass, t float64) {
	s.samples++
	com := CenterOfMass(bodies)
	for _, b := range bodies {
		if r2.Norm(r2.Sub(b.Pos, com)) > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
