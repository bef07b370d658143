// Package body implements the simulated point mass and its
// semi-implicit Euler integration rule.
package body

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Mass is one simulated body. Pos and Vel are the kinematic state; acc
// accumulates force/mass between ticks and is zero at the start of every
// integration step.
type Mass struct {
	Mass   float64
	Radius float64
	Color  string
	Pos    r2.Vec
	Vel    r2.Vec

	acc r2.Vec
}

// New validates and constructs a body.
func New(mass, radius float64, color string, pos, vel r2.Vec) (*Mass, error) {
	if mass <= 0 || !dynamo.Finite(mass) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidMass, mass)
	}
	if radius < 0 || !dynamo.Finite(radius) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidRadius, radius)
	}
	if !dynamo.FiniteVec(pos) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidPosition, pos)
	}
	if !dynamo.FiniteVec(vel) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidVelocity, vel)
	}
	return &Mass{Mass: mass, Radius: radius, Color: color, Pos: pos, Vel: vel}, nil
}

// ApplyForce adds f/m to the acceleration accumulator. A force with a
// non-finite component is ignored.
func (m *Mass) ApplyForce(f r2.Vec) {
	if !dynamo.FiniteVec(f) {
		return
	}
	m.acc = r2.Add(m.acc, r2.Scale(1/m.Mass, f))
}

// Advance integrates one step of length dt: velocity first, then
// position from the updated velocity, then the accumulator is cleared.
// dt <= 0 or non-finite is a no-op, so paused loops may call it freely.
func (m *Mass) Advance(dt float64) {
	if !ValidStep(dt) {
		return
	}
	m.Vel = r2.Add(m.Vel, r2.Scale(dt, m.acc))
	m.Pos = r2.Add(m.Pos, r2.Scale(dt, m.Vel))
	m.acc = r2.Vec{}
}

// ValidStep reports whether dt advances time.
func ValidStep(dt float64) bool {
	return dt > 0 && dynamo.Finite(dt)
}

// Acceleration is the accumulated acceleration for the current tick.
func (m *Mass) Acceleration() r2.Vec { return m.acc }

// Speed2 is the squared speed |v|².
func (m *Mass) Speed2() float64 { return r2.Norm2(m.Vel) }

// Momentum is m·v.
func (m *Mass) Momentum() r2.Vec { return r2.Scale(m.Mass, m.Vel) }

// KineticEnergy is ½·m·|v|².
func (m *Mass) KineticEnergy() float64 { return 0.5 * m.Mass * m.Speed2() }

// Finite reports whether position and velocity are still finite.
func (m *Mass) Finite() bool {
	return dynamo.FiniteVec(m.Pos) && dynamo.FiniteVec(m.Vel)
}

// Clone returns an independent copy including the accumulator.
func (m *Mass) Clone() *Mass {
	c := *m
	return &c
}

// State is an immutable snapshot of a body for recording and display.
type State struct {
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
}

// Snapshot captures the body's current state.
func (m *Mass) Snapshot() State {
	return State{
		Mass:   m.Mass,
		Radius: m.Radius,
		Color:  m.Color,
		X:      m.Pos.X,
		Y:      m.Pos.Y,
		VX:     m.Vel.X,
		VY:     m.Vel.Y,
	}
}

// FromState rebuilds a detached body from a snapshot. The snapshot is
// trusted; use New to validate untrusted input.
func FromState(s State) *Mass {
	return &Mass{
		Mass:   s.Mass,
		Radius: s.Radius,
		Color:  s.Color,
		Pos:    r2.Vec{X: s.X, Y: s.Y},
		Vel:    r2.Vec{X: s.VX, Y: s.VY},
	}
}

func (m *Mass) String() string {
	return fmt.Sprintf("m: %.2f r: %.2f p: [%.2f, %.2f] v: [%.2f, %.2f]",
		m.Mass, m.Radius, m.Pos.X, m.Pos.Y, m.Vel.X, m.Vel.Y)
}
