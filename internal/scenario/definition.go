// Package scenario holds the named initial-condition definitions, the
// registry that resolves them and the builder that turns one into a
// list of bodies.
//
// A definition is plain data plus a [Generator]. Generators are pure:
// the same arguments always produce the same arrays, and every array
// they return for a given n has the same length.
package scenario

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultN is the body count used when a caller does not ask for one.
const DefaultN = 3

// Parameter is one entry of a scenario's parameter schema.
type Parameter struct {
	Name    string `json:"name" yaml:"name"`
	Default int    `json:"default" yaml:"default"`
	Min     int    `json:"min" yaml:"min"`
	Max     int    `json:"max" yaml:"max"`
}

// Geometry locates a scenario on the canvas.
type Geometry struct {
	CenterX     float64
	CenterY     float64
	OrbitRadius float64
}

type Generator interface {
	Masses(n int) []float64
	Radii(n int) []float64
	Colors(n int) []string
	Positions(g Geometry, n int) []r2.Vec
	Velocities(base float64, n int) []r2.Vec
	BaseVelocity(orbitRadius, g float64) float64
}

type Definition struct {
	Key         string
	Description string
	RequiresN   bool
	Parameters  []Parameter
	Generator   Generator

	// PhysicsModel is empty when the scenario leaves the choice to the
	// host.
	PhysicsModel physics.Name
	ModelParams  force.Params
}

// Parameter returns the schema entry with the given name.
func (d *Definition) Parameter(name string) (Parameter, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// BodyCount resolves a requested n. Zero selects the schema default and
// fixed scenarios always use theirs. Other counts pass through
// unchanged; range checks belong to the caller.
func (d *Definition) BodyCount(n int) (int, error) {
	def := DefaultN
	if p, ok := d.Parameter("n"); ok && p.Default > 0 {
		def = p.Default
	}
	if !d.RequiresN || n == 0 {
		return def, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: body count %d", dynamo.ErrInvalidScenarioData, n)
	}
	return n, nil
}
