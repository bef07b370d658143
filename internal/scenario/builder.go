package scenario

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// InitializeMasses builds the bodies of a scenario from the default
// registry.
func InitializeMasses(centerX, centerY, orbitRadius float64, key string, n int, g float64) ([]*body.Mass, error) {
	return Default.Build(Geometry{CenterX: centerX, CenterY: centerY, OrbitRadius: orbitRadius}, key, n, g)
}

// Build resolves key, materializes the generator arrays for n and
// constructs one body per entry. Nothing is returned on failure; the
// builder never drops or pads bodies.
func (r *Registry) Build(geo Geometry, key string, n int, g float64) ([]*body.Mass, error) {
	if !dynamo.Finite(geo.CenterX) || !dynamo.Finite(geo.CenterY) || !dynamo.Finite(geo.OrbitRadius) {
		return nil, fmt.Errorf("%w: center (%v, %v), radius %v",
			dynamo.ErrInvalidCanvasDimensions, geo.CenterX, geo.CenterY, geo.OrbitRadius)
	}
	if geo.OrbitRadius <= 0 {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidOrbitRadius, geo.OrbitRadius)
	}
	if g <= 0 || !dynamo.Finite(g) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidGravity, g)
	}

	def, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	n, err = def.BodyCount(n)
	if err != nil {
		return nil, err
	}
	gen := def.Generator

	masses := gen.Masses(n)
	radii := gen.Radii(n)
	colors := gen.Colors(n)
	if len(radii) != len(masses) || len(colors) != len(masses) {
		return nil, fmt.Errorf("%w: %d masses, %d radii, %d colors",
			dynamo.ErrInvalidScenarioData, len(masses), len(radii), len(colors))
	}

	positions := gen.Positions(geo, n)
	if len(positions) != len(masses) {
		return nil, fmt.Errorf("%w: %d positions for %d masses",
			dynamo.ErrPositionLengthMismatch, len(positions), len(masses))
	}

	base := gen.BaseVelocity(geo.OrbitRadius, g)
	velocities := gen.Velocities(base, n)
	if len(velocities) != len(masses) {
		return nil, fmt.Errorf("%w: %d velocities for %d masses",
			dynamo.ErrVelocityLengthMismatch, len(velocities), len(masses))
	}

	bodies := make([]*body.Mass, len(masses))
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w at index %d: got %v", dynamo.ErrInvalidMass, i, m)
		}
		b, err := body.New(m, radii[i], colors[i], positions[i], velocities[i])
		if err != nil {
			return nil, fmt.Errorf("%s body %d: %w", key, i, err)
		}
		bodies[i] = b
	}
	return bodies, nil
}
