package dynamo

import (
	"errors"
	"fmt"
)

// Body construction errors.
var (
	// ErrInvalidMass indicates a mass that is zero, negative, NaN or Inf.
	ErrInvalidMass = errors.New("dynamo: mass must be a positive finite number")

	// ErrInvalidRadius indicates a radius that is negative, NaN or Inf.
	ErrInvalidRadius = errors.New("dynamo: radius must be a non-negative finite number")

	// ErrInvalidPosition indicates a position with a non-finite component.
	ErrInvalidPosition = errors.New("dynamo: position must have finite x and y coordinates")

	// ErrInvalidVelocity indicates a velocity with a non-finite component.
	ErrInvalidVelocity = errors.New("dynamo: velocity must have finite x and y components")
)

// Scenario setup errors.
var (
	// ErrInvalidCanvasDimensions indicates non-finite center or orbit geometry.
	ErrInvalidCanvasDimensions = errors.New("dynamo: invalid canvas dimensions")

	// ErrInvalidOrbitRadius indicates an orbit radius that is not positive.
	ErrInvalidOrbitRadius = errors.New("dynamo: orbit radius must be positive")

	// ErrInvalidGravity indicates a gravitational constant that is not a positive finite number.
	ErrInvalidGravity = errors.New("dynamo: gravitational constant must be a positive finite number")

	// ErrUnknownScenario indicates a scenario key with no registered definition.
	ErrUnknownScenario = errors.New("dynamo: unknown scenario")

	// ErrMissingParameterSchema indicates a definition without a parameter schema.
	ErrMissingParameterSchema = errors.New("dynamo: scenario defines no parameter schema")

	// ErrInvalidScenarioData indicates generator output that breaks the
	// definition contract (length parity, non-positive mass).
	ErrInvalidScenarioData = errors.New("dynamo: invalid scenario data")

	// ErrPositionLengthMismatch indicates fewer or more positions than masses.
	ErrPositionLengthMismatch = fmt.Errorf("%w: position array length mismatch", ErrInvalidScenarioData)

	// ErrVelocityLengthMismatch indicates fewer or more velocities than masses.
	ErrVelocityLengthMismatch = fmt.Errorf("%w: velocity array length mismatch", ErrInvalidScenarioData)
)

// Simulation errors.
var (
	// ErrNonFiniteState indicates a body left the finite domain during a run.
	ErrNonFiniteState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidStep indicates a run configured with a non-positive or non-finite dt.
	ErrInvalidStep = errors.New("dynamo: time step must be a positive finite number")
)
