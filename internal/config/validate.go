package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/scenario"
)

// Recommended ranges for the numeric surface. The physics core only
// requires positivity and finiteness; these bound what a user may ask
// for.
const (
	MinG         = 1.0
	MaxG         = 1000.0
	MinDt        = 0.01
	MaxDt        = 1.0
	MinSoftening = 1.0
	MaxSoftening = 1000.0
	MinBodies    = 2
	MaxBodies    = 1000
)

// ValidationError maps each invalid field to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate checks the config against the default scenario registry.
func (c *Config) Validate() error {
	fields := make(map[string]string)

	if outside(c.G, MinG, MaxG) {
		fields["g"] = fmt.Sprintf("Gravitational constant must be between %g and %g", MinG, MaxG)
	}
	if outside(c.Dt, MinDt, MaxDt) {
		fields["dt"] = fmt.Sprintf("Time step must be between %g and %g", MinDt, MaxDt)
	}
	if outside(c.Softening, MinSoftening, MaxSoftening) {
		fields["softening"] = fmt.Sprintf("Softening parameter must be between %g and %g", MinSoftening, MaxSoftening)
	}
	if c.Steps <= 0 {
		fields["steps"] = "Steps must be positive"
	}
	if c.SampleEvery < 0 {
		fields["sample_every"] = "Sample interval must not be negative"
	}
	if c.World.OrbitRadius <= 0 {
		fields["world.orbit_radius"] = "Orbit radius must be positive"
	}

	if c.Model != "" {
		if _, ok := physics.Resolve(c.Model); !ok {
			fields["model"] = fmt.Sprintf("Unknown physics model: %s", c.Model)
		}
	}

	// Zero fields select the literal defaults.
	p := c.ModelParams
	if math.IsNaN(p.RelativisticFactor) || math.IsInf(p.RelativisticFactor, 0) || p.RelativisticFactor < 0 {
		fields["model_params.relativistic_factor"] = "Relativistic factor must not be negative"
	}
	if math.IsNaN(p.QuantumUncertainty) || math.IsInf(p.QuantumUncertainty, 0) || p.QuantumUncertainty < 0 {
		fields["model_params.quantum_uncertainty"] = "Quantum uncertainty must not be negative"
	}
	if outside(p.TunnelingProbability, 0, 1) {
		fields["model_params.tunneling_probability"] = "Tunneling probability must be between 0 and 1"
	}

	def, err := scenario.Default.Lookup(c.Scenario)
	if err != nil {
		fields["scenario"] = fmt.Sprintf("Unknown scenario: %s", c.Scenario)
	} else if def.RequiresN {
		lo, hi := MinBodies, MaxBodies
		if p, ok := def.Parameter("n"); ok {
			lo, hi = p.Min, p.Max
		}
		if err := ValidateN(c.Bodies, lo, hi); err != nil {
			fields["bodies"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateN checks a requested body count against [min, max].
func ValidateN(n, lo, hi int) error {
	if n < lo {
		return fmt.Errorf("number of bodies must be at least %d", lo)
	}
	if n > hi {
		return fmt.Errorf("number of bodies must be at most %d", hi)
	}
	return nil
}

func outside(v, lo, hi float64) bool {
	return math.IsNaN(v) || v < lo || v > hi
}
