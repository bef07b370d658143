package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
)

type Registry struct {
	definitions map[string]*Definition
}

// NewRegistry returns a registry holding the built-in scenarios.
func NewRegistry() *Registry {
	r := &Registry{definitions: make(map[string]*Definition)}

	ringSchema := []Parameter{{Name: "n", Default: DefaultN, Min: 2, Max: 1000}}

	r.definitions["N"] = &Definition{
		Key:         "N",
		Description: "N-Body: equal masses on a ring in approximate orbital balance",
		RequiresN:   true,
		Parameters:  ringSchema,
		Generator:   newRing(0.2),
	}
	r.definitions["solar"] = &Definition{
		Key:         "solar",
		Description: "Solar: one star, two planets and three moons",
		RequiresN:   false,
		Parameters:  []Parameter{{Name: "n", Default: solarBodies, Min: solarBodies, Max: solarBodies}},
		Generator:   newSolar(),
	}
	r.definitions["einstein"] = &Definition{
		Key:          "einstein",
		Description:  "Einstein: the N-body ring under velocity-corrected gravity",
		RequiresN:    true,
		Parameters:   ringSchema,
		Generator:    newRing(0.25),
		PhysicsModel: physics.Relativistic,
		ModelParams:  force.Params{RelativisticFactor: 0.0002},
	}
	r.definitions["quantum"] = &Definition{
		Key:          "quantum",
		Description:  "Quantum: the N-body ring under stochastic gravity with tunneling",
		RequiresN:    true,
		Parameters:   ringSchema,
		Generator:    newRing(0.2),
		PhysicsModel: physics.Quantum,
		ModelParams:  force.Params{QuantumUncertainty: 0.2, TunnelingProbability: 0.3},
	}

	return r
}

// Default is the process-wide registry used by the package-level
// functions. Definitions are immutable once registered.
var Default = NewRegistry()

// Register adds a definition. Keys must be unique and non-empty and the
// definition must carry a generator.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Key == "" || def.Generator == nil {
		return fmt.Errorf("%w: definition needs a key and a generator", dynamo.ErrInvalidScenarioData)
	}
	if _, ok := r.definitions[def.Key]; ok {
		return fmt.Errorf("scenario already registered: %s", def.Key)
	}
	r.definitions[def.Key] = def
	return nil
}

func (r *Registry) Lookup(key string) (*Definition, error) {
	def, ok := r.definitions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownScenario, key)
	}
	return def, nil
}

// Keys lists the registered scenario keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.definitions))
	for key := range r.definitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
