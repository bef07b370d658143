package scenario

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
)

// Metadata is what a host needs to present and configure a scenario
// before building it.
type Metadata struct {
	Key          string       `json:"key"`
	Description  string       `json:"description"`
	RequiresN    bool         `json:"requires_n"`
	Parameters   []Parameter  `json:"parameters"`
	PhysicsModel physics.Name `json:"physics_model,omitempty"`
	ModelParams  force.Params `json:"model_params"`
}

// GetScenarioMetadata describes a scenario from the default registry.
func GetScenarioMetadata(key string) (Metadata, error) {
	return Default.Metadata(key)
}

func (r *Registry) Metadata(key string) (Metadata, error) {
	def, err := r.Lookup(key)
	if err != nil {
		return Metadata{}, err
	}
	if len(def.Parameters) == 0 {
		return Metadata{}, fmt.Errorf("%w: %s", dynamo.ErrMissingParameterSchema, key)
	}
	return Metadata{
		Key:          def.Key,
		Description:  def.Description,
		RequiresN:    def.RequiresN,
		Parameters:   append([]Parameter(nil), def.Parameters...),
		PhysicsModel: def.PhysicsModel,
		ModelParams:  def.ModelParams,
	}, nil
}
