package metrics

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
)

// MeanGamma averages the model's gamma factor over bodies and ticks.
// It stays at 1 for models without velocity correction.
type MeanGamma struct {
	name    string
	model   physics.Model
	params  force.Params
	sum     float64
	samples int
}

func NewMeanGamma(model physics.Model, params force.Params) *MeanGamma {
	if model == nil {
		model = physics.Default()
	}
	return &MeanGamma{
		name:   "mean_gamma",
		model:  model,
		params: params,
	}
}

func (g *MeanGamma) Name() string {
	return g.name
}

func (g *MeanGamma) Observe(bodies []*body.Mass, t float64) {
	for _, b := range bodies {
		g.sum += g.model.Gamma(b, g.params)
		g.samples++
	}
}

func (g *MeanGamma) Value() float64 {
	if g.samples == 0 {
		return 1
	}
	return g.sum / float64(g.samples)
}

func (g *MeanGamma) Reset() {
	g.sum = 0
	g.samples = 0
}
