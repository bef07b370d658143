package physics

import (
	"sort"
	"strings"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/force"
	"gonum.org/v1/gonum/spatial/r2"
)

type Name string

const (
	Newtonian    Name = "newtonian"
	Relativistic Name = "relativistic"
	Quantum      Name = "quantum"
)

// Hints are presentation multipliers consumed by the rendering layer.
type Hints struct {
	RadiusMultiplier         float64 `json:"radius_multiplier"`
	IntensityMultiplier      float64 `json:"intensity_multiplier"`
	GlowMultiplier           float64 `json:"glow_multiplier"`
	TrailIntensityMultiplier float64 `json:"trail_intensity_multiplier"`
	UncertaintyGlow          bool    `json:"uncertainty_glow,omitempty"`
}

var baseHints = Hints{
	RadiusMultiplier:         0,
	IntensityMultiplier:      1,
	GlowMultiplier:           0,
	TrailIntensityMultiplier: 1,
}

// Model is the capability set shared by every physics model.
type Model interface {
	Name() Name
	// Force returns the force on a exerted by b. rnd is only consulted
	// by stochastic models; nil selects the process-wide source.
	Force(a, b *body.Mass, g, softening float64, p force.Params, rnd force.Source) r2.Vec
	// Gamma is the velocity correction factor for m, always >= 1.
	Gamma(m *body.Mass, p force.Params) float64
	ShowsTrails() bool
	AppliesRelativisticEffects() bool
	Hints() Hints
}

type newtonian struct{}

func (newtonian) Name() Name { return Newtonian }
func (newtonian) Force(a, b *body.Mass, g, s float64, _ force.Params, _ force.Source) r2.Vec {
	return force.Classical(a, b, g, s)
}
func (newtonian) Gamma(*body.Mass, force.Params) float64 { return 1 }
func (newtonian) ShowsTrails() bool                      { return true }
func (newtonian) AppliesRelativisticEffects() bool       { return false }
func (newtonian) Hints() Hints                           { return baseHints }

type relativistic struct{}

func (relativistic) Name() Name { return Relativistic }
func (relativistic) Force(a, b *body.Mass, g, s float64, p force.Params, _ force.Source) r2.Vec {
	return force.VelocityCorrected(a, b, g, s, p.Relativistic())
}
func (relativistic) Gamma(m *body.Mass, p force.Params) float64 {
	if m == nil {
		return 1
	}
	return force.Gamma(m.Vel, p.Relativistic())
}
func (relativistic) ShowsTrails() bool                { return true }
func (relativistic) AppliesRelativisticEffects() bool { return true }
func (relativistic) Hints() Hints {
	return Hints{
		RadiusMultiplier:         0.3,
		IntensityMultiplier:      3,
		GlowMultiplier:           0.5,
		TrailIntensityMultiplier: 2,
	}
}

type quantum struct{}

func (quantum) Name() Name { return Quantum }
func (quantum) Force(a, b *body.Mass, g, s float64, p force.Params, rnd force.Source) r2.Vec {
	return force.Stochastic(a, b, g, s, p.Uncertainty(), p.Tunneling(), rnd)
}
func (quantum) Gamma(*body.Mass, force.Params) float64 { return 1 }
func (quantum) ShowsTrails() bool                      { return false }
func (quantum) AppliesRelativisticEffects() bool       { return false }
func (quantum) Hints() Hints {
	return Hints{
		RadiusMultiplier:         0.5,
		IntensityMultiplier:      1.5,
		GlowMultiplier:           1,
		TrailIntensityMultiplier: 0.5,
		UncertaintyGlow:          true,
	}
}

var models = map[Name]Model{
	Newtonian:    newtonian{},
	Relativistic: relativistic{},
	Quantum:      quantum{},
}

var aliases = map[string]Name{
	"classical":          Newtonian,
	"velocity-corrected": Relativistic,
	"stochastic":         Quantum,
}

// Resolve maps a name or alias to its canonical model name and reports
// whether it was recognised.
func Resolve(name string) (Name, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := models[Name(key)]; ok {
		return Name(key), true
	}
	if n, ok := aliases[key]; ok {
		return n, true
	}
	return Newtonian, false
}

// Get returns the model for name, falling back to newtonian.
func Get(name string) Model {
	n, _ := Resolve(name)
	return models[n]
}

func Default() Model { return models[Newtonian] }

// Names lists the canonical model names in sorted order.
func Names() []string {
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}
