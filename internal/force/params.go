package force

// Literal defaults. These are tuned by eye for the default scales
// (G=500, softening=100, masses ~1000) and carry no physical derivation.
const (
	DefaultRelativisticFactor   = 0.1
	DefaultQuantumUncertainty   = 0.15
	DefaultTunnelingProbability = 0.1

	// Above this squared speed the velocity-corrected law widens the
	// softening length by SpeedSofteningRate per unit of excess.
	SpeedSofteningThreshold = 500.0
	SpeedSofteningRate      = 0.1
)

// Params is the optional, model-specific parameter bag. A zero field
// selects the literal default.
type Params struct {
	RelativisticFactor   float64 `json:"relativistic_factor,omitempty" yaml:"relativistic_factor,omitempty" toml:"relativistic_factor,omitempty"`
	QuantumUncertainty   float64 `json:"quantum_uncertainty,omitempty" yaml:"quantum_uncertainty,omitempty" toml:"quantum_uncertainty,omitempty"`
	TunnelingProbability float64 `json:"tunneling_probability,omitempty" yaml:"tunneling_probability,omitempty" toml:"tunneling_probability,omitempty"`
}

func (p Params) Relativistic() float64 {
	return orDefault(p.RelativisticFactor, DefaultRelativisticFactor)
}

func (p Params) Uncertainty() float64 {
	return orDefault(p.QuantumUncertainty, DefaultQuantumUncertainty)
}

func (p Params) Tunneling() float64 {
	return orDefault(p.TunnelingProbability, DefaultTunnelingProbability)
}

// Merge returns p with every non-zero field of o applied on top.
func (p Params) Merge(o Params) Params {
	if o.RelativisticFactor != 0 {
		p.RelativisticFactor = o.RelativisticFactor
	}
	if o.QuantumUncertainty != 0 {
		p.QuantumUncertainty = o.QuantumUncertainty
	}
	if o.TunnelingProbability != 0 {
		p.TunnelingProbability = o.TunnelingProbability
	}
	return p
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
