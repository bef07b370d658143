package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/force"
)

const (
	DefaultScenario    = "N"
	DefaultBodies      = 3
	DefaultG           = 500.0
	DefaultDt          = 0.1
	DefaultSoftening   = 100.0
	DefaultSteps       = 1000
	DefaultSampleEvery = 1
	DefaultSeed        = 1
	DefaultCenterX     = 400.0
	DefaultCenterY     = 300.0
	DefaultOrbitRadius = 200.0
)

type Config struct {
	Scenario    string       `yaml:"scenario" toml:"scenario" json:"scenario"`
	Bodies      int          `yaml:"bodies" toml:"bodies" json:"bodies"`
	Model       string       `yaml:"model,omitempty" toml:"model,omitempty" json:"model,omitempty"`
	G           float64      `yaml:"g" toml:"g" json:"g"`
	Dt          float64      `yaml:"dt" toml:"dt" json:"dt"`
	Softening   float64      `yaml:"softening" toml:"softening" json:"softening"`
	Steps       int          `yaml:"steps" toml:"steps" json:"steps"`
	SampleEvery int          `yaml:"sample_every" toml:"sample_every" json:"sample_every"`
	Seed        uint64       `yaml:"seed" toml:"seed" json:"seed"`
	World       WorldConfig  `yaml:"world" toml:"world" json:"world"`
	ModelParams force.Params `yaml:"model_params" toml:"model_params" json:"model_params"`
}

// WorldConfig is the canvas geometry scenarios are laid out on.
type WorldConfig struct {
	CenterX     float64 `yaml:"center_x" toml:"center_x" json:"center_x"`
	CenterY     float64 `yaml:"center_y" toml:"center_y" json:"center_y"`
	OrbitRadius float64 `yaml:"orbit_radius" toml:"orbit_radius" json:"orbit_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    DefaultScenario,
		Bodies:      DefaultBodies,
		G:           DefaultG,
		Dt:          DefaultDt,
		Softening:   DefaultSoftening,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Seed:        DefaultSeed,
		World: WorldConfig{
			CenterX:     DefaultCenterX,
			CenterY:     DefaultCenterY,
			OrbitRadius: DefaultOrbitRadius,
		},
	}
}

// Load reads a config file on top of the defaults. Files ending in
// .toml are decoded as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg in the format implied by the file extension.
func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
