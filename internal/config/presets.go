package config

import "sort"

func preset(scenario string, bodies int, tune func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Scenario = scenario
	cfg.Bodies = bodies
	if tune != nil {
		tune(cfg)
	}
	return cfg
}

var Presets = map[string]map[string]*Config{
	"N": {
		"triangle": preset("N", 3, nil),
		"hexagon":  preset("N", 6, nil),
		"swarm": preset("N", 24, func(c *Config) {
			c.Dt = 0.05
			c.Steps = 4000
			c.SampleEvery = 10
		}),
		"binary": preset("N", 2, func(c *Config) {
			c.World.OrbitRadius = 120
		}),
	},
	"solar": {
		"default": preset("solar", 6, nil),
		"long": preset("solar", 6, func(c *Config) {
			c.Steps = 20000
			c.SampleEvery = 20
		}),
		"fine": preset("solar", 6, func(c *Config) {
			c.Dt = 0.02
			c.Steps = 5000
			c.SampleEvery = 5
		}),
	},
	"einstein": {
		"pair": preset("einstein", 2, nil),
		"ring": preset("einstein", 8, nil),
		"strong": preset("einstein", 4, func(c *Config) {
			c.ModelParams.RelativisticFactor = 0.001
		}),
	},
	"quantum": {
		"trio": preset("quantum", 3, nil),
		"cloud": preset("quantum", 12, func(c *Config) {
			c.Softening = 50
		}),
		"leaky": preset("quantum", 4, func(c *Config) {
			c.ModelParams.TunnelingProbability = 0.8
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
