package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/gravsim/internal/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "N" {
		t.Errorf("expected scenario N, got %s", cfg.Scenario)
	}
	if cfg.G != 500 || cfg.Dt != 0.1 || cfg.Softening != 100 {
		t.Errorf("expected G=500 dt=0.1 softening=100, got G=%v dt=%v softening=%v", cfg.G, cfg.Dt, cfg.Softening)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"G too small", func(c *Config) { c.G = 0.5 }, "g"},
		{"G too large", func(c *Config) { c.G = 1001 }, "g"},
		{"G NaN", func(c *Config) { c.G = math.NaN() }, "g"},
		{"dt too small", func(c *Config) { c.Dt = 0.001 }, "dt"},
		{"dt too large", func(c *Config) { c.Dt = 2 }, "dt"},
		{"softening too small", func(c *Config) { c.Softening = 0 }, "softening"},
		{"no steps", func(c *Config) { c.Steps = 0 }, "steps"},
		{"negative sampling", func(c *Config) { c.SampleEvery = -1 }, "sample_every"},
		{"flat world", func(c *Config) { c.World.OrbitRadius = 0 }, "world.orbit_radius"},
		{"unknown model", func(c *Config) { c.Model = "string-theory" }, "model"},
		{"unknown scenario", func(c *Config) { c.Scenario = "warp" }, "scenario"},
		{"too few bodies", func(c *Config) { c.Bodies = 1 }, "bodies"},
		{"too many bodies", func(c *Config) { c.Bodies = 1001 }, "bodies"},
		{"negative relativistic factor", func(c *Config) { c.ModelParams.RelativisticFactor = -0.1 }, "model_params.relativistic_factor"},
		{"infinite relativistic factor", func(c *Config) { c.ModelParams.RelativisticFactor = math.Inf(1) }, "model_params.relativistic_factor"},
		{"negative uncertainty", func(c *Config) { c.ModelParams.QuantumUncertainty = -1 }, "model_params.quantum_uncertainty"},
		{"NaN uncertainty", func(c *Config) { c.ModelParams.QuantumUncertainty = math.NaN() }, "model_params.quantum_uncertainty"},
		{"tunneling above one", func(c *Config) { c.ModelParams.TunnelingProbability = 1.5 }, "model_params.tunneling_probability"},
		{"negative tunneling", func(c *Config) { c.ModelParams.TunnelingProbability = -0.1 }, "model_params.tunneling_probability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("expected field %s to be reported, got %v", tt.field, verr.Fields)
			}
			if len(verr.Fields) != 1 {
				t.Errorf("expected exactly one invalid field, got %v", verr.Fields)
			}
		})
	}
}

func TestValidateIgnoresBodiesForFixedScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "solar"
	cfg.Bodies = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("solar ignores the body count, got %v", err)
	}
}

func TestValidateAcceptsModelAliases(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "Velocity-Corrected"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected alias to validate, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"g": "bad", "dt": "worse"}}
	expected := "invalid config: dt: worse; g: bad"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestValidateN(t *testing.T) {
	tests := []struct {
		n     int
		valid bool
	}{
		{2, true},
		{1000, true},
		{1, false},
		{0, false},
		{1001, false},
	}

	for _, tt := range tests {
		err := ValidateN(tt.n, MinBodies, MaxBodies)
		if (err == nil) != tt.valid {
			t.Errorf("n=%d: expected valid=%v, got %v", tt.n, tt.valid, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "einstein"
	cfg.Bodies = 7
	cfg.Model = "relativistic"
	cfg.Seed = 42
	cfg.ModelParams.RelativisticFactor = 0.0005

	for _, name := range []string{"run.yaml", "run.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if diff := cmp.Diff(cfg, loaded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("scenario = \"solar\"\ng = 250.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scenario != "solar" || cfg.G != 250 {
		t.Errorf("expected solar with G=250, got %s with G=%v", cfg.Scenario, cfg.G)
	}
	if cfg.Softening != DefaultSoftening || cfg.World.OrbitRadius != DefaultOrbitRadius {
		t.Error("expected unspecified fields to keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("g: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("N", "hexagon")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies != 6 {
		t.Errorf("expected 6 bodies, got %d", cfg.Bodies)
	}

	cfg.Bodies = 99
	if again := GetPreset("N", "hexagon"); again.Bodies != 6 {
		t.Error("expected presets to be returned by copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("N", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "triangle")
	if cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestPresetsCoverEveryScenario(t *testing.T) {
	for _, key := range scenario.Default.Keys() {
		names := ListPresets(key)
		if len(names) == 0 {
			t.Errorf("expected presets for %s", key)
		}
		for _, name := range names {
			if err := GetPreset(key, name).Validate(); err != nil {
				t.Errorf("preset %s/%s: %v", key, name, err)
			}
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}
