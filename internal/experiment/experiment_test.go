package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/physics"
)

func smallConfig(scenario string, bodies int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario
	cfg.Bodies = bodies
	cfg.Steps = 50
	cfg.SampleEvery = 10
	return cfg
}

func TestExperimentRun(t *testing.T) {
	exp := New(smallConfig("N", 4), logr.Discard())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 6 {
		t.Errorf("expected 6 frames, got %d", len(result.Frames))
	}
	if len(result.Frames[0]) != 4 {
		t.Errorf("expected 4 bodies per frame, got %d", len(result.Frames[0]))
	}
	for _, name := range []string{"energy_drift", "momentum_drift", "stability"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("expected metric %s in result", name)
		}
	}
	if _, ok := result.Metrics["mean_gamma"]; ok {
		t.Error("expected no gamma metric for the newtonian model")
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(config.DefaultConfig(), logr.Logger{})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error when running before setup")
	}
}

func TestExperimentSetupValidates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.G = -1

	err := New(cfg, logr.Discard()).Setup()
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestExperimentUnknownMetric(t *testing.T) {
	exp := New(smallConfig("N", 3), logr.Discard())
	if err := exp.Setup("entropy"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestScenarioTagSelectsModel(t *testing.T) {
	tests := []struct {
		scenario   string
		configured string
		expected   physics.Name
	}{
		{"N", "", physics.Newtonian},
		{"N", "stochastic", physics.Quantum},
		{"solar", "relativistic", physics.Relativistic},
		{"einstein", "newtonian", physics.Relativistic},
		{"quantum", "", physics.Quantum},
	}

	for _, tt := range tests {
		cfg := smallConfig(tt.scenario, 3)
		cfg.Model = tt.configured

		exp := New(cfg, logr.Discard())
		if err := exp.Setup(); err != nil {
			t.Fatalf("%s: setup failed: %v", tt.scenario, err)
		}
		if exp.Model().Name() != tt.expected {
			t.Errorf("%s with %q: expected model %s, got %s", tt.scenario, tt.configured, tt.expected, exp.Model().Name())
		}
	}
}

func TestModelParamsMerge(t *testing.T) {
	cfg := smallConfig("quantum", 3)
	cfg.ModelParams.TunnelingProbability = 0.5

	exp := New(cfg, logr.Discard())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	params := exp.Params()
	if params.QuantumUncertainty != 0.2 {
		t.Errorf("expected scenario uncertainty 0.2, got %f", params.QuantumUncertainty)
	}
	if params.TunnelingProbability != 0.5 {
		t.Errorf("expected configured tunneling 0.5, got %f", params.TunnelingProbability)
	}
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := smallConfig("N", 3)
	exp := New(cfg, logr.Discard())
	cfg.Bodies = 9

	if exp.Config().Bodies != 3 {
		t.Errorf("expected experiment to keep 3 bodies, got %d", exp.Config().Bodies)
	}
}

func TestQuantumRunReproducible(t *testing.T) {
	run := func() []float64 {
		exp := New(smallConfig("quantum", 5), logr.Discard())
		if err := exp.Setup(); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		result, err := exp.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		last := result.Frames[len(result.Frames)-1]
		out := make([]float64, 0, 2*len(last))
		for _, s := range last {
			out = append(out, s.X, s.Y)
		}
		return out
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed produced different trajectories (-first +second):\n%s", diff)
	}
}

func TestRunEnsemble(t *testing.T) {
	cfg := smallConfig("quantum", 3)

	first, err := RunEnsemble(context.Background(), cfg, 4, logr.Discard())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	second, err := RunEnsemble(context.Background(), cfg, 4, logr.Discard())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(first) != 4 {
		t.Fatalf("expected 4 results, got %d", len(first))
	}
	for i := range first {
		if diff := cmp.Diff(first[i].Frames, second[i].Frames); diff != "" {
			t.Errorf("member %d not reproducible:\n%s", i, diff)
		}
	}
	if cmp.Equal(first[0].Frames, first[1].Frames) {
		t.Error("expected members with different seeds to diverge")
	}
}

func TestRunEnsembleErrors(t *testing.T) {
	if _, err := RunEnsemble(context.Background(), config.DefaultConfig(), 0, logr.Discard()); err == nil {
		t.Error("expected error for empty ensemble")
	}

	cfg := config.DefaultConfig()
	cfg.Scenario = "warp"
	if _, err := RunEnsemble(context.Background(), cfg, 2, logr.Discard()); err == nil {
		t.Error("expected error for invalid member config")
	}
}

func TestRegistryListMetrics(t *testing.T) {
	expected := []string{"energy", "energy_drift", "mean_gamma", "momentum_drift", "stability"}
	if diff := cmp.Diff(expected, NewRegistry().ListMetrics()); diff != "" {
		t.Errorf("metric list mismatch:\n%s", diff)
	}
}
