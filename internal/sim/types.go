package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
)

// Metric accumulates a diagnostic over the ticks of a run.
type Metric interface {
	Name() string
	Observe(bodies []*body.Mass, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnStep(bodies []*body.Mass, t float64)
}

// RunConfig drives a batch run. SampleEvery <= 1 records every tick.
type RunConfig struct {
	Dt            float64
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            0.1,
		Steps:         1000,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Frame is the state of every body at one sampled tick.
type Frame []body.State

// Bodies rebuilds detached bodies from the frame, for diagnostics over
// recorded data.
func (f Frame) Bodies() []*body.Mass {
	out := make([]*body.Mass, len(f))
	for i, s := range f {
		out[i] = body.FromState(s)
	}
	return out
}

type Result struct {
	Frames     []Frame
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// StepError wraps an error with the tick at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
