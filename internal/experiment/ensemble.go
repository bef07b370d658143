package experiment

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/sim"
)

// RunEnsemble runs copies of cfg with seeds cfg.Seed, cfg.Seed+1, ...
// concurrently. Each run owns its bodies and its random source. Results
// are returned in seed order; the first failure cancels the rest.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs int, log logr.Logger) ([]*sim.Result, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("ensemble size must be positive, got %d", runs)
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	results := make([]*sim.Result, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < runs; i++ {
		member := *cfg
		member.Seed = cfg.Seed + uint64(i)
		g.Go(func() error {
			exp := New(&member, log.WithValues("member", i))
			if err := exp.Setup(); err != nil {
				return err
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("member %d (seed %d): %w", i, member.Seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
