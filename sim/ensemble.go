package sim

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/a-bouts/sim-server/boat"
)

// RunEnsemble runs one simulation per start time, each on a private copy of
// the prototype boat. The route plan and weather data are shared read-only,
// so runs proceed concurrently on up to workers goroutines.
func (s *Simulation) RunEnsemble(ctx context.Context, proto boat.Boat, starts []time.Time, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, start := range starts {
		i, start := i, start
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			b := proto
			b.Log = nil

			run := *s
			run.Start = start

			res, err := run.Run(&b)
			if err != nil {
				return fmt.Errorf("run %d from %s: %w", i, start.Format(time.RFC3339), err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
