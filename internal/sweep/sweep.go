// Package sweep generates and analyzes one coil per layer count in parallel.
package sweep

import (
	"context"
	"runtime"
	"sync"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/internal/logger"
	"github.com/OpenTraceLab/magnetorquer/pkg/field"
)

// Result is the outcome for one requested layer count.
type Result struct {
	Layers   int // Requested layer count
	Realized int // Layer count actually routed
	Report   *field.Report
	Err      error
}

// Run generates a board for each entry of layerCounts from cfg, with the
// layer count overridden, and analyzes it. Results come back in input order.
// A failing variant records its error in Result.Err and does not stop the
// others. Run returns ctx.Err() when cancelled before every job finished.
func Run(ctx context.Context, cfg *config.Config, layerCounts []int, workers int) ([]Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(1, len(layerCounts)))

	results := make([]Result, len(layerCounts))
	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					results[i] = runOne(cfg, layerCounts[i])
				}
			}
		}()
	}

feed:
	for i := range layerCounts {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(base *config.Config, layers int) Result {
	cfg := *base
	cfg.Board.Layers = layers
	res := Result{Layers: layers}

	b, err := cfg.Generate()
	if err != nil {
		res.Err = err
		return res
	}
	res.Realized = b.Layers

	rep, err := field.Analyze(b, cfg.Drive())
	if err != nil {
		res.Err = err
		return res
	}
	res.Report = rep
	logger.L().Debug("sweep variant done", "layers", layers, "realized", b.Layers)
	return res
}
