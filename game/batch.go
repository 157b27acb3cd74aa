package game

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/telemetry"
)

// BatchResult is the outcome of one autopilot game.
type BatchResult struct {
	Seed     int64
	Ticks    int32
	Finished bool // false when the tick cap ended the game
	Summary  telemetry.SessionSummary
}

// batchJob is one seed handed to a worker.
type batchJob struct {
	index int
	seed  int64
}

// RunBatch plays one autopilot game per seed, spread across workers.
// Every game gets its own config copy and session; nothing is shared
// between goroutines. Games that reach maxTicks are cut off and report
// their statistics so far. workers <= 0 uses GOMAXPROCS.
func RunBatch(ctx context.Context, cfg *config.Config, seeds []int64, maxTicks int32, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(seeds))

	results := make([]BatchResult, len(seeds))
	jobs := make(chan batchJob)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				res, err := playOne(ctx, cfg.Clone(), job.seed, maxTicks)
				if err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("seed %d: %w", job.seed, err))
					mu.Unlock()
					continue
				}
				results[job.index] = res
			}
		}()
	}

feed:
	for i, seed := range seeds {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- batchJob{index: i, seed: seed}:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}

// playOne runs a single headless autopilot game without output.
func playOne(ctx context.Context, cfg *config.Config, seed int64, maxTicks int32) (BatchResult, error) {
	r, err := NewRunner(cfg, Options{Seed: seed})
	if err != nil {
		return BatchResult{}, err
	}
	defer r.Close()

	res := BatchResult{Seed: seed}
	for r.Tick() < maxTicks {
		// Check for cancellation every simulated second or so.
		if r.Tick()%64 == 0 && ctx.Err() != nil {
			break
		}
		r.StepAuto()
		if done := r.Finished(); len(done) > 0 {
			res.Finished = true
			res.Summary = done[0]
			break
		}
	}
	res.Ticks = r.Tick()
	if !res.Finished {
		res.Summary = r.Current()
	}
	return res, nil
}
