package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend/factory"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/trial"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg}
}

// Run drives the configured trial count against every backend, reusing the
// same query-vector sequence for each so the comparison is fair. Failure
// isolation is per trial and per backend: a failed trial never aborts its
// stream, a dead backend never aborts the run. Only configuration problems
// are fatal, and those surface before any trial executes.
//
// When the run context expires, streams stop issuing new trials and whatever
// already completed is flushed into the result.
func (r *Runner) Run(ctx context.Context, backends []factory.Built, queries [][]float32) (*Result, error) {
	if err := r.config.validate(len(backends), len(queries)); err != nil {
		return nil, err
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	result := &Result{
		StartedAt: time.Now(),
		Config:    r.config,
		Backends:  make([]BackendRun, len(backends)),
	}

	if r.config.Parallel {
		var wg sync.WaitGroup
		for i, b := range backends {
			wg.Add(1)
			go func(i int, b factory.Built) {
				defer wg.Done()
				result.Backends[i] = r.runStream(ctx, b, queries)
			}(i, b)
		}
		wg.Wait()
	} else {
		for i, b := range backends {
			result.Backends[i] = r.runStream(ctx, b, queries)
		}
	}

	return result, nil
}

// runStream executes one backend's sequential trial stream. No two trials of
// the same backend are ever in flight at once.
func (r *Runner) runStream(ctx context.Context, b factory.Built, queries [][]float32) BackendRun {
	br := BackendRun{Name: b.Name, Kind: b.Kind}

	if b.SetupErr != nil {
		br.SetupErr = b.SetupErr
		slog.Warn("Backend setup failed, recording without trials", "backend", b.Name, "error", b.SetupErr)
		return br
	}

	for i := 0; i < r.config.Trials; i++ {
		if ctx.Err() != nil {
			slog.Warn("Run deadline reached, flushing completed trials",
				"backend", b.Name, "completed", len(br.Records), "requested", r.config.Trials)
			break
		}

		embedding := queries[i%len(queries)]
		rec := trial.Run(ctx, b.Store, i, embedding, r.config.K)
		br.observe(rec)

		if rec.Err != nil {
			slog.Warn("Trial failed", "backend", b.Name, "trial", i, "error", rec.Err)
		}
	}

	return br
}
