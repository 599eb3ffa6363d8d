package trial

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
)

// Record is one measured query attempt against one backend. Immutable once
// written. A failed trial keeps its time-to-failure as Elapsed: slow failures
// are a real signal and stay visible, though the aggregator excludes them
// from latency percentiles.
type Record struct {
	Backend     string        `json:"backend"`
	Index       int           `json:"index"`
	Start       time.Time     `json:"start"`
	Elapsed     time.Duration `json:"elapsed"`
	ResultCount int           `json:"result_count"`
	Err         error         `json:"-"`
}

func (r Record) Succeeded() bool { return r.Err == nil }

// Run executes exactly one timed query. The timed region covers only the
// Query call: adapter construction happens upstream and the embedding arrives
// pre-computed. No retries; retry policy belongs to the runner.
func Run(ctx context.Context, store backend.Store, index int, embedding []float32, k int) Record {
	start := time.Now()
	matches, err := store.Query(ctx, embedding, k)
	elapsed := time.Since(start)

	rec := Record{
		Backend: store.Name(),
		Index:   index,
		Start:   start,
		Elapsed: elapsed,
	}

	if err != nil {
		rec.Err = backend.Classify(store.Name(), err)
		return rec
	}

	rec.ResultCount = len(matches)
	return rec
}
