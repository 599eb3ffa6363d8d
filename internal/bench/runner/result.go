package runner

import (
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/trial"
)

// BackendRun is the raw outcome of one backend's trial stream. Every
// configured backend yields exactly one BackendRun, even when its adapter
// never came up (SetupErr set, no records).
type BackendRun struct {
	Name     string
	Kind     backend.Kind
	SetupErr error
	Records  []trial.Record

	// FirstStart and LastEnd bound the wall-clock window of the stream;
	// throughput is defined against this window, not the sum of latencies.
	FirstStart time.Time
	LastEnd    time.Time
}

func (br *BackendRun) observe(rec trial.Record) {
	if br.FirstStart.IsZero() || rec.Start.Before(br.FirstStart) {
		br.FirstStart = rec.Start
	}
	if end := rec.Start.Add(rec.Elapsed); end.After(br.LastEnd) {
		br.LastEnd = end
	}
	br.Records = append(br.Records, rec)
}

// Result holds the raw records of a whole run, one entry per configured
// backend, in deterministic order.
type Result struct {
	StartedAt time.Time
	Config    Config
	Backends  []BackendRun
}

// AllSetupFailed reports whether not a single backend came up. The CLI maps
// this to a non-zero exit code; partial failure is a valid result.
func (r *Result) AllSetupFailed() bool {
	for _, br := range r.Backends {
		if br.SetupErr == nil {
			return false
		}
	}
	return true
}
