package runner

import (
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/apperr"
)

const (
	DefaultTrials = 10
	DefaultK      = 10
)

type Config struct {
	// Trials is the number of timed queries per backend.
	Trials int

	// K is the result-set size requested from every backend.
	K int

	// Parallel runs the trial streams of different backends concurrently.
	// Trials within one backend's stream always execute sequentially.
	Parallel bool

	// Timeout bounds the whole run. Zero means no run-level timeout.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Trials: DefaultTrials,
		K:      DefaultK,
	}
}

func (c Config) validate(backendCount, queryCount int) error {
	if c.Trials < 1 {
		return apperr.NewConfig("trial count must be at least 1")
	}
	if c.K < 1 {
		return apperr.NewConfig("k must be at least 1")
	}
	if backendCount == 0 {
		return apperr.NewConfig("run has no backends")
	}
	if queryCount == 0 {
		return apperr.NewConfig("run has no query vectors")
	}
	return nil
}
