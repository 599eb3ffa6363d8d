package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/trial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRun(name string, latencies []time.Duration, failures []time.Duration) runner.BackendRun {
	br := runner.BackendRun{Name: name, Kind: backend.KindMemory}
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cursor := start
	idx := 0
	add := func(elapsed time.Duration, err error) {
		br.Records = append(br.Records, trial.Record{
			Backend: name,
			Index:   idx,
			Start:   cursor,
			Elapsed: elapsed,
			Err:     err,
		})
		cursor = cursor.Add(elapsed)
		idx++
	}

	for _, l := range latencies {
		add(l, nil)
	}
	for _, f := range failures {
		add(f, backend.QueryError(name, errors.New("boom")))
	}

	br.FirstStart = start
	br.LastEnd = cursor
	return br
}

func TestSummarize_MixedOutcomes(t *testing.T) {
	latencies := []time.Duration{
		100 * time.Millisecond, 110 * time.Millisecond, 120 * time.Millisecond,
		130 * time.Millisecond, 140 * time.Millisecond, 150 * time.Millisecond,
		160 * time.Millisecond,
	}
	failures := []time.Duration{
		500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond,
	}

	s := Summarize(mkRun("es-bench", latencies, failures))

	assert.Equal(t, 10, s.TrialCount)
	assert.Equal(t, 7, s.SuccessCount)
	assert.InDelta(t, 0.3, s.ErrorRate, 1e-9)

	require.NotNil(t, s.Latency)
	assert.Equal(t, 7, s.Latency.SampleCount)
	// mean over successes only: the 500ms failures must not drag it up
	assert.InDelta(t, float64(130*time.Millisecond), float64(s.Latency.Mean), float64(time.Millisecond))
	assert.Less(t, s.Latency.P99(), 500*time.Millisecond)
}

func TestSummarize_ZeroSuccesses(t *testing.T) {
	failures := []time.Duration{50 * time.Millisecond, 80 * time.Millisecond}

	s := Summarize(mkRun("pg-bench", nil, failures))

	assert.Equal(t, 2, s.TrialCount)
	assert.Equal(t, 0, s.SuccessCount)
	assert.Equal(t, 1.0, s.ErrorRate)
	assert.Nil(t, s.Latency, "latency must be unavailable, not zero")
	assert.Zero(t, s.ThroughputQPS)
}

func TestSummarize_SetupFailure(t *testing.T) {
	br := runner.BackendRun{
		Name:     "minio-bench",
		Kind:     backend.KindObjectStore,
		SetupErr: backend.Unavailable("minio-bench", errors.New("connection refused")),
	}

	s := Summarize(br)

	assert.True(t, s.SetupFailed)
	assert.NotEmpty(t, s.SetupError)
	assert.Zero(t, s.TrialCount)
	assert.Equal(t, 1.0, s.ErrorRate)
	assert.Nil(t, s.Latency)
}

func TestSummarize_PercentileOrdering(t *testing.T) {
	latencies := []time.Duration{
		10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond,
		40 * time.Millisecond, 50 * time.Millisecond, 60 * time.Millisecond,
		200 * time.Millisecond,
	}

	s := Summarize(mkRun("mem", latencies, nil))

	require.NotNil(t, s.Latency)
	assert.LessOrEqual(t, s.Latency.P50(), s.Latency.P95())
	assert.LessOrEqual(t, s.Latency.P95(), s.Latency.P99())
	assert.LessOrEqual(t, s.Latency.P99(), s.Latency.Max)
	assert.LessOrEqual(t, s.Latency.Min, s.Latency.P50())
}

func TestSummarize_Throughput(t *testing.T) {
	// 4 successes spread over 2s of wall clock
	latencies := []time.Duration{
		500 * time.Millisecond, 500 * time.Millisecond,
		500 * time.Millisecond, 500 * time.Millisecond,
	}

	s := Summarize(mkRun("mem", latencies, nil))

	assert.InDelta(t, 2.0, s.ThroughputQPS, 1e-9)
}

func TestSummarize_SingleTrialThroughputIsFinite(t *testing.T) {
	s := Summarize(mkRun("mem", []time.Duration{100 * time.Millisecond}, nil))

	assert.Greater(t, s.ThroughputQPS, 0.0)
	assert.False(t, s.ThroughputQPS > 1e12, "throughput should stay finite")
	assert.InDelta(t, 10.0, s.ThroughputQPS, 1e-6)
}

func TestSummarize_SpanZeroDoesNotDivideByZero(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	br := runner.BackendRun{
		Name: "mem",
		Kind: backend.KindMemory,
		Records: []trial.Record{
			{Backend: "mem", Start: start, Elapsed: 0},
		},
		FirstStart: start,
		LastEnd:    start,
	}

	s := Summarize(br)

	assert.Equal(t, 1, s.SuccessCount)
	assert.False(t, s.ThroughputQPS != s.ThroughputQPS, "throughput must not be NaN")
	assert.Greater(t, s.ThroughputQPS, 0.0)
}

func TestSummarize_EmptyRun(t *testing.T) {
	s := Summarize(runner.BackendRun{Name: "mem", Kind: backend.KindMemory})

	assert.Zero(t, s.TrialCount)
	assert.Zero(t, s.ErrorRate)
	assert.Nil(t, s.Latency)
}
