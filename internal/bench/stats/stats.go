package stats

import (
	"math"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/runner"
)

// LatencyStats describes the latency distribution of successful trials.
type LatencyStats struct {
	Min         time.Duration         `json:"min"`
	Max         time.Duration         `json:"max"`
	Mean        time.Duration         `json:"mean"`
	Stddev      time.Duration         `json:"stddev"`
	Percentiles map[int]time.Duration `json:"percentiles"`
	SampleCount int                   `json:"sample_count"`
}

var defaultPercentiles = []int{50, 95, 99}

func (s LatencyStats) P50() time.Duration { return s.Percentiles[50] }
func (s LatencyStats) P95() time.Duration { return s.Percentiles[95] }
func (s LatencyStats) P99() time.Duration { return s.Percentiles[99] }

// Summary is the per-backend aggregate. Rebuilt from the full trial set on
// every run; never updated incrementally.
//
// Policy: latency figures are computed over successful trials only. A failed
// trial's time-to-failure is not a valid latency sample for a completed
// query, so failures count toward ErrorRate and TrialCount but never enter
// Latency. Latency is nil when no trial succeeded: unavailable, not zero.
type Summary struct {
	Backend      string        `json:"backend"`
	Kind         backend.Kind  `json:"kind"`
	TrialCount   int           `json:"trial_count"`
	SuccessCount int           `json:"success_count"`
	ErrorRate    float64       `json:"error_rate"`
	Latency      *LatencyStats `json:"latency,omitempty"`

	// ThroughputQPS is successful trials divided by the wall-clock span from
	// first trial start to last trial completion.
	ThroughputQPS float64 `json:"throughput_qps"`

	SetupFailed bool   `json:"setup_failed"`
	SetupError  string `json:"setup_error,omitempty"`
}

// Summarize reduces one backend's raw trial records into its Summary.
func Summarize(br runner.BackendRun) Summary {
	s := Summary{
		Backend:    br.Name,
		Kind:       br.Kind,
		TrialCount: len(br.Records),
	}

	if br.SetupErr != nil {
		s.SetupFailed = true
		s.SetupError = br.SetupErr.Error()
	}

	var successes []time.Duration
	for _, rec := range br.Records {
		if rec.Succeeded() {
			s.SuccessCount++
			successes = append(successes, rec.Elapsed)
		}
	}

	if s.TrialCount > 0 {
		s.ErrorRate = float64(s.TrialCount-s.SuccessCount) / float64(s.TrialCount)
	} else if s.SetupFailed {
		s.ErrorRate = 1.0
	}

	if len(successes) > 0 {
		ls := computeLatencyStats(successes)
		s.Latency = &ls
		s.ThroughputQPS = throughput(s.SuccessCount, br.FirstStart, br.LastEnd)
	}

	return s
}

func throughput(successes int, firstStart, lastEnd time.Time) float64 {
	span := lastEnd.Sub(firstStart)
	// A single instantaneous trial can produce a zero span; floor it so the
	// rate stays finite.
	if span <= 0 {
		span = time.Nanosecond
	}
	return float64(successes) / span.Seconds()
}

func computeLatencyStats(durations []time.Duration) LatencyStats {
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats := LatencyStats{
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Percentiles: make(map[int]time.Duration, len(defaultPercentiles)),
		SampleCount: len(sorted),
	}

	var sum int64
	for _, d := range sorted {
		sum += int64(d)
	}
	stats.Mean = time.Duration(sum / int64(len(sorted)))

	if len(sorted) > 1 {
		var sumSquares float64
		meanNs := float64(stats.Mean.Nanoseconds())
		for _, d := range sorted {
			diff := float64(d.Nanoseconds()) - meanNs
			sumSquares += diff * diff
		}
		variance := sumSquares / float64(len(sorted)-1)
		stats.Stddev = time.Duration(math.Sqrt(variance))
	}

	for _, p := range defaultPercentiles {
		stats.Percentiles[p] = percentile(sorted, p)
	}

	return stats
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return time.Duration(float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight)
}
