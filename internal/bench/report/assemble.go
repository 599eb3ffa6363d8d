package report

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/stats"
)

const reportVersion = "1"

const secondsPerMonth = 30 * 24 * 3600

// Assemble joins each backend's summary with its cost estimate into the
// final comparison report. Deterministic given its inputs; no I/O.
//
// volumeOverride, when positive, fixes the assumed monthly query volume for
// every backend so their cost figures are directly comparable. When zero,
// each backend's measured throughput is extrapolated to a 30-day month, and
// backends that never succeeded are priced at zero volume (fixed cost only).
func Assemble(result *runner.Result, model *cost.Model, dimensions int, volumeOverride int64, storageGB float64) (*Report, error) {
	r := &Report{
		Meta: Meta{
			Version:         reportVersion,
			Timestamp:       result.StartedAt,
			TrialsRequested: result.Config.Trials,
			K:               result.Config.K,
			Dimensions:      dimensions,
			Environment:     NewEnvironmentInfo(),
		},
	}

	for _, br := range result.Backends {
		summary := stats.Summarize(br)

		volume := volumeOverride
		if volume <= 0 {
			volume = int64(summary.ThroughputQPS * secondsPerMonth)
		}

		estimate, err := model.Estimate(br.Kind, volume, storageGB)
		if err != nil {
			return nil, fmt.Errorf("estimate cost for %q: %w", br.Name, err)
		}

		r.Meta.PricingVersion = estimate.PricingVersion
		r.Backends = append(r.Backends, BackendEntry{
			Name:    br.Name,
			Kind:    br.Kind,
			Summary: summary,
			Cost:    estimate,
		})
	}

	if r.Meta.Timestamp.IsZero() {
		r.Meta.Timestamp = time.Now()
	}

	return r, nil
}
