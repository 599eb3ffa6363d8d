package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/stats"
)

// Report is the persisted comparison record for one run. Field names are
// part of the external contract: downstream diffing and trend tooling keys
// on them, so they stay stable across runs.
type Report struct {
	Meta     Meta           `json:"meta"`
	Backends []BackendEntry `json:"backends"`
}

type Meta struct {
	Version         string          `json:"version"`
	Timestamp       time.Time       `json:"timestamp"`
	TrialsRequested int             `json:"trials_requested"`
	K               int             `json:"k"`
	Dimensions      int             `json:"dimensions"`
	PricingVersion  string          `json:"pricing_version"`
	Environment     EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// BackendEntry joins one backend's measured summary with its cost estimate.
type BackendEntry struct {
	Name    string        `json:"name"`
	Kind    backend.Kind  `json:"kind"`
	Summary stats.Summary `json:"summary"`
	Cost    cost.Estimate `json:"cost"`
}
