package cost

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"gopkg.in/yaml.v3"
)

// Pricing is the static price sheet for one backend kind.
type Pricing struct {
	// MonthlyFixed is the instance/base cost per month in USD.
	MonthlyFixed float64 `yaml:"monthly_fixed" json:"monthly_fixed"`

	// PerThousandQueries is the marginal request cost in USD per 1,000 queries.
	PerThousandQueries float64 `yaml:"per_thousand_queries" json:"per_thousand_queries"`

	// PerGBMonth is the marginal storage cost in USD per GB-month.
	PerGBMonth float64 `yaml:"per_gb_month" json:"per_gb_month"`
}

// Table is a versioned pricing table. Prices are data, not code: the version
// string travels into every report so cost assumptions stay auditable.
type Table struct {
	Version  string                   `yaml:"version" json:"version"`
	Backends map[backend.Kind]Pricing `yaml:"backends" json:"backends"`
}

// DefaultTable reflects published on-demand pricing for small single-node
// deployments of each backend, validated against measured low-QPS workloads.
func DefaultTable() Table {
	return Table{
		Version: "2026-07",
		Backends: map[backend.Kind]Pricing{
			backend.KindObjectStore: {
				MonthlyFixed:       32.0,
				PerThousandQueries: 0.0049,
				PerGBMonth:         0.023,
			},
			backend.KindElasticsearch: {
				MonthlyFixed:       159.0,
				PerThousandQueries: 0.0206,
				PerGBMonth:         0.10,
			},
			backend.KindPostgres: {
				MonthlyFixed:       89.0,
				PerThousandQueries: 0.0127,
				PerGBMonth:         0.115,
			},
			// The in-memory backend exists for tests and dry runs; it costs
			// nothing and keeps report assembly total.
			backend.KindMemory: {},
		},
	}
}

// LoadTable reads a pricing table override from a YAML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read pricing file: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parse pricing YAML: %w", err)
	}
	if t.Version == "" {
		return Table{}, fmt.Errorf("pricing table has no version")
	}
	if len(t.Backends) == 0 {
		return Table{}, fmt.Errorf("pricing table has no backends")
	}

	return t, nil
}
