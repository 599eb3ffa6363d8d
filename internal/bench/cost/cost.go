package cost

import (
	"fmt"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/pkg/utils"
)

// Estimate is the projected operating cost of one backend at an assumed
// monthly query volume and storage footprint.
type Estimate struct {
	Backend            backend.Kind `json:"backend"`
	PricingVersion     string       `json:"pricing_version"`
	MonthlyFixed       float64      `json:"monthly_fixed_usd"`
	VariableMonthly    float64      `json:"variable_monthly_usd"`
	StorageMonthly     float64      `json:"storage_monthly_usd"`
	TotalMonthly       float64      `json:"total_monthly_usd"`
	PerThousandQueries float64      `json:"per_thousand_queries_usd"`
	AssumedQueries     int64        `json:"assumed_monthly_queries"`
	AssumedStorageGB   float64      `json:"assumed_storage_gb"`
}

// Model maps a backend kind and an assumed volume to an Estimate. It is a
// pure function of the pricing table: measured trial data never feeds in
// except through the volume the caller chooses.
type Model struct {
	table Table
}

func NewModel(table Table) *Model {
	return &Model{table: table}
}

func DefaultModel() *Model {
	return NewModel(DefaultTable())
}

// Estimate extrapolates linearly in query volume. The fixed component
// assumes the priced instance keeps up with the given volume: far beyond a
// backend's validated regime (say a small search node at millions of QPS)
// the real cost curve steps up with required capacity, so treat high-volume
// figures as an approximation, not a guarantee.
func (m *Model) Estimate(kind backend.Kind, monthlyQueries int64, storageGB float64) (Estimate, error) {
	p, ok := m.table.Backends[kind]
	if !ok {
		return Estimate{}, fmt.Errorf("no pricing for backend kind %q (table version %s)", kind, m.table.Version)
	}
	if monthlyQueries < 0 {
		return Estimate{}, fmt.Errorf("monthly query volume must not be negative, got %d", monthlyQueries)
	}
	if storageGB < 0 {
		return Estimate{}, fmt.Errorf("storage must not be negative, got %f", storageGB)
	}

	variable := p.PerThousandQueries * float64(monthlyQueries) / 1000.0
	storage := p.PerGBMonth * storageGB

	return Estimate{
		Backend:            kind,
		PricingVersion:     m.table.Version,
		MonthlyFixed:       p.MonthlyFixed,
		VariableMonthly:    utils.RoundDecimal(variable, 4),
		StorageMonthly:     utils.RoundDecimal(storage, 4),
		TotalMonthly:       utils.RoundDecimal(p.MonthlyFixed+variable+storage, 2),
		PerThousandQueries: p.PerThousandQueries,
		AssumedQueries:     monthlyQueries,
		AssumedStorageGB:   storageGB,
	}, nil
}
