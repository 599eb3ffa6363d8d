package cost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_LinearInVolume(t *testing.T) {
	m := DefaultModel()

	e1, err := m.Estimate(backend.KindObjectStore, 1_000_000, 0)
	require.NoError(t, err)

	e2, err := m.Estimate(backend.KindObjectStore, 2_000_000, 0)
	require.NoError(t, err)

	assert.InDelta(t, 2*e1.VariableMonthly, e2.VariableMonthly, 1e-6)
	assert.Equal(t, e1.MonthlyFixed, e2.MonthlyFixed)
}

func TestEstimate_KnownFigures(t *testing.T) {
	m := DefaultModel()

	e, err := m.Estimate(backend.KindElasticsearch, 1_000_000, 10)
	require.NoError(t, err)

	assert.InDelta(t, 159.0, e.MonthlyFixed, 1e-9)
	assert.InDelta(t, 20.6, e.VariableMonthly, 1e-6)
	assert.InDelta(t, 1.0, e.StorageMonthly, 1e-6)
	assert.InDelta(t, 180.6, e.TotalMonthly, 0.01)
	assert.Equal(t, "2026-07", e.PricingVersion)
}

func TestEstimate_ZeroVolume(t *testing.T) {
	m := DefaultModel()

	e, err := m.Estimate(backend.KindPostgres, 0, 0)
	require.NoError(t, err)

	assert.Zero(t, e.VariableMonthly)
	assert.InDelta(t, 89.0, e.TotalMonthly, 1e-9)
}

func TestEstimate_UnknownKind(t *testing.T) {
	m := NewModel(Table{Version: "test", Backends: map[backend.Kind]Pricing{}})

	_, err := m.Estimate(backend.KindPostgres, 1000, 0)
	assert.Error(t, err)
}

func TestEstimate_NegativeInputs(t *testing.T) {
	m := DefaultModel()

	_, err := m.Estimate(backend.KindPostgres, -1, 0)
	assert.Error(t, err)

	_, err = m.Estimate(backend.KindPostgres, 1, -0.5)
	assert.Error(t, err)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "2026-08-custom"
backends:
  postgres:
    monthly_fixed: 120
    per_thousand_queries: 0.02
    per_gb_month: 0.2
`), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-custom", table.Version)

	m := NewModel(table)
	e, err := m.Estimate(backend.KindPostgres, 500_000, 5)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, e.VariableMonthly, 1e-6)
	assert.InDelta(t, 1.0, e.StorageMonthly, 1e-6)
	assert.InDelta(t, 131.0, e.TotalMonthly, 0.01)
}

func TestLoadTable_Invalid(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "noversion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backends:\n  postgres: {}\n"), 0o644))
	_, err := LoadTable(path)
	assert.Error(t, err)

	_, err = LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
