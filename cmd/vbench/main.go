package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/apperr"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/factory"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/cost"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/vector-bench/internal/embedding"
	"github.com/DjordjeVuckovic/vector-bench/internal/vector"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	rs, err := buildRunSpec(cfg)
	if err != nil {
		fatal("Invalid configuration", err)
	}

	backends, cleanup := factory.CreateFromSpec(ctx, rs.Backends, rs.Workload.Dimensions)
	defer cleanup()

	queries, err := buildQueries(ctx, rs)
	if err != nil {
		fatal("Failed to prepare query vectors", err)
	}

	runCfg := runner.Config{
		Trials:   rs.Workload.Trials,
		K:        rs.Workload.K,
		Parallel: rs.Workload.Parallel,
		Timeout:  time.Duration(rs.Workload.TimeoutSec) * time.Second,
	}

	result, err := runner.New(runCfg).Run(ctx, backends, queries)
	if err != nil {
		fatal("Benchmark failed", err)
	}

	model, err := buildCostModel(cfg, rs)
	if err != nil {
		fatal("Invalid pricing table", err)
	}

	volume := rs.Cost.MonthlyQueries
	if cfg.Volume > 0 {
		volume = cfg.Volume
	}
	storageGB := rs.Cost.StorageGB
	if storageGB <= 0 {
		storageGB = cfg.StorageGB
	}

	rpt, err := report.Assemble(result, model, rs.Workload.Dimensions, volume, storageGB)
	if err != nil {
		fatal("Report assembly failed", err)
	}

	report.WriteTable(rpt, os.Stdout)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			fatal("Failed to write JSON report", err)
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	// Partial failure is a valid result; only a run where no backend came
	// up at all exits non-zero.
	if result.AllSetupFailed() {
		slog.Error("No backend completed setup")
		os.Exit(1)
	}
}

func buildRunSpec(cfg cliConfig) (*spec.RunSpec, error) {
	if cfg.SpecPath != "" {
		rs, err := spec.LoadFromFile(cfg.SpecPath)
		if err != nil {
			return nil, err
		}
		applyFlagOverrides(rs, cfg)
		return rs, nil
	}

	rs := &spec.RunSpec{
		Backends: make(map[string]spec.Backend),
		Workload: spec.Workload{
			Trials:     cfg.Trials,
			K:          cfg.K,
			Dimensions: cfg.Dimensions,
			QuerySeed:  cfg.QuerySeed,
			QueryCount: cfg.QueryCount,
			Parallel:   cfg.Parallel,
			TimeoutSec: cfg.TimeoutSec,
		},
		Cost: spec.CostAssumptions{
			MonthlyQueries: cfg.Volume,
			StorageGB:      cfg.StorageGB,
		},
	}

	if cfg.PgConnStr != "" {
		rs.Backends["postgres"] = spec.Backend{Type: "postgres", Connection: cfg.PgConnStr}
	}
	if cfg.EsAddresses != "" {
		rs.Backends["elasticsearch"] = spec.Backend{Type: "elasticsearch", Connection: cfg.EsAddresses, Index: cfg.EsIndex}
	}
	if cfg.MinioEndpoint != "" {
		rs.Backends["objectstore"] = spec.Backend{
			Type:       "objectstore",
			Connection: cfg.MinioEndpoint,
			Bucket:     cfg.MinioBucket,
			AccessKey:  cfg.MinioAccess,
			SecretKey:  cfg.MinioSecret,
		}
	}

	if len(rs.Backends) == 0 {
		return nil, apperr.NewConfig("quick mode requires at least one of -pg, -es-addresses, or -minio")
	}

	if err := spec.Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// applyFlagOverrides lets explicitly given flags win over the spec file in
// the few places where re-running a spec with a tweaked workload is common.
func applyFlagOverrides(rs *spec.RunSpec, cfg cliConfig) {
	if cfg.isSet("trials") {
		rs.Workload.Trials = cfg.Trials
	}
	if cfg.isSet("k") {
		rs.Workload.K = cfg.K
	}
	if cfg.isSet("parallel") {
		rs.Workload.Parallel = cfg.Parallel
	}
	if cfg.isSet("timeout") {
		rs.Workload.TimeoutSec = cfg.TimeoutSec
	}
}

// buildQueries prefers the spec's text queries, embedded through the
// configured embedding service, so every backend answers the same semantic
// questions. Without text queries it falls back to deterministic synthetic
// vectors from the workload seed.
func buildQueries(ctx context.Context, rs *spec.RunSpec) ([][]float32, error) {
	if len(rs.Workload.Queries) == 0 {
		return vector.DeterministicBatch(rs.Workload.QuerySeed, rs.Workload.QueryCount, rs.Workload.Dimensions), nil
	}

	embCfg, err := embedding.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("spec has text queries but no embedding service is configured: %w", err)
	}

	client, err := embedding.NewOllamaClient(embCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	opts := []embedding.EmbedderOption{embedding.WithMaxLength(rs.Workload.Dimensions)}
	if embCfg.Model != "" {
		opts = append(opts, embedding.WithModel(embCfg.Model))
	}
	embedder := embedding.NewEmbedder(client, opts...)

	queries := make([][]float32, len(rs.Workload.Queries))
	for i, q := range rs.Workload.Queries {
		vec, err := embedder.EmbedQuery(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("embed query %q: %w", q, err)
		}
		queries[i] = vec
	}
	return queries, nil
}

func buildCostModel(cfg cliConfig, rs *spec.RunSpec) (*cost.Model, error) {
	pricingPath := rs.Cost.PricingPath
	if cfg.Pricing != "" {
		pricingPath = cfg.Pricing
	}
	if pricingPath == "" {
		return cost.DefaultModel(), nil
	}

	table, err := cost.LoadTable(pricingPath)
	if err != nil {
		return nil, err
	}
	return cost.NewModel(table), nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)

	var cfgErr *apperr.ConfigError
	if errors.As(err, &cfgErr) {
		os.Exit(2)
	}
	os.Exit(1)
}
