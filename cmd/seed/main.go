package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/factory"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/vector-bench/internal/embedding"
	"github.com/DjordjeVuckovic/vector-bench/internal/vector"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	backends, err := resolveBackends(cfg)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}

	records, err := loadRecords(ctx, cfg)
	if err != nil {
		slog.Error("Failed to prepare records", "error", err)
		os.Exit(1)
	}
	slog.Info("Records prepared", "count", len(records), "dims", cfg.Dimensions)

	built, cleanup := factory.CreateFromSpec(ctx, backends, cfg.Dimensions)
	defer cleanup()

	seeded := 0
	for _, b := range built {
		if b.SetupErr != nil {
			slog.Error("Backend setup failed, skipping", "backend", b.Name, "error", b.SetupErr)
			continue
		}

		if err := seedStore(ctx, b.Store, records, cfg.BatchSize); err != nil {
			slog.Error("Seeding failed", "backend", b.Name, "error", err)
			continue
		}

		slog.Info("Backend seeded", "backend", b.Name, "records", len(records))
		seeded++
	}

	if seeded == 0 {
		slog.Error("No backend was seeded")
		os.Exit(1)
	}
}

func resolveBackends(cfg cliConfig) (map[string]spec.Backend, error) {
	if cfg.SpecPath != "" {
		rs, err := spec.LoadFromFile(cfg.SpecPath)
		if err != nil {
			return nil, err
		}
		return rs.Backends, nil
	}

	backends := make(map[string]spec.Backend)
	if cfg.PgConnStr != "" {
		backends["postgres"] = spec.Backend{Type: "postgres", Connection: cfg.PgConnStr}
	}
	if cfg.EsAddresses != "" {
		backends["elasticsearch"] = spec.Backend{Type: "elasticsearch", Connection: cfg.EsAddresses, Index: cfg.EsIndex}
	}
	if cfg.MinioEndpoint != "" {
		backends["objectstore"] = spec.Backend{
			Type:       "objectstore",
			Connection: cfg.MinioEndpoint,
			Bucket:     cfg.MinioBucket,
			AccessKey:  cfg.MinioAccess,
			SecretKey:  cfg.MinioSecret,
		}
	}

	if len(backends) == 0 {
		return nil, fmt.Errorf("no backends configured: pass -spec or at least one of -pg, -es-addresses, -minio")
	}
	return backends, nil
}

// seedDoc is one JSONL input line. Lines carrying an embedding are used
// as-is; lines carrying only text are embedded in bulk before upserting.
type seedDoc struct {
	ID        string            `json:"id,omitempty"`
	Text      string            `json:"text,omitempty"`
	Embedding []float32         `json:"embedding,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func loadRecords(ctx context.Context, cfg cliConfig) ([]backend.Record, error) {
	if cfg.Input == "" {
		return syntheticRecords(cfg.Seed, cfg.Count, cfg.Dimensions), nil
	}
	return recordsFromFile(ctx, cfg)
}

func syntheticRecords(seed int64, count, dims int) []backend.Record {
	r := rand.New(rand.NewSource(seed))
	records := make([]backend.Record, count)
	for i := range records {
		records[i] = backend.Record{
			ID:        uuid.New(),
			Embedding: vector.RandomUnit(r, dims),
			Metadata:  map[string]string{"source": "synthetic"},
		}
	}
	return records
}

func recordsFromFile(ctx context.Context, cfg cliConfig) ([]backend.Record, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var docs []seedDoc
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var doc seedDoc
		if err := json.Unmarshal(scanner.Bytes(), &doc); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if err := embedMissing(ctx, docs, cfg.Dimensions); err != nil {
		return nil, err
	}

	records := make([]backend.Record, 0, len(docs))
	for i, doc := range docs {
		if len(doc.Embedding) != cfg.Dimensions {
			return nil, fmt.Errorf("document %d has %d dimensions, expected %d", i, len(doc.Embedding), cfg.Dimensions)
		}

		id := uuid.New()
		if doc.ID != "" {
			parsed, err := uuid.Parse(doc.ID)
			if err != nil {
				return nil, fmt.Errorf("document %d has invalid id %q: %w", i, doc.ID, err)
			}
			id = parsed
		}

		records = append(records, backend.Record{
			ID:        id,
			Embedding: doc.Embedding,
			Metadata:  doc.Metadata,
		})
	}
	return records, nil
}

func embedMissing(ctx context.Context, docs []seedDoc, dims int) error {
	var texts []string
	var indices []int
	for i, doc := range docs {
		if len(doc.Embedding) == 0 {
			if doc.Text == "" {
				return fmt.Errorf("document %d has neither embedding nor text", i)
			}
			texts = append(texts, doc.Text)
			indices = append(indices, i)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	embCfg, err := embedding.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("input has text-only documents but no embedding service is configured: %w", err)
	}

	client, err := embedding.NewOllamaClient(embCfg.BaseURL)
	if err != nil {
		return fmt.Errorf("create embedding client: %w", err)
	}

	opts := []embedding.EmbedderOption{embedding.WithMaxLength(dims)}
	if embCfg.Model != "" {
		opts = append(opts, embedding.WithModel(embCfg.Model))
	}
	embedder := embedding.NewEmbedder(client, opts...)

	slog.Info("Embedding text documents", "count", len(texts))
	vecs, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	for j, idx := range indices {
		docs[idx].Embedding = vecs[j]
	}
	return nil
}

func seedStore(ctx context.Context, store backend.Store, records []backend.Record, batchSize int) error {
	if batchSize < 1 {
		batchSize = len(records)
	}
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		if err := store.Upsert(ctx, records[start:end]); err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}
