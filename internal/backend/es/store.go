package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/densevectorsimilarity"
	"github.com/google/uuid"
)

// Document is the vector document structure for Elasticsearch.
type Document struct {
	ID        string            `json:"id"`
	Embedding []float32         `json:"embedding"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	IndexedAt time.Time         `json:"indexed_at"`
}

// Store answers queries through the native kNN index of an Elasticsearch
// cluster.
type Store struct {
	name      string
	client    *elasticsearch.TypedClient
	indexName string
	config    ClientConfig
}

func NewStore(ctx context.Context, name string, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, backend.Unavailable(name, fmt.Errorf("create client: %w", err))
	}

	store := &Store{
		name:      name,
		client:    client,
		indexName: config.IndexName,
		config:    config,
	}

	if err := store.EnsureIndex(ctx); err != nil {
		return nil, backend.Unavailable(name, fmt.Errorf("ensure index: %w", err))
	}

	return store, nil
}

func (s *Store) EnsureIndex(ctx context.Context) error {
	existsRes, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	dims := s.config.Dimensions
	indexed := true
	cosine := densevectorsimilarity.Cosine

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id": types.NewKeywordProperty(),
			"embedding": &types.DenseVectorProperty{
				Dims:       &dims,
				Index:      &indexed,
				Similarity: &cosine,
			},
			"metadata":   types.NewObjectProperty(),
			"indexed_at": types.NewDateProperty(),
		},
	}

	createRes, err := s.client.Indices.Create(s.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName, "dims", dims)
	return nil
}

func (s *Store) Upsert(ctx context.Context, records []backend.Record) error {
	if len(records) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.indexName,
		Client:        s.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return backend.Classify(s.name, fmt.Errorf("create bulk indexer: %w", err))
	}

	var failed int64

	for _, rec := range records {
		doc := recordToDocument(rec)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(docBytes),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed++
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return backend.Classify(s.name, fmt.Errorf("close bulk indexer: %w", err))
	}

	if failed > 0 {
		return backend.QueryError(s.name, fmt.Errorf("failed to index %d out of %d vectors", failed, len(records)))
	}

	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]backend.Match, error) {
	numCandidates := k * 10

	res, err := s.client.Search().
		Index(s.indexName).
		Knn(types.KnnSearch{
			Field:         "embedding",
			QueryVector:   embedding,
			K:             &k,
			NumCandidates: &numCandidates,
		}).
		Size(k).
		Do(ctx)
	if err != nil {
		return nil, backend.Classify(s.name, fmt.Errorf("knn search: %w", err))
	}

	matches := make([]backend.Match, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, backend.QueryError(s.name, fmt.Errorf("unmarshal hit: %w", err))
		}

		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, backend.QueryError(s.name, fmt.Errorf("parse doc id %q: %w", doc.ID, err))
		}

		var score float64
		if hit.Score_ != nil {
			score = float64(*hit.Score_)
		}
		matches = append(matches, backend.Match{ID: id, Score: score})
	}

	return matches, nil
}

func recordToDocument(rec backend.Record) Document {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return Document{
		ID:        rec.ID.String(),
		Embedding: rec.Embedding,
		Metadata:  rec.Metadata,
		IndexedAt: time.Now(),
	}
}

func (s *Store) Name() string       { return s.name }
func (s *Store) Kind() backend.Kind { return backend.KindElasticsearch }
func (s *Store) Close() error       { return nil }
