package backend

import (
	"context"

	"github.com/google/uuid"
)

// Kind identifies one of the vector stores under comparison. It is the join
// key across trial records, summaries, cost estimates and the final report.
type Kind string

const (
	KindObjectStore   Kind = "objectstore"
	KindElasticsearch Kind = "elasticsearch"
	KindPostgres      Kind = "postgres"
	KindMemory        Kind = "memory"
)

func (k Kind) Valid() bool {
	switch k {
	case KindObjectStore, KindElasticsearch, KindPostgres, KindMemory:
		return true
	}
	return false
}

// Record is one stored vector with its metadata.
type Record struct {
	ID        uuid.UUID         `json:"id"`
	Embedding []float32         `json:"embedding"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Match is one ranked query hit. Score is similarity, higher is better.
type Match struct {
	ID    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
}

// Store is the uniform capability surface every backend satisfies. Query
// returns at most k matches ordered by descending similarity. Implementations
// surface failures through the taxonomy in errors.go so callers never need
// backend-specific error handling.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, embedding []float32, k int) ([]Match, error)
	Name() string
	Kind() Kind
	Close() error
}
