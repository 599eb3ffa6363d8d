package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/vector"
	"github.com/google/uuid"
)

// Store is a brute-force in-memory vector store. It backs harness tests and
// local dry runs where no real backend is reachable.
type Store struct {
	name string

	mu      sync.RWMutex
	records map[uuid.UUID]backend.Record
}

func NewStore(name string) *Store {
	return &Store{
		name:    name,
		records: make(map[uuid.UUID]backend.Record),
	}
}

func (s *Store) Upsert(ctx context.Context, records []backend.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		s.records[r.ID] = r
	}

	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]backend.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]backend.Match, 0, len(s.records))
	for id, r := range s.records {
		sim, err := vector.CosineSimilarity(embedding, r.Embedding)
		if err != nil {
			return nil, backend.QueryError(s.name, err)
		}
		matches = append(matches, backend.Match{ID: id, Score: sim})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Name() string       { return s.name }
func (s *Store) Kind() backend.Kind { return backend.KindMemory }
func (s *Store) Close() error       { return nil }
