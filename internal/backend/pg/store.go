package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const defaultTable = "vectors"

type Config struct {
	ConnStr    string
	Table      string
	Dimensions int
}

// Store answers queries through the pgvector extension's cosine index.
type Store struct {
	name  string
	db    *pgxpool.Pool
	pool  *ConnectionPool
	table string
}

func NewStore(ctx context.Context, name string, cfg Config) (*Store, error) {
	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: cfg.ConnStr})
	if err != nil {
		return nil, backend.Unavailable(name, err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	s := &Store{
		name:  name,
		db:    pool.GetConn(),
		pool:  pool,
		table: table,
	}

	if err := s.ensureSchema(ctx, cfg.Dimensions); err != nil {
		pool.Close()
		return nil, backend.Unavailable(name, err)
	}

	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context, dims int) error {
	if _, err := s.db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	cmd := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			embedding vector(%d) NOT NULL,
			metadata jsonb
		)
	`, s.table, dims)
	if _, err := s.db.Exec(ctx, cmd); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	idx := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`,
		s.table, s.table,
	)
	if _, err := s.db.Exec(ctx, idx); err != nil {
		return fmt.Errorf("create hnsw index on %s: %w", s.table, err)
	}

	slog.Info("Schema ensured", "table", s.table, "dims", dims, "backend", s.name)
	return nil
}

func (s *Store) Upsert(ctx context.Context, records []backend.Record) error {
	if len(records) == 0 {
		return nil
	}

	cmd := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, metadata)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata
	`, s.table)

	batch := &pgx.Batch{}
	for _, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		batch.Queue(cmd, rec.ID, pgvector.NewVector(rec.Embedding), rec.Metadata)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return backend.Classify(s.name, fmt.Errorf("upsert vectors: %w", err))
		}
	}

	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]backend.Match, error) {
	vec := pgvector.NewVector(embedding)

	cmd := fmt.Sprintf(`
		SELECT id, 1 - (embedding <=> $1) AS similarity
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, s.table)

	rows, err := s.db.Query(ctx, cmd, vec, k)
	if err != nil {
		return nil, backend.Classify(s.name, fmt.Errorf("knn query: %w", err))
	}
	defer rows.Close()

	var matches []backend.Match
	for rows.Next() {
		var m backend.Match
		if err := rows.Scan(&m.ID, &m.Score); err != nil {
			return nil, backend.QueryError(s.name, fmt.Errorf("scan match: %w", err))
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, backend.Classify(s.name, fmt.Errorf("read matches: %w", err))
	}

	return matches, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, s.table)).Scan(&n)
	if err != nil {
		return 0, backend.Classify(s.name, err)
	}
	return n, nil
}

func (s *Store) Name() string       { return s.name }
func (s *Store) Kind() backend.Kind { return backend.KindPostgres }

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
