package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/vector"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultPrefix = "vectors/"

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// Store keeps one JSON object per vector under a common prefix and answers
// queries with a full-bucket brute-force cosine scan. There is no index;
// query latency grows linearly with the corpus, which is exactly the
// trade-off the harness is built to measure.
type Store struct {
	name   string
	client *minio.Client
	bucket string
	prefix string
}

func NewStore(ctx context.Context, name string, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, backend.Unavailable(name, fmt.Errorf("create client: %w", err))
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	s := &Store{
		name:   name,
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return backend.Unavailable(s.name, fmt.Errorf("check bucket %q: %w", s.bucket, err))
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return backend.Unavailable(s.name, fmt.Errorf("create bucket %q: %w", s.bucket, err))
	}
	slog.Info("Bucket created", "bucket", s.bucket, "backend", s.name)
	return nil
}

func (s *Store) Upsert(ctx context.Context, records []backend.Record) error {
	for i := range records {
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}

		data, err := encodeObject(records[i])
		if err != nil {
			return backend.QueryError(s.name, fmt.Errorf("encode %s: %w", records[i].ID, err))
		}

		_, err = s.client.PutObject(
			ctx,
			s.bucket,
			s.objectKey(records[i].ID),
			bytes.NewReader(data),
			int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/json"},
		)
		if err != nil {
			return backend.Classify(s.name, fmt.Errorf("put %s: %w", records[i].ID, err))
		}
	}

	return nil
}

// Query lists every object under the vector prefix, fetches and scores it,
// then keeps the top k. Unreadable objects are skipped and logged rather
// than failing the whole query, matching the scan-tolerant behavior of the
// store's write path.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]backend.Match, error) {
	var matches []backend.Match

	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, backend.Classify(s.name, fmt.Errorf("list objects: %w", info.Err))
		}

		rec, err := s.fetchObject(ctx, info.Key)
		if err != nil {
			slog.Warn("Skipping unreadable vector object", "key", info.Key, "error", err)
			continue
		}

		sim, err := vector.CosineSimilarity(embedding, rec.Embedding)
		if err != nil {
			return nil, backend.QueryError(s.name, fmt.Errorf("score %s: %w", info.Key, err))
		}
		matches = append(matches, backend.Match{ID: rec.ID, Score: sim})
	}

	if err := ctx.Err(); err != nil {
		return nil, backend.Classify(s.name, err)
	}

	return topK(matches, k), nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*backend.Record, error) {
	rec, err := s.fetchObject(ctx, s.objectKey(id))
	if err != nil {
		return nil, backend.Classify(s.name, err)
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.objectKey(id), minio.RemoveObjectOptions{})
	if err != nil {
		return backend.Classify(s.name, fmt.Errorf("remove %s: %w", id, err))
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, backend.Classify(s.name, fmt.Errorf("list objects: %w", info.Err))
		}
		id, err := idFromKey(info.Key, s.prefix)
		if err != nil {
			slog.Warn("Skipping object with malformed key", "key", info.Key, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) fetchObject(ctx context.Context, key string) (*backend.Record, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return decodeObject(data)
}

func (s *Store) objectKey(id uuid.UUID) string {
	return s.prefix + id.String() + ".json"
}

func (s *Store) Name() string       { return s.name }
func (s *Store) Kind() backend.Kind { return backend.KindObjectStore }
func (s *Store) Close() error       { return nil }

func encodeObject(r backend.Record) ([]byte, error) {
	return json.Marshal(r)
}

func decodeObject(data []byte) (*backend.Record, error) {
	var r backend.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if r.ID == uuid.Nil {
		return nil, fmt.Errorf("object has no id")
	}
	return &r, nil
}

func idFromKey(key, prefix string) (uuid.UUID, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(key, prefix), ".json")
	return uuid.Parse(raw)
}

func topK(matches []backend.Match, k int) []backend.Match {
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
