package factory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/es"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/memory"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/objectstore"
	"github.com/DjordjeVuckovic/vector-bench/internal/backend/pg"
	"github.com/DjordjeVuckovic/vector-bench/internal/bench/spec"
)

// Built holds the outcome of constructing one configured backend. A backend
// whose constructor failed still appears here, with SetupErr set, so the
// runner can report it instead of silently dropping it.
type Built struct {
	Name     string
	Kind     backend.Kind
	Store    backend.Store
	SetupErr error
}

// CreateFromSpec constructs one store per configured backend. Construction
// failures are isolated per backend; the returned cleanup closes every store
// that did come up.
func CreateFromSpec(ctx context.Context, backends map[string]spec.Backend, dims int) ([]Built, func()) {
	built := make([]Built, 0, len(backends))

	for _, name := range sortedNames(backends) {
		b := backends[name]
		store, err := create(ctx, name, b, dims)

		entry := Built{Name: name, Kind: backend.Kind(b.Type)}
		if err != nil {
			entry.SetupErr = backend.Classify(name, err)
		} else {
			entry.Store = store
		}
		built = append(built, entry)
	}

	cleanup := func() {
		for _, b := range built {
			if b.Store != nil {
				_ = b.Store.Close()
			}
		}
	}

	return built, cleanup
}

func create(ctx context.Context, name string, b spec.Backend, dims int) (backend.Store, error) {
	switch backend.Kind(b.Type) {
	case backend.KindObjectStore:
		return objectstore.NewStore(ctx, name, objectstore.Config{
			Endpoint:  b.Connection,
			AccessKey: b.AccessKey,
			SecretKey: b.SecretKey,
			Bucket:    b.Bucket,
			UseSSL:    b.UseSSL,
			Prefix:    b.Prefix,
		})

	case backend.KindElasticsearch:
		index := b.Index
		if index == "" {
			index = "vectors"
		}
		return es.NewStore(ctx, name, es.ClientConfig{
			Addresses:  strings.Split(b.Connection, ","),
			IndexName:  index,
			Username:   b.Username,
			Password:   b.Password,
			Dimensions: dims,
		})

	case backend.KindPostgres:
		return pg.NewStore(ctx, name, pg.Config{
			ConnStr:    b.Connection,
			Table:      b.Table,
			Dimensions: dims,
		})

	case backend.KindMemory:
		return memory.NewStore(name), nil

	default:
		return nil, fmt.Errorf("unsupported backend type %q for %q", b.Type, name)
	}
}

func sortedNames(backends map[string]spec.Backend) []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
