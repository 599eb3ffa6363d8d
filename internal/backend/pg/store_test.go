package pg

import (
	"context"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	pkgtesting "github.com/DjordjeVuckovic/vector-bench/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx   context.Context
	testStore *Store
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pgc, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "vectors_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pgc.Container)

	testStore, err = NewStore(testCtx, "pg-test", Config{
		ConnStr:    pgc.ConnString,
		Table:      "vectors",
		Dimensions: 3,
	})
	if err != nil {
		panic(err)
	}
	defer testStore.Close()

	os.Exit(m.Run())
}

func truncateTable(t *testing.T) {
	t.Helper()
	_, err := testStore.db.Exec(testCtx, "TRUNCATE TABLE vectors")
	if err != nil {
		t.Fatalf("failed to truncate table: %v", err)
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	truncateTable(t)

	exact := uuid.New()
	near := uuid.New()
	far := uuid.New()

	err := testStore.Upsert(testCtx, []backend.Record{
		{ID: far, Embedding: []float32{-1, 0, 0}},
		{ID: near, Embedding: []float32{1, 0.3, 0}},
		{ID: exact, Embedding: []float32{1, 0, 0}},
	})
	require.NoError(t, err)

	matches, err := testStore.Query(testCtx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, exact, matches[0].ID)
	assert.Equal(t, near, matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestStore_UpsertOverwrites(t *testing.T) {
	truncateTable(t)

	id := uuid.New()
	require.NoError(t, testStore.Upsert(testCtx, []backend.Record{
		{ID: id, Embedding: []float32{1, 0, 0}},
	}))
	require.NoError(t, testStore.Upsert(testCtx, []backend.Record{
		{ID: id, Embedding: []float32{0, 1, 0}},
	}))

	n, err := testStore.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	matches, err := testStore.Query(testCtx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestStore_QueryEmptyTable(t *testing.T) {
	truncateTable(t)

	matches, err := testStore.Query(testCtx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
