package objectstore

import (
	"testing"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectCodec_RoundTrip(t *testing.T) {
	rec := backend.Record{
		ID:        uuid.New(),
		Embedding: []float32{0.1, 0.2, 0.3},
		Metadata:  map[string]string{"title": "doc one", "category": "tech"},
	}

	data, err := encodeObject(rec)
	require.NoError(t, err)

	got, err := decodeObject(data)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Embedding, got.Embedding)
	assert.Equal(t, rec.Metadata, got.Metadata)
}

func TestDecodeObject_RejectsMissingID(t *testing.T) {
	_, err := decodeObject([]byte(`{"embedding":[0.1,0.2]}`))
	assert.Error(t, err)
}

func TestDecodeObject_RejectsGarbage(t *testing.T) {
	_, err := decodeObject([]byte(`not json`))
	assert.Error(t, err)
}

func TestIDFromKey(t *testing.T) {
	id := uuid.New()

	got, err := idFromKey("vectors/"+id.String()+".json", "vectors/")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = idFromKey("vectors/not-a-uuid.json", "vectors/")
	assert.Error(t, err)
}

func TestTopK(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	matches := []backend.Match{
		{ID: b, Score: 0.5},
		{ID: a, Score: 0.9},
		{ID: c, Score: 0.1},
	}

	got := topK(matches, 2)

	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].ID)
	assert.Equal(t, b, got[1].ID)
}

func TestTopK_KLargerThanSet(t *testing.T) {
	matches := []backend.Match{{ID: uuid.New(), Score: 0.3}}
	assert.Len(t, topK(matches, 5), 1)
}
