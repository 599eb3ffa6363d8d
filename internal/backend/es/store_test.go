package es

import (
	"testing"

	"github.com/DjordjeVuckovic/vector-bench/internal/backend"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecordToDocument(t *testing.T) {
	id := uuid.New()
	rec := backend.Record{
		ID:        id,
		Embedding: []float32{0.1, 0.2},
		Metadata:  map[string]string{"category": "tech"},
	}

	doc := recordToDocument(rec)

	assert.Equal(t, id.String(), doc.ID)
	assert.Equal(t, rec.Embedding, doc.Embedding)
	assert.Equal(t, rec.Metadata, doc.Metadata)
	assert.False(t, doc.IndexedAt.IsZero())
}

func TestRecordToDocument_AssignsID(t *testing.T) {
	doc := recordToDocument(backend.Record{Embedding: []float32{1}})

	parsed, err := uuid.Parse(doc.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, parsed)
}
