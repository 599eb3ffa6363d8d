package embedding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastPrompt string
	dims       int
}

func (f *fakeClient) Generate(_ context.Context, req Request) (*Response, error) {
	f.lastPrompt = req.Prompt
	return &Response{Embedding: make([]float32, f.dims)}, nil
}

func (f *fakeClient) GenerateBatch(_ context.Context, req BatchRequest) (*BatchResponse, error) {
	out := make([][]float32, len(req.Prompts))
	for i := range out {
		out[i] = make([]float32, f.dims)
	}
	return &BatchResponse{Embeddings: out}, nil
}

func TestEmbedQueryWrapsInstruct(t *testing.T) {
	client := &fakeClient{dims: 8}
	e := NewEmbedder(client, WithModel("test-model"))

	_, err := e.EmbedQuery(context.Background(), "  cheap gpu servers  ")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(client.lastPrompt, "Instruct:"))
	assert.Contains(t, client.lastPrompt, "cheap gpu servers")
}

func TestEmbedTextTruncates(t *testing.T) {
	client := &fakeClient{dims: 16}
	e := NewEmbedder(client, WithMaxLength(8))

	vec, err := e.EmbedText(context.Background(), "some document body")
	require.NoError(t, err)
	assert.Len(t, vec, 8)
}

func TestEmbedTextsPreservesOrderAndCount(t *testing.T) {
	client := &fakeClient{dims: 4}
	e := NewEmbedder(client)

	vecs, err := e.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Len(t, v, 4)
	}
}
