package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/vector-bench/internal/apperr"
)

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	client, err := NewOllamaClient("http://localhost:11434")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Model: "test-model"})
	require.Error(t, err)

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
}

func TestGenerateRejectsMissingModel(t *testing.T) {
	client, err := NewOllamaClient("http://localhost:11434")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Prompt: "some text"})
	require.Error(t, err)

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
}

func TestGenerateBatchRejectsEmptyPrompts(t *testing.T) {
	client, err := NewOllamaClient("http://localhost:11434")
	require.NoError(t, err)

	_, err = client.GenerateBatch(context.Background(), BatchRequest{Model: "test-model"})
	require.Error(t, err)

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
}

func TestGenerateHitsEmbeddingsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req OllamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		_ = json.NewEncoder(w).Encode(Response{Embedding: []float32{0.1, 0.2}})
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{Model: "test-model", Prompt: "hello"})
	require.NoError(t, err)
	assert.Len(t, resp.Embedding, 2)
}
