package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Embedder turns raw text into vectors via an embedding Client. Query
// embedding wraps the text in an instruct prompt; document embedding sends
// the text as-is. MaxLength truncates the returned vector so all backends
// index the same dimensionality.
type Embedder struct {
	maxLength *int
	model     string

	client Client
}

type EmbedderOption func(e *Embedder)

func NewEmbedder(client Client, opts ...EmbedderOption) *Embedder {
	base := &Embedder{
		model:  defaultModel,
		client: client,
	}

	for _, opt := range opts {
		opt(base)
	}

	return base
}

func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

func WithMaxLength(length int) EmbedderOption {
	return func(e *Embedder) {
		e.maxLength = &length
	}
}

func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	slog.Debug("embedding text", "length", len(text), "model", e.model)

	embed, err := e.client.Generate(ctx, Request{
		Model:  e.model,
		Prompt: strings.TrimSpace(text),
	})
	if err != nil {
		return nil, err
	}

	return e.truncate(embed.Embedding), nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	task := "Given a search query, retrieve the most similar stored documents"
	instruct := wrapWithInstruct(task, strings.TrimSpace(query))

	slog.Debug("embedding query with instruct", "task", task, "query", query)

	embed, err := e.client.Generate(ctx, Request{
		Model:  e.model,
		Prompt: instruct,
	})
	if err != nil {
		return nil, err
	}

	return e.truncate(embed.Embedding), nil
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	slog.Debug("bulk embedding texts", "count", len(texts))

	resp, err := e.client.GenerateBatch(ctx, BatchRequest{
		Model:   e.model,
		Prompts: texts,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		vecs[i] = e.truncate(emb)
	}

	slog.Debug("generated bulk embeddings", "count", len(vecs), "model", e.model)
	return vecs, nil
}

func (e *Embedder) truncate(embedding []float32) []float32 {
	if e.maxLength != nil && len(embedding) > *e.maxLength {
		return embedding[:*e.maxLength]
	}
	return embedding
}

func wrapWithInstruct(task, query string) string {
	return fmt.Sprintf("Instruct: %s\nQuery:%s", task, query)
}
