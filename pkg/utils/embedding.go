package utils

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingDim is the width of the catalog_embeddings vector column.
// Providers returning shorter vectors are zero-padded to this width.
const EmbeddingDim = 1536

type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
}

func NewOpenAIEmbeddingClient(apiKey string) EmbeddingClientInterface {
	return &OpenAIEmbeddingClient{client: openai.NewClient(apiKey)}
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := c.GetEmbeddings(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	return vectors[0], nil
}

func (c *OpenAIEmbeddingClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([]pgvector.Vector, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = pgvector.NewVector(padToDim(d.Embedding))
	}
	return vectors, nil
}

func padToDim(v []float32) []float32 {
	if len(v) >= EmbeddingDim {
		return v[:EmbeddingDim]
	}
	padded := make([]float32, EmbeddingDim)
	copy(padded, v)
	return padded
}
