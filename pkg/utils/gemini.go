package utils

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiEmbeddingClient implements EmbeddingClientInterface using Google's
// embedding models (free tier alternative to OpenAI).
type GeminiEmbeddingClient struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbeddingClient(apiKey, model string) (EmbeddingClientInterface, error) {
	if model == "" {
		model = "text-embedding-004"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbeddingClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	em := c.client.EmbeddingModel(c.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if resp.Embedding == nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: empty response")
	}
	return pgvector.NewVector(padToDim(resp.Embedding.Values)), nil
}

func (c *GeminiEmbeddingClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	em := c.client.EmbeddingModel(c.model)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini batch embedding: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini batch embedding: got %d vectors for %d inputs", len(resp.Embeddings), len(texts))
	}

	vectors := make([]pgvector.Vector, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vectors[i] = pgvector.NewVector(padToDim(e.Values))
	}
	return vectors, nil
}
