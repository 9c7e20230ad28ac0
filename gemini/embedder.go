// Package gemini implements ghostpen's model interfaces using Google
// Gemini.
package gemini

import (
	"context"
	"time"

	"github.com/ghostpen/ghostpen"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is used when no embedding model is specified.
// Every chunk in a namespace must be embedded with the same model; changing
// it requires re-ingesting all namespaces.
const DefaultEmbeddingModel = "text-embedding-004"

// DefaultTimeout bounds every call to the Gemini API.
const DefaultTimeout = 60 * time.Second

// Ensure Embedder implements ghostpen.Embedder at compile time.
var _ ghostpen.Embedder = (*Embedder)(nil)

// Embedder implements ghostpen.Embedder using the Gemini embeddings API.
type Embedder struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model, timeout: DefaultTimeout}
}

// Embed returns the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ghostpen.Errorf(ghostpen.EINVALID, "text required")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, "user")},
		nil,
	)
	if err != nil {
		return nil, ghostpen.Errorf(ghostpen.EUPSTREAM, "gemini embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, ghostpen.Errorf(ghostpen.EUPSTREAM, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}
