//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ghostpen/ghostpen/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newIntegrationClient(t *testing.T) *genai.Client {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client
}

func TestEmbedder_Integration_ReturnsVector(t *testing.T) {
	t.Parallel()

	embedder := gemini.NewEmbedder(newIntegrationClient(t), "")

	vec, err := embedder.Embed(context.Background(), "The rain fell softly on the harbor town.")

	require.NoError(t, err)
	assert.NotEmpty(t, vec)
}

func TestGenerator_Integration_ReturnsText(t *testing.T) {
	t.Parallel()

	generator := gemini.NewGenerator(newIntegrationClient(t), "")

	text, err := generator.Generate(context.Background(),
		"You answer in exactly one word.", "Say hello.")

	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
