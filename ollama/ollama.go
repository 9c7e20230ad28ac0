// Package ollama implements ghostpen's model interfaces against a local
// Ollama server. Nothing leaves the machine.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ghostpen/ghostpen"
)

// Defaults for a stock local Ollama install.
const (
	DefaultBaseURL        = "http://localhost:11434"
	DefaultModel          = "llama3.2"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultTimeout        = 120 * time.Second
)

// Client talks to one Ollama server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
// The HTTP client's timeout bounds every call.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// post sends a JSON request and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return ghostpen.Errorf(ghostpen.EINTERNAL, "encoding ollama request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ghostpen.Errorf(ghostpen.EINTERNAL, "building ollama request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ghostpen.Errorf(ghostpen.EUPSTREAM, "calling ollama: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ghostpen.Errorf(ghostpen.EUPSTREAM, "ollama returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ghostpen.Errorf(ghostpen.EUPSTREAM, "decoding ollama response: %v", err)
	}
	return nil
}

// Ensure Embedder implements ghostpen.Embedder at compile time.
var _ ghostpen.Embedder = (*Embedder)(nil)

// Embedder implements ghostpen.Embedder using Ollama's embeddings API.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ghostpen.Errorf(ghostpen.EINVALID, "text required")
	}

	var resp embedResponse
	if err := e.client.post(ctx, "/api/embeddings", embedRequest{Model: e.model, Prompt: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, ghostpen.Errorf(ghostpen.EUPSTREAM, "ollama returned no embedding")
	}
	return resp.Embedding, nil
}

// Ensure Generator implements ghostpen.Generator at compile time.
var _ ghostpen.Generator = (*Generator)(nil)

// Generator implements ghostpen.Generator using Ollama's generate API.
type Generator struct {
	client *Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects
// DefaultModel.
func NewGenerator(client *Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate produces text from a system instruction and a user instruction.
func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	if user == "" {
		return "", ghostpen.Errorf(ghostpen.EINVALID, "user instruction required")
	}

	var resp generateResponse
	err := g.client.post(ctx, "/api/generate", generateRequest{
		Model:  g.model,
		Prompt: user,
		System: system,
		Stream: false,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}
