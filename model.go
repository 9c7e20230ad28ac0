package ghostpen

import "context"

// Embedder produces a fixed-length vector representation of text. All
// chunks in a namespace must be embedded with the same model for the
// lifetime of that namespace, or similarity scores become meaningless;
// changing the embedding model requires re-ingesting every namespace.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces text from a system instruction and a user
// instruction. Synchronous, single request/response.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
