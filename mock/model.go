package mock

import (
	"context"

	"github.com/ghostpen/ghostpen"
)

var _ ghostpen.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of ghostpen.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ ghostpen.Generator = (*Generator)(nil)

// Generator is a mock implementation of ghostpen.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, system, user string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, system, user string) (string, error) {
	return g.GenerateFn(ctx, system, user)
}
