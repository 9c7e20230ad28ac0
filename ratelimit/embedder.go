// Package ratelimit provides rate-limited decorators around ghostpen's
// model interfaces.
package ratelimit

import (
	"context"

	"github.com/ghostpen/ghostpen"
	"golang.org/x/time/rate"
)

// Ensure Embedder implements ghostpen.Embedder at compile time.
var _ ghostpen.Embedder = (*Embedder)(nil)

// Embedder wraps an Embedder with a token-bucket rate limit so that bulk
// ingestion, which embeds every chunk of a file, cannot flood the embedding
// backend. Burst of 1: no bursting allowed.
type Embedder struct {
	next    ghostpen.Embedder
	limiter *rate.Limiter
}

// NewEmbedder creates a rate-limited Embedder allowing rps calls per
// second.
func NewEmbedder(next ghostpen.Embedder, rps float64) *Embedder {
	return &Embedder{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Embed blocks until the rate limit allows a call, then delegates.
// Returns an error if the context is canceled before the wait completes.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return e.next.Embed(ctx, text)
}
