package mock

import (
	"context"

	"github.com/ghostpen/ghostpen"
)

var _ ghostpen.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of ghostpen.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, limit int) ([]ghostpen.RetrievalResult, error)
}

func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]ghostpen.RetrievalResult, error) {
	return r.RetrieveFn(ctx, query, limit)
}
