package mock

import (
	"context"

	"github.com/ghostpen/ghostpen"
)

var _ ghostpen.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of ghostpen.ChunkStore.
type ChunkStore struct {
	IngestFn       func(ctx context.Context, userID, sourceFile string, chunks []*ghostpen.Chunk) error
	QueryFn        func(ctx context.Context, userID, queryText string, k int) ([]ghostpen.RetrievalResult, error)
	ListSourcesFn  func(ctx context.Context, userID string) ([]string, error)
	DeleteSourceFn func(ctx context.Context, userID, filename string) (int, error)
	CountFn        func(ctx context.Context, userID string) (int, error)
}

func (s *ChunkStore) Ingest(ctx context.Context, userID, sourceFile string, chunks []*ghostpen.Chunk) error {
	return s.IngestFn(ctx, userID, sourceFile, chunks)
}

func (s *ChunkStore) Query(ctx context.Context, userID, queryText string, k int) ([]ghostpen.RetrievalResult, error) {
	return s.QueryFn(ctx, userID, queryText, k)
}

func (s *ChunkStore) ListSources(ctx context.Context, userID string) ([]string, error) {
	return s.ListSourcesFn(ctx, userID)
}

func (s *ChunkStore) DeleteSource(ctx context.Context, userID, filename string) (int, error) {
	return s.DeleteSourceFn(ctx, userID, filename)
}

func (s *ChunkStore) Count(ctx context.Context, userID string) (int, error) {
	return s.CountFn(ctx, userID)
}
