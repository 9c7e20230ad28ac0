// Package slog provides logging decorators for ghostpen services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ghostpen/ghostpen"
)

// Ensure LoggingChunkStore implements ghostpen.ChunkStore.
var _ ghostpen.ChunkStore = (*LoggingChunkStore)(nil)

// LoggingChunkStore wraps a ChunkStore with operational logging.
type LoggingChunkStore struct {
	next   ghostpen.ChunkStore
	logger *slog.Logger
}

// NewLoggingChunkStore creates a new LoggingChunkStore.
func NewLoggingChunkStore(next ghostpen.ChunkStore, logger *slog.Logger) *LoggingChunkStore {
	return &LoggingChunkStore{next: next, logger: logger}
}

// Ingest delegates to the wrapped store and logs the operation.
func (s *LoggingChunkStore) Ingest(ctx context.Context, userID, sourceFile string, chunks []*ghostpen.Chunk) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("chunk ingest",
			"user", userID,
			"source", sourceFile,
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Ingest(ctx, userID, sourceFile, chunks)
}

// Query delegates to the wrapped store and logs the operation.
func (s *LoggingChunkStore) Query(ctx context.Context, userID, queryText string, k int) (results []ghostpen.RetrievalResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("chunk query",
			"user", userID,
			"k", k,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Query(ctx, userID, queryText, k)
}

// ListSources delegates to the wrapped store.
func (s *LoggingChunkStore) ListSources(ctx context.Context, userID string) ([]string, error) {
	return s.next.ListSources(ctx, userID)
}

// DeleteSource delegates to the wrapped store and logs the operation.
func (s *LoggingChunkStore) DeleteSource(ctx context.Context, userID, filename string) (removed int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chunk delete",
			"user", userID,
			"source", filename,
			"removed", removed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSource(ctx, userID, filename)
}

// Count delegates to the wrapped store.
func (s *LoggingChunkStore) Count(ctx context.Context, userID string) (int, error) {
	return s.next.Count(ctx, userID)
}
