// Package ingest turns uploaded files into embedded chunks in a user's
// namespace: extract, split, replace.
package ingest

import (
	"context"
	"path/filepath"

	"github.com/ghostpen/ghostpen"
)

// Summary reports the outcome of ingesting one file.
type Summary struct {
	Collection  string `json:"collection"`
	File        string `json:"file"`
	Chunks      int    `json:"chunks"`
	TotalChunks int    `json:"totalDocsInCollection"`
}

// Ingestor runs the ingestion pipeline for uploaded files.
type Ingestor struct {
	Registry *ghostpen.ExtractorRegistry
	Splitter *ghostpen.Splitter
	Store    ghostpen.ChunkStore
}

// NewIngestor creates an Ingestor with the default splitter.
func NewIngestor(registry *ghostpen.ExtractorRegistry, store ghostpen.ChunkStore) *Ingestor {
	return &Ingestor{
		Registry: registry,
		Splitter: ghostpen.NewSplitter(),
		Store:    store,
	}
}

// IngestFile extracts the file at path, splits it into chunks, and replaces
// any prior chunks from the same filename in the user's namespace. The
// extension is validated before extraction; a supported file that yields no
// text is an EEXTRACT error and leaves the namespace untouched.
func (i *Ingestor) IngestFile(ctx context.Context, userID, path string) (*Summary, error) {
	if userID == "" {
		return nil, ghostpen.Errorf(ghostpen.EINVALID, "user ID required")
	}

	text, err := i.Registry.Extract(path)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	texts := i.Splitter.Split(text)
	if len(texts) == 0 {
		return nil, ghostpen.Errorf(ghostpen.EEXTRACT, "no extractable text found in %s", source)
	}

	chunks := ghostpen.NewChunks(source, texts)
	if err := i.Store.Ingest(ctx, userID, source, chunks); err != nil {
		return nil, err
	}

	total, err := i.Store.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Collection:  ghostpen.CollectionName(userID),
		File:        source,
		Chunks:      len(chunks),
		TotalChunks: total,
	}, nil
}
