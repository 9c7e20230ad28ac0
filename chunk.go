package ghostpen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Chunking configuration. Chunks are deliberately smaller than a typical
// document-QA setup: the goal is to preserve local stylistic texture
// (sentence rhythm, word choice) rather than long-range facts.
const (
	ChunkSize    = 400
	ChunkOverlap = 80
)

// DefaultMaxResults is the number of chunks retrieved per query unless the
// caller asks for a different limit.
const DefaultMaxResults = 6

// Chunk represents a bounded excerpt of an uploaded writing sample. It is
// the unit of embedding and retrieval.
type Chunk struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	SourceFile string `json:"sourceFile"`
	FileType   string `json:"fileType"`
	ChunkIndex int    `json:"chunkIndex"`

	// Set by the store at ingestion time.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.SourceFile == "" {
		return Errorf(EINVALID, "chunk source file required")
	}
	if c.ChunkIndex < 0 {
		return Errorf(EINVALID, "chunk index must not be negative")
	}
	return nil
}

// ChunkID derives the deterministic ID for the i-th chunk of sourceFile:
// the filename stem followed by "-c" and the chunk index. Determinism is
// what makes re-ingestion idempotent: re-uploading a file produces the same
// IDs, so the previous generation can be cleanly replaced.
func ChunkID(sourceFile string, i int) string {
	stem := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	return fmt.Sprintf("%s-c%d", stem, i)
}

// CollectionName maps a user ID to their storage-level namespace. All chunk
// operations are scoped to a single collection; no query ever crosses
// collections.
func CollectionName(userID string) string {
	return "user_" + userID + "_writings"
}

// NewChunks builds the chunk records for one source file from the splitter's
// output, in order, with deterministic IDs.
func NewChunks(sourceFile string, texts []string) []*Chunk {
	fileType := strings.ToLower(filepath.Ext(sourceFile))
	chunks := make([]*Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, &Chunk{
			ID:         ChunkID(sourceFile, i),
			Text:       text,
			SourceFile: sourceFile,
			FileType:   fileType,
			ChunkIndex: i,
		})
	}
	return chunks
}

// RetrievalResult represents one chunk returned by a similarity query.
// Transient: produced per query, never persisted.
type RetrievalResult struct {
	Document   string   `json:"document"`
	SourceFile string   `json:"sourceFile"`
	FileType   string   `json:"fileType"`
	ChunkIndex int      `json:"chunkIndex"`
	Distance   *float64 `json:"distance"`
}

// ChunkStore persists chunks under isolated per-user namespaces.
type ChunkStore interface {
	// Ingest replaces all chunks from sourceFile in the user's namespace
	// with the given set. The replacement is atomic: a failed ingest
	// leaves the previous generation intact, and concurrent queries never
	// observe a mix of old and new chunks for the same file.
	Ingest(ctx context.Context, userID, sourceFile string, chunks []*Chunk) error

	// Query returns up to k chunks from the user's namespace ranked by
	// ascending embedding distance to queryText. k is clamped to the
	// namespace's chunk count. An empty namespace yields an empty result,
	// not an error. Returns EINVALID if queryText is empty.
	Query(ctx context.Context, userID, queryText string, k int) ([]RetrievalResult, error)

	// ListSources returns the distinct source filenames in the user's
	// namespace in lexicographic order.
	ListSources(ctx context.Context, userID string) ([]string, error)

	// DeleteSource removes all chunks from the named file and reports how
	// many were removed. A filename with no chunks yields 0, not an error.
	DeleteSource(ctx context.Context, userID, filename string) (int, error)

	// Count returns the total number of chunks in the user's namespace.
	Count(ctx context.Context, userID string) (int, error)
}
