package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ghostpen/ghostpen"
)

// Compile-time interface verification.
var _ ghostpen.ChunkStore = (*ChunkService)(nil)

// ChunkService implements ghostpen.ChunkStore using SQLite. Embeddings are
// stored as little-endian float32 blobs and similarity queries are answered
// by a brute-force cosine scan of the namespace, which is exact and fast
// enough at personal-corpus scale.
//
// The embedder is fixed for the service's lifetime: every chunk in every
// namespace must be embedded with the same model, or distances stop meaning
// anything. Swapping the model requires a full re-ingestion.
type ChunkService struct {
	db       *DB
	embedder ghostpen.Embedder

	// Serializes ingests per collection so a re-uploaded file is never
	// half-replaced from two writers at once. Reads take no lock; seeing
	// a transiently-old generation is acceptable.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB, embedder ghostpen.Embedder) *ChunkService {
	return &ChunkService{
		db:       db,
		embedder: embedder,
		locks:    make(map[string]*sync.Mutex),
	}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b)
}

// encodeVector serializes an embedding as little-endian float32 bytes.
func encodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// decodeVector deserializes an embedding encoded by encodeVector.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// Identical directions yield 0; a zero vector yields 1.
func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// collectionLock returns the ingest mutex for a collection, creating it on
// first use. Collections are never torn down, so neither are their locks.
func (s *ChunkService) collectionLock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Ingest replaces all chunks from sourceFile in the user's namespace with
// the given set. Re-ingesting byte-identical content is a no-op that never
// touches the embedding backend. All chunks are validated and embedded
// before anything is deleted, and the delete-then-insert runs in one
// transaction: a failed ingest leaves the previous generation fully intact.
func (s *ChunkService) Ingest(ctx context.Context, userID, sourceFile string, chunks []*ghostpen.Chunk) error {
	if userID == "" {
		return ghostpen.Errorf(ghostpen.EINVALID, "user ID required")
	}
	if sourceFile == "" {
		return ghostpen.Errorf(ghostpen.EINVALID, "source file required")
	}
	if len(chunks) == 0 {
		return ghostpen.Errorf(ghostpen.EEXTRACT, "no extractable text found in %s", sourceFile)
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	collection := ghostpen.CollectionName(userID)
	lock := s.collectionLock(collection)

	// An unchanged file keeps its stored generation; the content hashes
	// spare the embedding calls entirely.
	lock.Lock()
	unchanged, err := s.sourceUnchanged(ctx, collection, sourceFile, chunks)
	lock.Unlock()
	if err != nil {
		return err
	}
	if unchanged {
		return nil
	}

	// Embed before the destructive delete so an upstream failure cannot
	// leave the namespace without either generation of the file.
	for _, c := range chunks {
		vec, err := s.embedder.Embed(ctx, c.Text)
		if err != nil {
			return err
		}
		c.Embedding = vec
	}

	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE collection = ? AND source = ?",
		collection, sourceFile,
	); err != nil {
		return ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (collection, id, source, file_type, chunk_index, content, content_hash, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, collection, c.ID, c.SourceFile, c.FileType, c.ChunkIndex,
			c.Text, hashContent(c.Text), encodeVector(c.Embedding), now,
		); err != nil {
			return ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	return nil
}

// sourceUnchanged reports whether the stored generation of sourceFile has
// exactly the same chunk ids and content hashes as the incoming set.
func (s *ChunkService) sourceUnchanged(ctx context.Context, collection, sourceFile string, chunks []*ghostpen.Chunk) (bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content_hash FROM chunks WHERE collection = ? AND source = ?",
		collection, sourceFile,
	)
	if err != nil {
		return false, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	defer rows.Close()

	stored := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return false, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
		}
		stored[id] = hash
	}
	if err := rows.Err(); err != nil {
		return false, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}

	if len(stored) != len(chunks) {
		return false, nil
	}
	for _, c := range chunks {
		if stored[c.ID] != hashContent(c.Text) {
			return false, nil
		}
	}
	return true, nil
}

// Query returns up to k chunks ranked by ascending cosine distance to
// queryText within the user's namespace.
func (s *ChunkService) Query(ctx context.Context, userID, queryText string, k int) ([]ghostpen.RetrievalResult, error) {
	if queryText == "" {
		return nil, ghostpen.Errorf(ghostpen.EINVALID, "query must be a non-empty string")
	}
	if k <= 0 {
		k = ghostpen.DefaultMaxResults
	}

	total, err := s.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []ghostpen.RetrievalResult{}, nil
	}
	if k > total {
		k = total
	}

	queryVec, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT content, source, file_type, chunk_index, embedding
		FROM chunks
		WHERE collection = ?
	`, ghostpen.CollectionName(userID))
	if err != nil {
		return nil, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	defer rows.Close()

	var results []ghostpen.RetrievalResult
	for rows.Next() {
		var r ghostpen.RetrievalResult
		var blob []byte
		if err := rows.Scan(&r.Document, &r.SourceFile, &r.FileType, &r.ChunkIndex, &blob); err != nil {
			return nil, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
		}
		d := cosineDistance(queryVec, decodeVector(blob))
		r.Distance = &d
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// ListSources returns the distinct source filenames in the user's namespace
// in lexicographic order.
func (s *ChunkService) ListSources(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT source FROM chunks WHERE collection = ? ORDER BY source ASC
	`, ghostpen.CollectionName(userID))
	if err != nil {
		return nil, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// DeleteSource removes all chunks from the named file and reports how many
// were removed.
func (s *ChunkService) DeleteSource(ctx context.Context, userID, filename string) (int, error) {
	collection := ghostpen.CollectionName(userID)
	lock := s.collectionLock(collection)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE collection = ? AND source = ?",
		collection, filename,
	)
	if err != nil {
		return 0, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	return int(n), nil
}

// Count returns the total number of chunks in the user's namespace.
func (s *ChunkService) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE collection = ?",
		ghostpen.CollectionName(userID),
	).Scan(&n)
	if err != nil {
		return 0, ghostpen.Errorf(ghostpen.EUNAVAILABLE, "chunk store: %v", err)
	}
	return n, nil
}
