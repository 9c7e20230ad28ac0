package ghostpen

import "context"

// Retriever returns the chunks most similar to a query within a single
// user's namespace.
type Retriever interface {
	// Retrieve returns up to limit results ranked by ascending distance.
	// A limit of zero or less uses the retriever's default. Returns
	// EINVALID on an empty query.
	Retrieve(ctx context.Context, query string, limit int) ([]RetrievalResult, error)
}

// Ensure StoreRetriever implements Retriever at compile time.
var _ Retriever = (*StoreRetriever)(nil)

// StoreRetriever implements Retriever over a ChunkStore, bound to one user.
type StoreRetriever struct {
	Store      ChunkStore
	UserID     string
	MaxResults int
}

// NewStoreRetriever returns a StoreRetriever with the default result limit.
func NewStoreRetriever(store ChunkStore, userID string) *StoreRetriever {
	return &StoreRetriever{Store: store, UserID: userID, MaxResults: DefaultMaxResults}
}

// Retrieve validates the query and delegates to the store. The empty-query
// check happens here, before the store is touched: an empty query is a
// caller bug, not a legitimate zero-result search.
func (r *StoreRetriever) Retrieve(ctx context.Context, query string, limit int) ([]RetrievalResult, error) {
	if query == "" {
		return nil, Errorf(EINVALID, "query must be a non-empty string")
	}
	if limit <= 0 {
		limit = r.MaxResults
	}
	return r.Store.Query(ctx, r.UserID, query, limit)
}
