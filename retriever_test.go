package ghostpen_test

import (
	"context"
	"testing"

	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the store with the user's namespace", func(t *testing.T) {
		t.Parallel()

		var gotUser, gotQuery string
		var gotK int
		store := &mock.ChunkStore{
			QueryFn: func(_ context.Context, userID, queryText string, k int) ([]ghostpen.RetrievalResult, error) {
				gotUser, gotQuery, gotK = userID, queryText, k
				return []ghostpen.RetrievalResult{{Document: "sample"}}, nil
			},
		}
		retriever := ghostpen.NewStoreRetriever(store, "alice")

		results, err := retriever.Retrieve(context.Background(), "sea storms", 3)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "alice", gotUser)
		assert.Equal(t, "sea storms", gotQuery)
		assert.Equal(t, 3, gotK)
	})

	t.Run("defaults the limit", func(t *testing.T) {
		t.Parallel()

		var gotK int
		store := &mock.ChunkStore{
			QueryFn: func(_ context.Context, _, _ string, k int) ([]ghostpen.RetrievalResult, error) {
				gotK = k
				return nil, nil
			},
		}
		retriever := ghostpen.NewStoreRetriever(store, "alice")

		_, err := retriever.Retrieve(context.Background(), "anything", 0)

		require.NoError(t, err)
		assert.Equal(t, ghostpen.DefaultMaxResults, gotK)
	})

	t.Run("rejects empty query before touching the store", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			QueryFn: func(context.Context, string, string, int) ([]ghostpen.RetrievalResult, error) {
				t.Fatal("store must not be queried for an empty query")
				return nil, nil
			},
		}
		retriever := ghostpen.NewStoreRetriever(store, "alice")

		_, err := retriever.Retrieve(context.Background(), "", 3)

		require.Error(t, err)
		assert.Equal(t, ghostpen.EINVALID, ghostpen.ErrorCode(err))
	})
}
