package voice_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/mock"
	"github.com/ghostpen/ghostpen/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleStore returns a store with count chunks that answers every query
// with the given results.
func sampleStore(count int, results []ghostpen.RetrievalResult) *mock.ChunkStore {
	return &mock.ChunkStore{
		CountFn: func(context.Context, string) (int, error) {
			return count, nil
		},
		QueryFn: func(context.Context, string, string, int) ([]ghostpen.RetrievalResult, error) {
			return results, nil
		},
	}
}

func TestWriter_Generate(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty prompt before any store access", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			CountFn: func(context.Context, string) (int, error) {
				t.Fatal("store must not be touched for an invalid request")
				return 0, nil
			},
		}
		writer := voice.NewWriter(store, &mock.Generator{})

		_, err := writer.Generate(context.Background(), ghostpen.GenerationRequest{UserID: "alice"})

		require.Error(t, err)
		assert.Equal(t, ghostpen.EINVALID, ghostpen.ErrorCode(err))
	})

	t.Run("returns no-samples result without model calls", func(t *testing.T) {
		t.Parallel()

		store := sampleStore(0, nil)
		model := &mock.Generator{
			GenerateFn: func(context.Context, string, string) (string, error) {
				t.Fatal("model must not be called for a user with no samples")
				return "", nil
			},
		}
		writer := voice.NewWriter(store, model)

		result, err := writer.Generate(context.Background(), ghostpen.GenerationRequest{
			Prompt: "write an opening line",
			UserID: "alice",
		})

		require.NoError(t, err)
		assert.True(t, result.NoSamples())
		assert.Nil(t, result.GeneratedText)
		assert.NotEmpty(t, result.Message)
		assert.Empty(t, result.SourcesUsed)
	})

	t.Run("generates with profile, samples, and provenance", func(t *testing.T) {
		t.Parallel()

		results := []ghostpen.RetrievalResult{
			{Document: "The harbor was quiet.", SourceFile: "stories.txt"},
			{Document: "Rain traced the glass.", SourceFile: "novel.pdf"},
			{Document: "He said nothing at all.", SourceFile: "stories.txt"},
		}
		store := sampleStore(12, results)

		var systems, users []string
		model := &mock.Generator{
			GenerateFn: func(_ context.Context, system, user string) (string, error) {
				systems = append(systems, system)
				users = append(users, user)
				if strings.Contains(system, "literary analyst") {
					return "Short sentences, muted tone.", nil
				}
				return "  A new page in their voice.  ", nil
			},
		}
		writer := voice.NewWriter(store, model)

		result, err := writer.Generate(context.Background(), ghostpen.GenerationRequest{
			Prompt:    "write an opening scene",
			UserID:    "alice",
			StyleHint: "keep it under 100 words",
		})

		require.NoError(t, err)
		require.NotNil(t, result.GeneratedText)
		assert.Equal(t, "A new page in their voice.", *result.GeneratedText)
		require.NotNil(t, result.StyleProfile)
		assert.Equal(t, "Short sentences, muted tone.", *result.StyleProfile)
		assert.Equal(t, []string{"novel.pdf", "stories.txt"}, result.SourcesUsed)

		// Two model calls: one for the profile, one for the generation.
		require.Len(t, systems, 2)
		final := systems[1]
		assert.Contains(t, final, "Mirror the author exactly")
		assert.Contains(t, final, "Short sentences, muted tone.")
		assert.Contains(t, final, "The harbor was quiet.")
		assert.Equal(t, "Task: write an opening scene\nAdditional guidance: keep it under 100 words", users[1])
	})

	t.Run("upstream failure preserves the cause", func(t *testing.T) {
		t.Parallel()

		store := sampleStore(3, []ghostpen.RetrievalResult{{Document: "x", SourceFile: "a.txt"}})
		model := &mock.Generator{
			GenerateFn: func(_ context.Context, system, _ string) (string, error) {
				if strings.Contains(system, "literary analyst") {
					return "profile", nil
				}
				return "", fmt.Errorf("model timed out")
			},
		}
		writer := voice.NewWriter(store, model)

		_, err := writer.Generate(context.Background(), ghostpen.GenerationRequest{
			Prompt: "anything",
			UserID: "alice",
		})

		require.Error(t, err)
		assert.Equal(t, ghostpen.EUPSTREAM, ghostpen.ErrorCode(err))
		assert.Contains(t, ghostpen.ErrorMessage(err), "model timed out")
	})
}

func TestWriter_StyleProfile(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty user ID", func(t *testing.T) {
		t.Parallel()

		writer := voice.NewWriter(&mock.ChunkStore{}, &mock.Generator{})

		_, err := writer.StyleProfile(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, ghostpen.EINVALID, ghostpen.ErrorCode(err))
	})

	t.Run("profiles over the user's namespace", func(t *testing.T) {
		t.Parallel()

		// Aspect queries run concurrently, so guard the recording.
		var mu sync.Mutex
		var queriedUsers []string
		store := &mock.ChunkStore{
			QueryFn: func(_ context.Context, userID, _ string, _ int) ([]ghostpen.RetrievalResult, error) {
				mu.Lock()
				queriedUsers = append(queriedUsers, userID)
				mu.Unlock()
				return []ghostpen.RetrievalResult{{Document: "sample"}}, nil
			},
		}
		model := &mock.Generator{
			GenerateFn: func(context.Context, string, string) (string, error) {
				return "their style", nil
			},
		}
		writer := voice.NewWriter(store, model)

		profile, err := writer.StyleProfile(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, "their style", profile)
		for _, u := range queriedUsers {
			assert.Equal(t, "alice", u)
		}
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("without style hint", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Task: write a poem", voice.BuildUserPrompt("write a poem", ""))
	})

	t.Run("style hint is appended as additional guidance", func(t *testing.T) {
		t.Parallel()

		got := voice.BuildUserPrompt("write a poem", "make it rhyme")
		assert.Equal(t, "Task: write a poem\nAdditional guidance: make it rhyme", got)
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	samples := []ghostpen.RetrievalResult{
		{Document: "First sample."},
		{Document: "Second sample."},
	}

	got := voice.BuildSystemPrompt("A spare, rhythmic style.", samples)

	assert.Contains(t, got, "AUTHOR STYLE PROFILE:\nA spare, rhythmic style.")
	assert.Contains(t, got, "WRITING SAMPLES FROM THIS AUTHOR:\nFirst sample.\n\n---\n\nSecond sample.")
	assert.Contains(t, got, "Do NOT default to a generic style.")
}
