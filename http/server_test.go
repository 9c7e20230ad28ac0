package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/fs"
	ghosthttp "github.com/ghostpen/ghostpen/http"
	"github.com/ghostpen/ghostpen/ingest"
	"github.com/ghostpen/ghostpen/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, voice ghostpen.VoiceService, store ghostpen.ChunkStore) *ghosthttp.Server {
	t.Helper()

	uploads, err := fs.NewUploadStore(t.TempDir())
	require.NoError(t, err)

	registry := ghostpen.NewExtractorRegistry()
	registry.Register(".txt", fs.NewTextExtractor())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ingestor := ingest.NewIngestor(registry, store)

	return ghosthttp.NewServer(ingestor, voice, store, uploads, logger)
}

func multipartUpload(t *testing.T, userID, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("userId", userID))
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestServer_Upload(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		var ingested []*ghostpen.Chunk
		store := &mock.ChunkStore{
			IngestFn: func(_ context.Context, userID, sourceFile string, chunks []*ghostpen.Chunk) error {
				assert.Equal(t, "alice", userID)
				assert.Equal(t, "sample.txt", sourceFile)
				ingested = chunks
				return nil
			},
			CountFn: func(context.Context, string) (int, error) {
				return len(ingested), nil
			},
		}
		server := newTestServer(t, &mock.VoiceService{}, store)

		body, contentType := multipartUpload(t, "alice", "sample.txt", "The rain came down in sheets over the harbor.")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var summary ingest.Summary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, "user_alice_writings", summary.Collection)
		assert.Equal(t, "sample.txt", summary.File)
		assert.Equal(t, 1, summary.Chunks)
		assert.Equal(t, 1, summary.TotalChunks)
		require.Len(t, ingested, 1)
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("userId", "alice"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no file uploaded")
	})

	t.Run("MissingUserID", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		body, contentType := multipartUpload(t, "", "sample.txt", "text")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "user ID required")
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			IngestFn: func(context.Context, string, string, []*ghostpen.Chunk) error {
				t.Fatal("store must not be touched for unsupported files")
				return nil
			},
		}
		server := newTestServer(t, &mock.VoiceService{}, store)

		body, contentType := multipartUpload(t, "alice", "binary.exe", "MZ")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unsupported file type")
	})
}

func TestServer_ListSources(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			ListSourcesFn: func(_ context.Context, userID string) ([]string, error) {
				assert.Equal(t, "alice", userID)
				return []string{"novel.pdf", "stories.txt"}, nil
			},
		}
		server := newTestServer(t, &mock.VoiceService{}, store)

		req := httptest.NewRequest(http.MethodGet, "/sources?userId=alice", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			UserID  string   `json:"userId"`
			Sources []string `json:"sources"`
			Count   int      `json:"count"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "alice", resp.UserID)
		assert.Equal(t, []string{"novel.pdf", "stories.txt"}, resp.Sources)
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("EmptyNamespace", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			ListSourcesFn: func(context.Context, string) ([]string, error) {
				return nil, nil
			},
		}
		server := newTestServer(t, &mock.VoiceService{}, store)

		req := httptest.NewRequest(http.MethodGet, "/sources?userId=bob", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sources":[]`)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodGet, "/sources", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_DeleteSource(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		store := &mock.ChunkStore{
			DeleteSourceFn: func(_ context.Context, userID, filename string) (int, error) {
				assert.Equal(t, "alice", userID)
				assert.Equal(t, "novel.pdf", filename)
				return 7, nil
			},
		}
		server := newTestServer(t, &mock.VoiceService{}, store)

		req := httptest.NewRequest(http.MethodDelete, "/sources?userId=alice&file=novel.pdf", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"removed":7`)
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodDelete, "/sources?userId=alice", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "file required")
	})
}

func TestServer_Generate(t *testing.T) {
	t.Parallel()

	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		text := "A new page in their voice."
		profile := "Short sentences. Dry wit."
		voice := &mock.VoiceService{
			GenerateFn: func(_ context.Context, req ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
				assert.Equal(t, "write an opening paragraph", req.Prompt)
				assert.Equal(t, "alice", req.UserID)
				assert.Equal(t, "keep it brief", req.StyleHint)
				return &ghostpen.GenerationResult{
					GeneratedText: &text,
					StyleProfile:  &profile,
					SourcesUsed:   []string{"novel.pdf"},
				}, nil
			},
		}
		server := newTestServer(t, voice, &mock.ChunkStore{})

		body := `{"prompt":"write an opening paragraph","userId":"alice","styleHint":"keep it brief"}`
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result ghostpen.GenerationResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		require.NotNil(t, result.GeneratedText)
		assert.Equal(t, text, *result.GeneratedText)
		assert.Equal(t, []string{"novel.pdf"}, result.SourcesUsed)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ValidationError", func(t *testing.T) {
		t.Parallel()

		voice := &mock.VoiceService{
			GenerateFn: func(_ context.Context, req ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
				return nil, ghostpen.Errorf(ghostpen.EINVALID, "prompt required")
			},
		}
		server := newTestServer(t, voice, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"userId":"alice"}`))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "prompt required")
	})

	t.Run("UpstreamError", func(t *testing.T) {
		t.Parallel()

		voice := &mock.VoiceService{
			GenerateFn: func(context.Context, ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
				return nil, ghostpen.Errorf(ghostpen.EUPSTREAM, "generation failed: model unavailable")
			},
		}
		server := newTestServer(t, voice, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"p","userId":"alice"}`))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "generation failed")
	})

	t.Run("NoSamples", func(t *testing.T) {
		t.Parallel()

		voice := &mock.VoiceService{
			GenerateFn: func(context.Context, ghostpen.GenerationRequest) (*ghostpen.GenerationResult, error) {
				return &ghostpen.GenerationResult{
					SourcesUsed: []string{},
					Message:     "No writing samples uploaded yet. Please upload some of your work first.",
				}, nil
			},
		}
		server := newTestServer(t, voice, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"p","userId":"bob"}`))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"generatedText":null`)
		assert.Contains(t, rec.Body.String(), "No writing samples uploaded yet")
	})
}

func TestServer_StyleProfile(t *testing.T) {
	t.Parallel()

	voice := &mock.VoiceService{
		StyleProfileFn: func(_ context.Context, userID string) (string, error) {
			assert.Equal(t, "alice", userID)
			return "Lyrical, long sentences, coastal imagery.", nil
		},
	}
	server := newTestServer(t, voice, &mock.ChunkStore{})

	req := httptest.NewRequest(http.MethodPost, "/style-profile", strings.NewReader(`{"userId":"alice"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coastal imagery")
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("RequestID", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("CORSPreflight", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, &mock.VoiceService{}, &mock.ChunkStore{})

		req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
