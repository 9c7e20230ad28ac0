// Package http provides the JSON API over upload, ingestion, and voice
// generation. Handlers translate between HTTP and the core services; all
// domain logic lives behind the ghostpen interfaces.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/fs"
	"github.com/ghostpen/ghostpen/ingest"
	"github.com/google/uuid"
)

// DefaultAddr is the address the server listens on unless configured.
const DefaultAddr = ":8080"

// ShutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const ShutdownTimeout = 5 * time.Second

// Server exposes the ingestion and generation services over HTTP.
type Server struct {
	Addr string

	Ingestor *ingest.Ingestor
	Voice    ghostpen.VoiceService
	Store    ghostpen.ChunkStore
	Uploads  *fs.UploadStore
	Logger   *slog.Logger

	mux *http.ServeMux
}

// NewServer creates a Server with its routes registered.
func NewServer(ingestor *ingest.Ingestor, voice ghostpen.VoiceService, store ghostpen.ChunkStore, uploads *fs.UploadStore, logger *slog.Logger) *Server {
	s := &Server{
		Addr:     DefaultAddr,
		Ingestor: ingestor,
		Voice:    voice,
		Store:    store,
		Uploads:  uploads,
		Logger:   logger,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /upload", s.handleUpload)
	s.mux.HandleFunc("GET /sources", s.handleListSources)
	s.mux.HandleFunc("DELETE /sources", s.handleDeleteSource)
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	s.mux.HandleFunc("POST /style-profile", s.handleStyleProfile)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

// Handler returns the full middleware-wrapped handler. Exposed so tests can
// exercise routing without a listener.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.loggingMiddleware(s.mux))
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.Logger.Info("http server starting", "addr", s.Addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("userId")
	if userID == "" {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "user ID required"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "no file uploaded"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "empty filename"))
		return
	}

	// Reject unsupported extensions before anything touches disk.
	if !s.Ingestor.Registry.Supported(header.Filename) {
		s.error(w, r, ghostpen.Errorf(ghostpen.EUNSUPPORTED, "unsupported file type: %s", header.Filename))
		return
	}

	path, err := s.Uploads.Save(header.Filename, file)
	if err != nil {
		s.error(w, r, err)
		return
	}

	summary, err := s.Ingestor.IngestFile(r.Context(), userID, path)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "user ID required"))
		return
	}

	sources, err := s.Store.ListSources(r.Context(), userID)
	if err != nil {
		s.error(w, r, err)
		return
	}
	if sources == nil {
		sources = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":  userID,
		"sources": sources,
		"count":   len(sources),
	})
}

func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "user ID required"))
		return
	}
	filename := r.URL.Query().Get("file")
	if filename == "" {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "file required"))
		return
	}

	removed, err := s.Store.DeleteSource(r.Context(), userID, filename)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":  userID,
		"file":    filename,
		"removed": removed,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req ghostpen.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "invalid request body"))
		return
	}

	result, err := s.Voice.Generate(r.Context(), req)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStyleProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.error(w, r, ghostpen.Errorf(ghostpen.EINVALID, "invalid request body"))
		return
	}

	profile, err := s.Voice.StyleProfile(r.Context(), req.UserID)
	if err != nil {
		s.error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"userId":       req.UserID,
		"styleProfile": profile,
	})
}

// codes maps application error codes to HTTP status codes. Codes not
// listed here report as 500.
var codes = map[string]int{
	ghostpen.EINVALID:     http.StatusBadRequest,
	ghostpen.EUNSUPPORTED: http.StatusBadRequest,
	ghostpen.EEXTRACT:     http.StatusBadRequest,
	ghostpen.ENOTFOUND:    http.StatusNotFound,
	ghostpen.EUPSTREAM:    http.StatusBadGateway,
	ghostpen.EUNAVAILABLE: http.StatusServiceUnavailable,
}

// errorStatus returns the HTTP status code for an application error.
func errorStatus(err error) int {
	if status, ok := codes[ghostpen.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// error writes the error as a JSON payload. Internal errors are logged and
// reported with a generic message so details never leak to clients.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("http request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": ghostpen.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.Logger.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
