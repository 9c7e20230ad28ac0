package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/docx"
	"github.com/ghostpen/ghostpen/fs"
	"github.com/ghostpen/ghostpen/gemini"
	"github.com/ghostpen/ghostpen/ingest"
	"github.com/ghostpen/ghostpen/ollama"
	"github.com/ghostpen/ghostpen/pdf"
	"github.com/ghostpen/ghostpen/ratelimit"
	ghostslog "github.com/ghostpen/ghostpen/slog"
	"github.com/ghostpen/ghostpen/sqlite"
	"github.com/ghostpen/ghostpen/voice"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the chunk store.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Chunks ghostpen.ChunkStore
	Voice  ghostpen.VoiceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ghostpen"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ghostpen --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cmd := strings.Fields(kongCtx.Command())[0]
	needGenerator := cmd == "serve" || cmd == "generate" || cmd == "profile"
	needEmbedder := needGenerator || cmd == "ingest"

	var embedder ghostpen.Embedder
	var generator ghostpen.Generator
	if needEmbedder {
		switch cli.Backend {
		case "ollama":
			client := ollama.NewClient(ollamaBaseURL())
			embedder = ollama.NewEmbedder(client, ollama.DefaultEmbeddingModel)
			if needGenerator {
				generator = ollama.NewGenerator(client, ollama.DefaultModel)
			}
		default:
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			embedder = ratelimit.NewEmbedder(gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel), embedRPS)
			if needGenerator {
				generator = gemini.NewGenerator(client, gemini.DefaultModel)
			}
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GHOSTPEN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Chunks = sqlite.NewChunkService(m.DB, embedder)
	if cmd == "serve" {
		m.Chunks = ghostslog.NewLoggingChunkStore(m.Chunks, deps.Logger)
		if generator != nil {
			generator = ghostslog.NewLoggingGenerator(generator, deps.Logger)
		}
	}
	if generator != nil {
		m.Voice = voice.NewWriter(m.Chunks, generator)
	}

	deps.DB = m.DB
	deps.Chunks = m.Chunks
	deps.Ingestor = ingest.NewIngestor(newExtractorRegistry(), m.Chunks)
	deps.Voice = m.Voice

	return kongCtx.Run(deps)
}

// embedRPS limits Gemini embedding calls to stay inside free-tier quotas.
const embedRPS = 2.0

func newExtractorRegistry() *ghostpen.ExtractorRegistry {
	registry := ghostpen.NewExtractorRegistry()
	text := fs.NewTextExtractor()
	registry.Register(".txt", text)
	registry.Register(".md", text)
	registry.Register(".pdf", pdf.NewExtractor())
	registry.Register(".docx", docx.NewExtractor())
	return registry
}

func ollamaBaseURL() string {
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		return url
	}
	return ollama.DefaultBaseURL
}

func defaultDBPath() string {
	if path := os.Getenv("GHOSTPEN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ghostpen.db"
	}
	dir := filepath.Join(home, ".ghostpen")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ghostpen.db")
}
