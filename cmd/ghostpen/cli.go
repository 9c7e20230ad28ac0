package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/ghostpen/ghostpen"
	"github.com/ghostpen/ghostpen/ingest"
	"github.com/ghostpen/ghostpen/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Chunks   ghostpen.ChunkStore
	Ingestor *ingest.Ingestor
	Voice    ghostpen.VoiceService
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Backend string `enum:"gemini,ollama" default:"gemini" help:"Model backend (gemini or ollama)"`

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API server"`
	Ingest   IngestCmd   `cmd:"" help:"Ingest a writing sample for a user"`
	Sources  SourcesCmd  `cmd:"" help:"List a user's ingested source files"`
	Delete   DeleteCmd   `cmd:"" help:"Remove all chunks from one source file"`
	Generate GenerateCmd `cmd:"" help:"Generate text in a user's voice"`
	Profile  ProfileCmd  `cmd:"" help:"Summarize a user's writing style"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8080" help:"Listen address"`
	Uploads string `default:"uploads" help:"Directory for uploaded files"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	User string `arg:"" help:"User ID"`
	Path string `arg:"" help:"File to ingest (.pdf, .txt, .md, .docx)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct {
	User string `arg:"" help:"User ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	User  string `arg:"" help:"User ID"`
	File  string `arg:"" help:"Source filename to remove"`
	Force bool   `help:"Confirm deletion"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	User      string `arg:"" help:"User ID"`
	Prompt    string `arg:"" help:"What to write"`
	StyleHint string `short:"s" help:"Additional style guidance"`
}

// ProfileCmd is the "profile" subcommand.
type ProfileCmd struct {
	User string `arg:"" help:"User ID"`
}
