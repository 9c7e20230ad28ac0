package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghostpen/ghostpen/fs"
	ghosthttp "github.com/ghostpen/ghostpen/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	uploads, err := fs.NewUploadStore(c.Uploads)
	if err != nil {
		return fmt.Errorf("failed to create upload directory %q: %w", c.Uploads, err)
	}

	server := ghosthttp.NewServer(deps.Ingestor, deps.Voice, deps.Chunks, uploads, deps.Logger)
	server.Addr = c.Addr

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}
