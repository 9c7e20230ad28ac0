package main

import (
	"fmt"

	"github.com/ghostpen/ghostpen"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	summary, err := deps.Ingestor.IngestFile(deps.Ctx, c.User, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghostpen.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %s: %d chunks (%d total for %s)\n",
		summary.File, summary.Chunks, summary.TotalChunks, c.User)
	return nil
}
