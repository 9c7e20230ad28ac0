package main

import (
	"fmt"

	"github.com/ghostpen/ghostpen"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources, err := deps.Chunks.ListSources(deps.Ctx, c.User)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghostpen.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintf(deps.Stdout, "No sources found for %q. Use 'ghostpen ingest' to add writing samples.\n", c.User)
		return nil
	}

	for _, source := range sources {
		fmt.Fprintln(deps.Stdout, source)
	}

	return nil
}
