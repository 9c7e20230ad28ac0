package main

import (
	"fmt"

	"github.com/ghostpen/ghostpen"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ghostpen.Errorf(ghostpen.EINVALID, "use --force to confirm deletion")
	}

	removed, err := deps.Chunks.DeleteSource(deps.Ctx, c.User, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghostpen.ErrorMessage(err))
		return err
	}

	if removed == 0 {
		fmt.Fprintf(deps.Stdout, "No chunks found for %q. Use 'ghostpen sources' to see ingested files.\n", c.File)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Removed %d chunks from %q\n", removed, c.File)
	return nil
}
