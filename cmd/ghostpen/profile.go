package main

import (
	"fmt"

	"github.com/ghostpen/ghostpen"
)

// Run executes the profile command.
func (c *ProfileCmd) Run(deps *Dependencies) error {
	profile, err := deps.Voice.StyleProfile(deps.Ctx, c.User)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghostpen.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, profile)
	return nil
}
