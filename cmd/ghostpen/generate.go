package main

import (
	"fmt"
	"strings"

	"github.com/ghostpen/ghostpen"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	req := ghostpen.GenerationRequest{
		Prompt:    c.Prompt,
		UserID:    c.User,
		StyleHint: c.StyleHint,
	}

	result, err := deps.Voice.Generate(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghostpen.ErrorMessage(err))
		return err
	}

	if result.NoSamples() {
		fmt.Fprintln(deps.Stdout, result.Message)
		return nil
	}

	fmt.Fprintln(deps.Stdout, *result.GeneratedText)
	if len(result.SourcesUsed) > 0 {
		fmt.Fprintf(deps.Stderr, "sources: %s\n", strings.Join(result.SourcesUsed, ", "))
	}

	return nil
}
