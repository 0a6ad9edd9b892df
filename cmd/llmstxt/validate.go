package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/llmstxt"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %s\n", c.File)
		return err
	}

	manifest, err := llmstxt.ParseManifest(string(raw))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.File, llmstxt.ErrorMessage(err))
		return err
	}

	if err := manifest.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.File, llmstxt.FormatManifestProblems([]error{err}))
		return err
	}

	links := 0
	for _, sec := range manifest.Sections {
		links += len(sec.Links)
	}
	fmt.Fprintf(deps.Stdout, "%s: ok (%d sections, %d links)\n", c.File, len(manifest.Sections), links)
	return nil
}
