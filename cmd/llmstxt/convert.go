package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/goquery"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	var raw []byte
	var err error

	if c.File != "" {
		raw, err = os.ReadFile(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %s\n", c.File)
			return err
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
	}

	html := string(raw)
	if c.Extract {
		extractor := deps.Extractor
		if extractor == nil {
			extractor = goquery.NewExtractor()
		}
		result, err := extractor.Extract(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
			return err
		}
		html = result.ContentHTML
	}

	markdown, err := deps.Converter.Convert(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, markdown)
	return nil
}
