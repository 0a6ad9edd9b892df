package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/llmstxt"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Converter  llmstxt.Converter
	Detector   llmstxt.ContentDetector
	Extractor  llmstxt.Extractor
	Cache      llmstxt.ConversionCache
	Sitemaps   llmstxt.SitemapService
	Comparator llmstxt.SizeComparator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log operations to stderr"`

	Convert  ConvertCmd  `cmd:"" help:"Convert a single HTML file (or stdin) to markdown"`
	Build    BuildCmd    `cmd:"" help:"Convert a documentation tree and write llms.txt"`
	Validate ValidateCmd `cmd:"" help:"Validate an llms.txt manifest"`
	Compare  CompareCmd  `cmd:"" help:"Measure markdown size savings for a published site"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File    string `arg:"" optional:"" help:"HTML file to convert (defaults to stdin)"`
	Extract bool   `short:"x" help:"Strip boilerplate before converting"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Config string `short:"c" default:"llms.yml" help:"Config file path"`
	Input  string `short:"i" help:"Input directory (overrides config)"`
	Output string `short:"o" help:"Output directory (overrides config)"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	File string `arg:"" optional:"" default:"llms.txt" help:"Manifest file to validate"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL     string   `arg:"" help:"Base URL of the published site"`
	Include []string `short:"I" help:"Include URLs matching regex (repeatable)"`
	Exclude []string `short:"E" help:"Exclude URLs matching regex (repeatable)"`
	RPS     float64  `default:"2" help:"Requests per second per domain"`
	Limit   int      `short:"n" help:"Compare at most N pages (0 = all)"`
}
