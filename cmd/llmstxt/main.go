package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	llmshttp "github.com/fwojciec/llmstxt/http"
	llmsslog "github.com/fwojciec/llmstxt/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmstxt"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'llmstxt --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logging goes to stderr so markdown on stdout stays clean.
	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	deps.Converter = htmltomarkdown.NewConverter()
	deps.Detector = goquery.NewDetector()
	deps.Sitemaps = llmshttp.NewSitemapService(nil)
	if cli.Verbose {
		deps.Converter = llmsslog.NewLoggingConverter(deps.Converter, deps.Logger)
		deps.Sitemaps = llmsslog.NewLoggingSitemapService(deps.Sitemaps, deps.Logger)
	}

	if cmd == "compare" {
		limiter := llmshttp.NewDomainLimiter(cli.Compare.RPS)
		deps.Comparator = llmshttp.NewSizeComparator(nil, deps.Sitemaps, limiter)
	}

	return kongCtx.Run(deps)
}
