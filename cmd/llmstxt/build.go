package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/sqlite"
	"github.com/fwojciec/llmstxt/trafilatura"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg, err := LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}
	if c.Input != "" {
		cfg.Input = c.Input
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}

	rules, err := cfg.cleanRules()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}

	var extractor llmstxt.Extractor
	switch cfg.Extractor {
	case "goquery":
		extractor = goquery.NewExtractor()
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	}

	cache := deps.Cache
	if cache == nil && cfg.CachePath != "" {
		db := sqlite.NewDB(cfg.CachePath)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache at %q: %w", cfg.CachePath, err)
		}
		defer db.Close()
		cache = sqlite.NewConversionCache(db)
	}

	outDir := filepath.Clean(cfg.Output)
	store := fs.NewStore(filepath.Dir(outDir), filepath.Base(outDir))

	walker := &fs.Walker{
		Detector:    deps.Detector,
		Extractor:   extractor,
		Converter:   deps.Converter,
		Cleaner:     llmstxt.NewCleaner(rules...),
		Cache:       cache,
		Store:       store,
		Concurrency: cfg.Concurrency,
		Exclude:     cfg.Exclude,
	}

	docs, err := walker.Walk(deps.Ctx, cfg.Input)
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmstxt.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		_ = store.Abort()
		return llmstxt.Errorf(llmstxt.ENOTFOUND, "no documentation files found under %q", cfg.Input)
	}

	manifest := llmstxt.BuildManifest(cfg.Title, cfg.Summary, cfg.Section, docs)
	if err := manifest.Validate(); err != nil {
		_ = store.Abort()
		return err
	}
	if err := store.SaveRaw("llms.txt", manifest.Render()); err != nil {
		_ = store.Abort()
		return err
	}

	// llms-full.txt carries the complete content for consumers that
	// want everything in one request.
	if err := store.SaveRaw("llms-full.txt", llmstxt.FormatDocuments(docs)); err != nil {
		_ = store.Abort()
		return err
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return err
	}

	fmt.Fprintf(deps.Stdout, "Converted %d documents to %s\n", len(docs), cfg.Output)
	return nil
}
