package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/llmstxt"
	main "github.com/fwojciec/llmstxt/cmd/llmstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llms.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses a full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `title: My Docs
summary: Project documentation
section: Guides
input: ./site
output: ./public
base_url: https://example.com/
extractor: goquery
concurrency: 4
exclude:
  - node_modules
  - "draft-*.html"
clean:
  - strip-frontmatter
  - expand-links
cache: .llmstxt.db
`)

		cfg, err := main.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "My Docs", cfg.Title)
		assert.Equal(t, "Project documentation", cfg.Summary)
		assert.Equal(t, "Guides", cfg.Section)
		assert.Equal(t, "./site", cfg.Input)
		assert.Equal(t, "./public", cfg.Output)
		assert.Equal(t, "https://example.com/", cfg.BaseURL)
		assert.Equal(t, "goquery", cfg.Extractor)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, []string{"node_modules", "draft-*.html"}, cfg.Exclude)
		assert.Equal(t, []string{"strip-frontmatter", "expand-links"}, cfg.Clean)
		assert.Equal(t, ".llmstxt.db", cfg.CachePath)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(writeConfig(t, "title: T\n"))
		require.NoError(t, err)

		assert.Equal(t, ".", cfg.Input)
		assert.Equal(t, "llms-out", cfg.Output)
		assert.Equal(t, "Docs", cfg.Section)
	})

	t.Run("missing file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
	})

	t.Run("invalid yaml returns EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "title: [unclosed\n"))
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("unknown extractor is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(writeConfig(t, "extractor: readability\n"))
		require.Error(t, err)
		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})
}
