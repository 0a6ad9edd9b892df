package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	"github.com/fwojciec/llmstxt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleDetector classifies content for walker tests: anything with a
// tag is HTML, a leading # is markdown, everything else is text.
func simpleDetector() *mock.ContentDetector {
	return &mock.ContentDetector{
		DetectKindFn: func(content string) llmstxt.ContentKind {
			if strings.Contains(content, "<") {
				return llmstxt.ContentHTML
			}
			if strings.HasPrefix(content, "#") {
				return llmstxt.ContentMarkdown
			}
			return llmstxt.ContentText
		},
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestWalker_Walk(t *testing.T) {
	t.Parallel()

	t.Run("converts HTML files and mirrors paths", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"index.html":       "<h1>Home</h1><p>welcome</p>",
			"guide/start.html": "<h1>Start</h1><p>go</p>",
		})

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 2)

		// Ordered by source path
		assert.Equal(t, "guide/start.html", docs[0].SourcePath)
		assert.Equal(t, "guide/start.md", docs[0].OutputPath)
		assert.Equal(t, "Start", docs[0].Title)
		assert.Equal(t, "# Start\n\ngo", docs[0].Content)

		assert.Equal(t, "index.html", docs[1].SourcePath)
		assert.Equal(t, "index.md", docs[1].OutputPath)
		assert.NotEmpty(t, docs[1].ID)
		assert.NotEmpty(t, docs[1].ContentHash)
	})

	t.Run("markdown files pass through", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"notes.md": "# Notes\n\nalready markdown",
		})

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "# Notes\n\nalready markdown", docs[0].Content)
		assert.Equal(t, "Notes", docs[0].Title)
	})

	t.Run("skips hidden directories excludes and non-convertible files", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"docs/page.html":        "<p>keep</p>",
			".git/config.html":      "<p>hidden</p>",
			"node_modules/x.html":   "<p>excluded</p>",
			"docs/image.png":        "binary",
			"docs/draft-notes.html": "<p>draft</p>",
		})

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
			Exclude:   []string{"node_modules", "draft-*.html"},
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "docs/page.html", docs[0].SourcePath)
	})

	t.Run("runs extraction before conversion", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": "<nav>menu</nav><main><p>content</p></main>",
		})

		w := &fs.Walker{
			Detector: simpleDetector(),
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*llmstxt.ExtractResult, error) {
					return &llmstxt.ExtractResult{
						Title:       "Extracted",
						ContentHTML: "<p>content</p>",
					}, nil
				},
			},
			Converter: htmltomarkdown.NewConverter(),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "content", docs[0].Content)
		assert.Equal(t, "Extracted", docs[0].Title)
	})

	t.Run("extraction failure falls back to raw conversion", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": "<p>thin page</p>",
		})

		w := &fs.Walker{
			Detector: simpleDetector(),
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*llmstxt.ExtractResult, error) {
					return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no content found in HTML")
				},
			},
			Converter: htmltomarkdown.NewConverter(),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "thin page", docs[0].Content)
	})

	t.Run("cache hit skips conversion", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": "<p>source</p>",
		})

		converted := 0
		var mu sync.Mutex
		cache := &mock.ConversionCache{
			GetFn: func(ctx context.Context, sourcePath, contentHash string) (*llmstxt.ConversionRecord, error) {
				return &llmstxt.ConversionRecord{
					ID:          "cached-id",
					SourcePath:  sourcePath,
					ContentHash: contentHash,
					Markdown:    "cached markdown",
					Title:       "Cached",
				}, nil
			},
			PutFn: func(ctx context.Context, rec *llmstxt.ConversionRecord) error {
				return nil
			},
		}

		w := &fs.Walker{
			Detector: simpleDetector(),
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					mu.Lock()
					converted++
					mu.Unlock()
					return "fresh", nil
				},
			},
			Cache: cache,
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "cached markdown", docs[0].Content)
		assert.Equal(t, "cached-id", docs[0].ID)
		assert.Zero(t, converted)
	})

	t.Run("cache miss converts and stores the result", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": "<h1>Fresh</h1>",
		})

		var mu sync.Mutex
		var stored []*llmstxt.ConversionRecord
		cache := &mock.ConversionCache{
			GetFn: func(ctx context.Context, sourcePath, contentHash string) (*llmstxt.ConversionRecord, error) {
				return nil, llmstxt.Errorf(llmstxt.ENOTFOUND, "no cached conversion")
			},
			PutFn: func(ctx context.Context, rec *llmstxt.ConversionRecord) error {
				mu.Lock()
				stored = append(stored, rec)
				mu.Unlock()
				return nil
			},
		}

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
			Cache:     cache,
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		require.Len(t, stored, 1)
		assert.Equal(t, "# Fresh", stored[0].Markdown)
		assert.Equal(t, docs[0].ContentHash, stored[0].ContentHash)
	})

	t.Run("saves documents through the store", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": "<h1>Stored</h1>",
		})

		var mu sync.Mutex
		var saved []string
		store := &mock.DocumentStore{
			SaveFn: func(ctx context.Context, doc *llmstxt.Document) error {
				mu.Lock()
				saved = append(saved, doc.OutputPath)
				mu.Unlock()
				return nil
			},
		}

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
			Store:     store,
		}

		_, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, []string{"page.md"}, saved)
	})

	t.Run("applies cleaning rules", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"page.html": `<p><a href="setup.md">guide</a></p>`,
		})

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
			Cleaner:   llmstxt.NewCleaner(llmstxt.ExpandLinks{Base: "https://example.com/"}),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "[guide](https://example.com/setup.md)", docs[0].Content)
	})

	t.Run("plain text files are skipped", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"notes.txt": "no structure here",
		})

		w := &fs.Walker{
			Detector:  simpleDetector(),
			Converter: htmltomarkdown.NewConverter(),
		}

		docs, err := w.Walk(context.Background(), root)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	h1 := fs.ContentHash("<p>a</p>")
	h2 := fs.ContentHash("<p>a</p>")
	h3 := fs.ContentHash("<p>b</p>")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}
