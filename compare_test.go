package llmstxt_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/stretchr/testify/assert"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *llmstxt.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include requires at least one match", func(t *testing.T) {
		t.Parallel()

		f := &llmstxt.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
		}

		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/blog/post"))
	})

	t.Run("exclude applies after include", func(t *testing.T) {
		t.Parallel()

		f := &llmstxt.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/internal/`)},
		}

		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/docs/internal/debug"))
	})

	t.Run("exclude alone filters", func(t *testing.T) {
		t.Parallel()

		f := &llmstxt.URLFilter{
			Exclude: []*regexp.Regexp{regexp.MustCompile(`\.pdf$`)},
		}

		assert.True(t, f.Match("https://example.com/docs/guide"))
		assert.False(t, f.Match("https://example.com/docs/manual.pdf"))
	})
}
