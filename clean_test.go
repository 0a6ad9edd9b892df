package llmstxt_test

import (
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/stretchr/testify/assert"
)

func TestStripFrontmatter(t *testing.T) {
	t.Parallel()

	t.Run("removes a leading frontmatter block", func(t *testing.T) {
		t.Parallel()

		md := "---\ntitle: X\nsource: /y\n---\n\n# Doc\n"

		out := llmstxt.StripFrontmatter{}.Clean(md)

		assert.Equal(t, "# Doc\n", out)
	})

	t.Run("leaves documents without frontmatter alone", func(t *testing.T) {
		t.Parallel()

		md := "# Doc\n\n---\n\nmore\n"

		assert.Equal(t, md, llmstxt.StripFrontmatter{}.Clean(md))
	})
}

func TestStripBadges(t *testing.T) {
	t.Parallel()

	t.Run("removes badge images and their links", func(t *testing.T) {
		t.Parallel()

		md := "# Proj\n\n[![Build](https://img.shields.io/badge/build-ok-green)](https://ci.example.com)\n\ntext\n"

		out := llmstxt.StripBadges{}.Clean(md)

		assert.NotContains(t, out, "shields.io")
		assert.Contains(t, out, "# Proj")
		assert.Contains(t, out, "text")
	})

	t.Run("keeps ordinary images", func(t *testing.T) {
		t.Parallel()

		md := "![diagram](/images/arch.png)\n"

		assert.Equal(t, md, llmstxt.StripBadges{}.Clean(md))
	})
}

func TestExpandLinks(t *testing.T) {
	t.Parallel()

	t.Run("makes relative destinations absolute", func(t *testing.T) {
		t.Parallel()

		rule := llmstxt.ExpandLinks{Base: "https://example.com/docs/"}
		md := "[guide](setup.md) and [root](/api.md) and ![img](img/a.png)"

		out := rule.Clean(md)

		assert.Equal(t, "[guide](https://example.com/docs/setup.md) and [root](https://example.com/api.md) and ![img](https://example.com/docs/img/a.png)", out)
	})

	t.Run("leaves absolute fragments and mailto alone", func(t *testing.T) {
		t.Parallel()

		rule := llmstxt.ExpandLinks{Base: "https://example.com/"}
		md := "[a](https://other.com/x) [b](#frag) [c](mailto:x@y.z)"

		assert.Equal(t, md, rule.Clean(md))
	})

	t.Run("skips fenced code", func(t *testing.T) {
		t.Parallel()

		rule := llmstxt.ExpandLinks{Base: "https://example.com/"}
		md := "```\n[not a link](rel.md)\n```"

		assert.Equal(t, md, rule.Clean(md))
	})
}

func TestCollapseBlankLines(t *testing.T) {
	t.Parallel()

	t.Run("collapses runs of three or more blank lines", func(t *testing.T) {
		t.Parallel()

		out := llmstxt.CollapseBlankLines{}.Clean("a\n\n\n\n\nb")

		assert.Equal(t, "a\n\n\nb", out)
	})

	t.Run("preserves blank runs inside fences", func(t *testing.T) {
		t.Parallel()

		md := "```\na\n\n\n\nb\n```"

		assert.Equal(t, md, llmstxt.CollapseBlankLines{}.Clean(md))
	})
}

func TestCleaner(t *testing.T) {
	t.Parallel()

	t.Run("applies rules in order", func(t *testing.T) {
		t.Parallel()

		c := llmstxt.NewCleaner(
			llmstxt.StripFrontmatter{},
			llmstxt.ExpandLinks{Base: "https://example.com/"},
		)
		md := "---\na: b\n---\n[x](rel.md)"

		assert.Equal(t, "[x](https://example.com/rel.md)", c.Clean(md))
	})
}
